package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/config"
	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/platform"
	"github.com/fenilsonani/appsweep/internal/ui/components"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
	uiutils "github.com/fenilsonani/appsweep/internal/ui/utils"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

// ArtifactsViewModel shows the artifacts discovered for one application as
// a checklist. Unprotected artifacts start selected; protected ones must be
// opted into individually.
type ArtifactsViewModel struct {
	config       *config.Config
	platformInfo *platform.Info
	app          apps.Application
	spinner      spinner.Model
	discovering  bool
	artifacts    []discovery.CandidateArtifact
	cursor       int
	offset       int
	pageSize     int
	showDetail   bool
	startTime    time.Time
	width        int
	height       int
}

// discoveryDoneMsg carries the discovered artifacts back into the view
type discoveryDoneMsg struct {
	artifacts []discovery.CandidateArtifact
}

// NewArtifactsViewModel creates a new artifacts view model
func NewArtifactsViewModel(cfg *config.Config, platformInfo *platform.Info, app apps.Application, width, height int) *ArtifactsViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	return &ArtifactsViewModel{
		config:       cfg,
		platformInfo: platformInfo,
		app:          app,
		spinner:      s,
		discovering:  true,
		pageSize:     uiutils.CalculatePageSize(height),
		startTime:    time.Now(),
		width:        width,
		height:       height,
	}
}

// Init initializes the artifacts view
func (m *ArtifactsViewModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.performDiscovery,
	)
}

// performDiscovery runs artifact discovery for the chosen application
func (m *ArtifactsViewModel) performDiscovery() tea.Msg {
	engine := discovery.NewEngine(m.platformInfo)
	engine.ExcludePatterns = m.config.Scan.ExcludePatterns
	return discoveryDoneMsg{artifacts: engine.Discover(m.app)}
}

// Update handles messages
func (m *ArtifactsViewModel) Update(msg tea.Msg) (*ArtifactsViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.discovering {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case discoveryDoneMsg:
		m.discovering = false
		m.artifacts = msg.artifacts
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pageSize = uiutils.CalculatePageSize(msg.Height)

	case tea.KeyMsg:
		if m.discovering {
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset--
				}
			}
		case "down", "j":
			if m.cursor < len(m.artifacts)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.pageSize {
					m.offset++
				}
			}
		case "g":
			m.cursor = 0
			m.offset = 0
		case "G":
			if len(m.artifacts) > 0 {
				m.cursor = len(m.artifacts) - 1
				m.offset = m.cursor - m.pageSize + 1
				if m.offset < 0 {
					m.offset = 0
				}
			}
		case "space", " ":
			if m.cursor >= 0 && m.cursor < len(m.artifacts) {
				m.artifacts[m.cursor].Selected = !m.artifacts[m.cursor].Selected
			}
		case "x":
			if m.cursor < len(m.artifacts) {
				m.artifacts[m.cursor].Selected = !m.artifacts[m.cursor].Selected
				if m.cursor < len(m.artifacts)-1 {
					m.cursor++
					if m.cursor >= m.offset+m.pageSize {
						m.offset++
					}
				}
			}
		case "a", "ctrl+a":
			// Bulk selection never reaches protected artifacts
			for i := range m.artifacts {
				if !m.artifacts[i].Protected {
					m.artifacts[i].Selected = true
				}
			}
		case "d", "ctrl+d":
			for i := range m.artifacts {
				m.artifacts[i].Selected = false
			}
		case "i":
			m.showDetail = !m.showDetail
		case "enter":
			if selected := m.selected(); len(selected) > 0 {
				return m, func() tea.Msg { return ArtifactsSelectedMsg{Artifacts: selected} }
			}
		}
	}

	return m, nil
}

// selected returns the artifacts currently checked
func (m *ArtifactsViewModel) selected() []discovery.CandidateArtifact {
	var selected []discovery.CandidateArtifact
	for _, a := range m.artifacts {
		if a.Selected {
			selected = append(selected, a)
		}
	}
	return selected
}

// View renders the artifacts view
func (m *ArtifactsViewModel) View() string {
	var b strings.Builder

	if warning := uiutils.GetSizeWarningBanner(m.width, m.height); warning != "" {
		b.WriteString(warning)
	}

	title := fmt.Sprintf("🧹 Artifacts for %s", m.app.Name)
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	if m.discovering {
		b.WriteString(m.spinner.View())
		b.WriteString(" Searching library locations... ")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second))))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("Press ctrl+c to cancel"))
		return b.String()
	}

	if len(m.artifacts) == 0 {
		b.WriteString(styles.DimStyle.Render("No artifacts found for this application."))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("esc:back  q:quit"))
		return b.String()
	}

	end := m.offset + m.pageSize
	if end > len(m.artifacts) {
		end = len(m.artifacts)
	}

	pathWidth := m.width - 40
	if pathWidth < 30 {
		pathWidth = 30
	}

	for i := m.offset; i < end; i++ {
		artifact := m.artifacts[i]

		cursor := "  "
		if i == m.cursor {
			cursor = styles.SelectedStyle.Render("→ ")
		}

		marker := styles.UncheckedBox()
		if artifact.Selected {
			marker = styles.CheckedBox()
		} else if artifact.Protected {
			marker = styles.LockedBox()
		}

		line := fmt.Sprintf("%s%s %-20s %s %s",
			cursor,
			marker,
			styles.CategoryStyle.Render(artifact.Category.DisplayName()),
			styles.PathStyle.Render(uiutils.TruncatePath(artifact.Path, pathWidth)),
			styles.SizeStyle.Render(utils.FormatBytes(artifact.Size)),
		)

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")

	selected := m.selected()
	var selectedSize int64
	for _, a := range selected {
		selectedSize += a.Size
	}

	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Selected: %d/%d artifacts, %s",
		len(selected), len(m.artifacts), utils.FormatBytes(selectedSize))))
	b.WriteString("\n")

	if m.showDetail && m.cursor < len(m.artifacts) {
		b.WriteString("\n")
		panel := components.ArtifactInfoPanel(m.artifacts[m.cursor], m.width)
		b.WriteString(panel.Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")

	statusBar := components.NewStatusBar()
	statusBar.SetView("Artifacts")
	statusBar.SetSelection(len(selected), len(m.artifacts), selectedSize)
	statusBar.SetShortcuts(map[string]string{
		"space": "toggle",
		"a":     "select all",
		"d":     "none",
		"i":     "details",
		"enter": "continue",
		"esc":   "back",
	})

	b.WriteString(statusBar.Render(m.width))

	return b.String()
}
