package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/ui/components"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
	uiutils "github.com/fenilsonani/appsweep/internal/ui/utils"
)

// AppListViewModel lets the user pick the application to sweep
type AppListViewModel struct {
	applications []apps.Application
	cursor       int
	offset       int
	pageSize     int
	filter       string
	filtering    bool
	width        int
	height       int
}

// NewAppListViewModel creates a new app list view model
func NewAppListViewModel(applications []apps.Application, width, height int) *AppListViewModel {
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	return &AppListViewModel{
		applications: applications,
		pageSize:     uiutils.CalculatePageSize(height),
		width:        width,
		height:       height,
	}
}

// Init initializes the app list view
func (m *AppListViewModel) Init() tea.Cmd {
	return nil
}

// filtered returns the applications matching the current filter
func (m *AppListViewModel) filtered() []apps.Application {
	if m.filter == "" {
		return m.applications
	}

	needle := strings.ToLower(m.filter)
	var matched []apps.Application
	for _, app := range m.applications {
		if strings.Contains(strings.ToLower(app.Name), needle) ||
			strings.Contains(strings.ToLower(app.BundleID), needle) {
			matched = append(matched, app)
		}
	}
	return matched
}

// Update handles messages
func (m *AppListViewModel) Update(msg tea.Msg) (*AppListViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pageSize = uiutils.CalculatePageSize(msg.Height)

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}

		visible := m.filtered()
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset--
				}
			}
		case "down", "j":
			if m.cursor < len(visible)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.pageSize {
					m.offset++
				}
			}
		case "g":
			m.cursor = 0
			m.offset = 0
		case "G":
			if len(visible) > 0 {
				m.cursor = len(visible) - 1
				m.offset = m.cursor - m.pageSize + 1
				if m.offset < 0 {
					m.offset = 0
				}
			}
		case "ctrl+f":
			m.cursor += m.pageSize
			if m.cursor > len(visible)-1 {
				m.cursor = len(visible) - 1
			}
			if m.cursor < 0 {
				m.cursor = 0
			}
			m.offset = m.cursor - m.pageSize + 1
			if m.offset < 0 {
				m.offset = 0
			}
		case "ctrl+b":
			m.cursor -= m.pageSize
			if m.cursor < 0 {
				m.cursor = 0
			}
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		case "/":
			m.filtering = true
			m.filter = ""
			m.cursor = 0
			m.offset = 0
		case "enter":
			if m.cursor >= 0 && m.cursor < len(visible) {
				app := visible[m.cursor]
				return m, func() tea.Msg { return AppChosenMsg{App: app} }
			}
		}
	}

	return m, nil
}

// updateFilter handles key input while the filter prompt is active
func (m *AppListViewModel) updateFilter(msg tea.KeyMsg) (*AppListViewModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
	case "esc":
		m.filtering = false
		m.filter = ""
	case "backspace":
		if len(m.filter) > 0 {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.filter += string(msg.Runes)
		}
	}

	m.cursor = 0
	m.offset = 0
	return m, nil
}

// View renders the app list view
func (m *AppListViewModel) View() string {
	var b strings.Builder

	if warning := uiutils.GetSizeWarningBanner(m.width, m.height); warning != "" {
		b.WriteString(warning)
	}

	b.WriteString(styles.TitleStyle.Render("📋 Installed Applications"))
	b.WriteString("\n\n")

	if m.filtering || m.filter != "" {
		prompt := "/" + m.filter
		if m.filtering {
			prompt += "█"
		}
		b.WriteString(styles.SelectedStyle.Render(prompt))
		b.WriteString("\n\n")
	}

	visible := m.filtered()
	if len(visible) == 0 {
		if m.filter != "" {
			b.WriteString(styles.DimStyle.Render("No applications match the filter."))
		} else {
			b.WriteString(styles.DimStyle.Render("No applications found."))
		}
		b.WriteString("\n")
	}

	end := m.offset + m.pageSize
	if end > len(visible) {
		end = len(visible)
	}

	nameWidth := 36
	for i := m.offset; i < end; i++ {
		app := visible[i]

		cursor := "  "
		if i == m.cursor {
			cursor = styles.SelectedStyle.Render("→ ")
		}

		name := uiutils.TruncateString(app.Name, nameWidth)
		line := fmt.Sprintf("%s%-*s %-10s %s",
			cursor,
			nameWidth, name,
			styles.DimStyle.Render(app.Version),
			styles.PathStyle.Render(uiutils.TruncateMiddle(app.BundleID, 40)),
		)

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")

	statusBar := components.NewStatusBar()
	statusBar.SetView("Applications")
	statusBar.SetShortcuts(map[string]string{
		"↑/↓":   "navigate",
		"/":     "filter",
		"enter": "inspect",
		"?":     "help",
		"q":     "quit",
	})

	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%d applications", len(visible))))
	b.WriteString("\n\n")
	b.WriteString(statusBar.Render(m.width))

	return b.String()
}
