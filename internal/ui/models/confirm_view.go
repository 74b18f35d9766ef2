package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/config"
	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/remover"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
	uiutils "github.com/fenilsonani/appsweep/internal/ui/utils"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

// ConfirmViewModel handles the confirmation screen
type ConfirmViewModel struct {
	app       apps.Application
	artifacts []discovery.CandidateArtifact
	mode      remover.Mode
	dryRun    bool
	cursor    int // 0 = Yes, 1 = Review, 2 = Cancel
	width     int
	height    int
}

// NewConfirmViewModel creates a new confirm view model
func NewConfirmViewModel(app apps.Application, artifacts []discovery.CandidateArtifact, cfg *config.Config, width, height int) *ConfirmViewModel {
	mode, err := remover.ParseMode(cfg.Removal.Mode)
	if err != nil {
		mode = remover.ModeTrash
	}

	// Permanent deletion of protected data defaults the cursor to Cancel
	defaultCursor := 0
	if mode == remover.ModePermanent && countProtected(artifacts) > 0 {
		defaultCursor = 2
	}

	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	return &ConfirmViewModel{
		app:       app,
		artifacts: artifacts,
		mode:      mode,
		dryRun:    cfg.Removal.DryRun,
		cursor:    defaultCursor,
		width:     width,
		height:    height,
	}
}

func countProtected(artifacts []discovery.CandidateArtifact) int {
	n := 0
	for _, a := range artifacts {
		if a.Protected {
			n++
		}
	}
	return n
}

// Init initializes the confirm view
func (m *ConfirmViewModel) Init() tea.Cmd {
	return nil
}

var (
	confirmCmd tea.Cmd = func() tea.Msg { return ConfirmedMsg{} }
	reviewCmd  tea.Cmd = func() tea.Msg { return ReviewSelectionMsg{} }
)

// Update handles messages
func (m *ConfirmViewModel) Update(msg tea.Msg) (*ConfirmViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < 2 {
				m.cursor++
			}
		case "tab":
			m.cursor = (m.cursor + 1) % 3
		case "enter":
			return m, [...]tea.Cmd{confirmCmd, reviewCmd, tea.Quit}[m.cursor]
		case "y":
			return m, confirmCmd
		case "e":
			return m, reviewCmd
		case "n":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the confirmation view
func (m *ConfirmViewModel) View() string {
	var b strings.Builder

	if warning := uiutils.GetSizeWarningBanner(m.width, m.height); warning != "" {
		b.WriteString(warning)
	}

	b.WriteString(styles.TitleStyle.Render("⚠️  Confirm Removal"))
	b.WriteString("\n\n")

	var totalSize int64
	type breakdown struct {
		count int
		size  int64
	}
	byCategory := make(map[discovery.Category]breakdown)

	for _, artifact := range m.artifacts {
		totalSize += artifact.Size
		entry := byCategory[artifact.Category]
		entry.count++
		entry.size += artifact.Size
		byCategory[artifact.Category] = entry
	}

	b.WriteString(styles.BoldStyle.Render(fmt.Sprintf("You are about to remove %d artifacts (%s) belonging to %s",
		len(m.artifacts), utils.FormatBytes(totalSize), m.app.Name)))
	b.WriteString("\n\n")

	b.WriteString(styles.SubtitleStyle.Render("Breakdown:"))
	b.WriteString("\n")

	for _, category := range discovery.AllCategories {
		if entry, ok := byCategory[category]; ok {
			b.WriteString(fmt.Sprintf("  %-22s %3d items (%s)\n",
				styles.CategoryStyle.Render(category.DisplayName()+":"),
				entry.count,
				styles.SizeStyle.Render(utils.FormatBytes(entry.size))))
		}
	}

	b.WriteString("\n")

	if protected := countProtected(m.artifacts); protected > 0 {
		b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("%s %d protected artifacts included - these hold sandboxed container data",
			"🔒", protected)))
		b.WriteString("\n\n")
	}

	switch {
	case m.dryRun:
		b.WriteString(styles.WarningStyle.Render("Dry run: nothing will actually be deleted."))
	case m.mode == remover.ModeTrash:
		b.WriteString(styles.SuccessStyle.Render("Artifacts will be moved to the Trash and can be restored."))
	default:
		b.WriteString(styles.ErrorStyle.Render("⚠️  Artifacts will be permanently deleted - this cannot be undone!"))
	}
	b.WriteString("\n\n")

	buttons := []string{"[ Yes, remove ]", "[ Review ]", "[ Cancel ]"}
	for i, label := range buttons {
		if i == m.cursor {
			buttons[i] = styles.SelectedStyle.Render(label)
		}
	}
	b.WriteString(strings.Join(buttons, "  "))
	b.WriteString("\n\n")

	helpText := "y:confirm  e:edit selection  n:cancel  ←/→:navigate"
	if m.width < 60 {
		helpText = "y:yes  e:edit  n:no  ←/→"
	}
	b.WriteString(styles.HelpStyle.Render(helpText))

	return b.String()
}
