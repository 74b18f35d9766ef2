package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/appsweep/internal/remover"
	"github.com/fenilsonani/appsweep/internal/reporter"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

// maxFailuresShown caps the failure list so the summary stays on screen
const maxFailuresShown = 8

// SummaryViewModel handles the summary/results view
type SummaryViewModel struct {
	summary *reporter.RemovalSummary
}

// NewSummaryViewModel creates a new summary view model
func NewSummaryViewModel(summary *reporter.RemovalSummary) *SummaryViewModel {
	return &SummaryViewModel{summary: summary}
}

// Init initializes the summary view
func (m *SummaryViewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SummaryViewModel) Update(msg tea.Msg) (*SummaryViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "enter":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the summary view
func (m *SummaryViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("✨ Removal Summary"))
	b.WriteString("\n\n")

	if m.summary != nil {
		verb := "Removed"
		if m.summary.DryRun {
			verb = "Would remove"
		}

		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("✓ %s %d of %d artifacts for %s",
			verb, m.summary.Removed, m.summary.Attempted, m.summary.App)))
		b.WriteString("\n")

		b.WriteString(styles.BoldStyle.Render(fmt.Sprintf("Space freed: %s",
			utils.FormatBytes(m.summary.FreedSize))))
		if m.summary.Mode == remover.ModeTrash && !m.summary.DryRun {
			b.WriteString(styles.DimStyle.Render(" (moved to trash)"))
		}
		b.WriteString("\n")

		if errs := m.summary.Errors(); len(errs) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("✗ %d artifacts could not be removed",
				len(errs))))
			b.WriteString("\n")

			shown := len(errs)
			if shown > maxFailuresShown {
				shown = maxFailuresShown
			}
			for _, err := range errs[:shown] {
				b.WriteString(fmt.Sprintf("  %s\n", styles.DimStyle.Render(err.UserMessage())))
			}
			if len(errs) > shown {
				b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  ... and %d more\n", len(errs)-shown)))
			}
		}

		if m.summary.DryRun {
			b.WriteString("\n")
			b.WriteString(styles.WarningStyle.Render("Note: This was a dry run. Nothing was deleted."))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("Press q or enter to exit"))

	return b.String()
}
