package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
	uiutils "github.com/fenilsonani/appsweep/internal/ui/utils"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

var (
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.Border).
			Padding(1, 2)

	panelTitle = lipgloss.NewStyle().
			Foreground(styles.Primary).
			Bold(true).
			Underline(true)

	panelLabel = lipgloss.NewStyle().
			Foreground(styles.Secondary).
			Bold(true)
)

// InfoPanel is a bordered detail box shown beneath a list row.
type InfoPanel struct {
	title string
	rows  []infoRow
	width int
}

type infoRow struct {
	icon  string
	label string
	value string
}

// NewInfoPanel creates a new info panel
func NewInfoPanel(title string, width int) *InfoPanel {
	return &InfoPanel{title: title, width: width}
}

// AddItem appends one labelled row to the panel.
func (p *InfoPanel) AddItem(label, value, icon string) {
	p.rows = append(p.rows, infoRow{icon: icon, label: label, value: value})
}

// Render renders the info panel
func (p *InfoPanel) Render() string {
	if len(p.rows) == 0 {
		return ""
	}

	width := p.width / 2
	if width < 40 {
		width = 40
	}
	if width > 80 {
		width = 80
	}

	lines := make([]string, 0, len(p.rows)+4)
	lines = append(lines, panelTitle.Render(p.title), "")
	for _, row := range p.rows {
		prefix := ""
		if row.icon != "" {
			prefix = row.icon + " "
		}
		lines = append(lines, prefix+panelLabel.Render(row.label)+": "+row.value)
	}
	lines = append(lines, "", styles.HelpStyle.Render("Press i to close"))

	return panelBorder.Width(width).Render(strings.Join(lines, "\n"))
}

// ArtifactInfoPanel builds the detail panel for one discovered artifact.
func ArtifactInfoPanel(artifact discovery.CandidateArtifact, width int) *InfoPanel {
	panel := NewInfoPanel("Artifact Details", width)

	panel.AddItem("Path", uiutils.TruncateMiddle(artifact.Path, 60), "📁")
	panel.AddItem("Category", artifact.Category.DisplayName(), "🗂")
	panel.AddItem("Size", utils.FormatBytes(artifact.Size), "💾")

	if artifact.Protected {
		panel.AddItem("Protected", styles.WarningStyle.Render("Yes - sandboxed container data"), "🔒")
	} else {
		panel.AddItem("Protected", "No", "")
	}

	if !artifact.LastAccess.IsZero() {
		panel.AddItem("Last Used", artifact.LastAccess.Format("2006-01-02"), "🕒")
	}

	return panel
}
