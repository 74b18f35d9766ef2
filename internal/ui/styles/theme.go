// Package styles defines the shared lipgloss theme for the interactive views.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	Primary   = lipgloss.Color("#0EA5E9")
	Secondary = lipgloss.Color("#7DD3FC")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Danger    = lipgloss.Color("#EF4444")
	Info      = lipgloss.Color("#3B82F6")
	Muted     = lipgloss.Color("#6B7280")
	Text      = lipgloss.Color("#F3F4F6")
	TextDim   = lipgloss.Color("#9CA3AF")
	Border    = lipgloss.Color("#4B5563")
	BgDark    = lipgloss.Color("#1F2937")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Common styles
var (
	TitleStyle    = fg(Primary).Bold(true).MarginBottom(1)
	SubtitleStyle = fg(Secondary).MarginBottom(1)

	SelectedStyle = fg(Primary).Bold(true)
	PathStyle     = fg(Info)
	SizeStyle     = fg(Warning)
	CategoryStyle = fg(Secondary).Italic(true)

	ErrorStyle   = fg(Danger).Bold(true)
	SuccessStyle = fg(Success).Bold(true)
	WarningStyle = fg(Warning).Bold(true)

	HelpStyle = fg(TextDim).Italic(true)
	DimStyle  = fg(TextDim)
	BoldStyle = lipgloss.NewStyle().Bold(true)

	StatusBarStyle = fg(Text).Background(BgDark).Padding(0, 1)
)

// CheckedBox renders the marker for a selected row.
func CheckedBox() string {
	return fg(Success).Render("☑")
}

// UncheckedBox renders the marker for an unselected row.
func UncheckedBox() string {
	return fg(Muted).Render("☐")
}

// LockedBox marks protected artifacts that need an explicit opt-in.
func LockedBox() string {
	return WarningStyle.Render("🔒")
}

// ProgressBar renders a fixed-width block progress bar.
func ProgressBar(current, total int, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}

	filled := current * width / total
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fg(Primary).Render(bar)
}
