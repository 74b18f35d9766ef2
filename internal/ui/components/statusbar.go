package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
	uiutils "github.com/fenilsonani/appsweep/internal/ui/utils"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

// shortcutOrder fixes the display order of the common shortcuts; keys not
// listed here are appended alphabetically.
var shortcutOrder = []string{"↑/↓", "space", "a", "d", "i", "enter", "/", "?", "esc", "q"}

// StatusBar displays at the bottom of views: the view name, selection
// state, and the active shortcuts.
type StatusBar struct {
	viewName  string
	selected  int
	total     int
	size      int64
	shortcuts map[string]string
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{shortcuts: make(map[string]string)}
}

// SetView sets the current view name
func (s *StatusBar) SetView(viewName string) {
	s.viewName = viewName
}

// SetSelection sets the selection count, total, and size
func (s *StatusBar) SetSelection(selected, total int, size int64) {
	s.selected = selected
	s.total = total
	s.size = size
}

// SetShortcuts sets the shortcuts to display
func (s *StatusBar) SetShortcuts(shortcuts map[string]string) {
	s.shortcuts = shortcuts
}

// Render renders the status bar with the given width
func (s *StatusBar) Render(width int) string {
	if width <= 0 {
		width = 80
	}

	left := strings.Join(s.leftSegments(), " • ")
	right := strings.Join(s.shortcutSegments(), " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		if room := width - lipgloss.Width(left) - 5; room > 0 {
			right = uiutils.TruncateString(right, room)
		}
		gap = 1
	}

	return styles.StatusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *StatusBar) leftSegments() []string {
	var segs []string
	if s.viewName != "" {
		segs = append(segs, styles.BoldStyle.Render(s.viewName))
	}
	if s.total > 0 {
		segs = append(segs, fmt.Sprintf("%d/%d selected", s.selected, s.total))
	}
	if s.size > 0 {
		segs = append(segs, styles.SizeStyle.Render(utils.FormatBytes(s.size)))
	}
	return segs
}

// shortcutSegments returns "key:desc" pairs, common shortcuts first in their
// fixed order, the rest alphabetically so the bar is stable between frames.
func (s *StatusBar) shortcutSegments() []string {
	var segs []string
	used := make(map[string]bool, len(s.shortcuts))

	for _, key := range shortcutOrder {
		if desc, ok := s.shortcuts[key]; ok {
			segs = append(segs, styles.DimStyle.Render(key)+":"+desc)
			used[key] = true
		}
	}

	var rest []string
	for key := range s.shortcuts {
		if !used[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		segs = append(segs, styles.DimStyle.Render(key)+":"+s.shortcuts[key])
	}
	return segs
}

// RenderSimple renders a simple status bar with just a message
func RenderSimple(message string, width int) string {
	if width <= 0 {
		width = 80
	}
	return styles.StatusBarStyle.Width(width).Render(message)
}
