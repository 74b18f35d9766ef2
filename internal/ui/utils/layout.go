package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/appsweep/internal/ui/styles"
)

const (
	// MinTerminalWidth is the minimum recommended terminal width
	MinTerminalWidth = 80
	// MinTerminalHeight is the minimum recommended terminal height
	MinTerminalHeight = 24
)

const (
	ellipsis = "..."
	sep      = string(filepath.Separator)
)

// TruncatePath shortens a file path to fit within maxWidth. The filename is
// always kept; the directory is abbreviated from the middle when it does not
// fit.
func TruncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}
	if maxWidth < 10 {
		return ellipsis
	}

	dir, file := filepath.Split(path)

	if tail := maxWidth - 4; len(file) > tail {
		return ellipsis + file[len(file)-tail:]
	}

	budget := maxWidth - len(file) - len(ellipsis)
	if budget <= 0 {
		return ellipsis + file
	}

	dir = filepath.Clean(dir)
	if len(dir) <= budget {
		return filepath.Join(dir, file)
	}
	return shortDir(dir, budget) + sep + file
}

// shortDir abbreviates dir to at most budget characters, preferring to keep
// the outermost and innermost components visible around an ellipsis.
func shortDir(dir string, budget int) string {
	if budget < 10 {
		return ellipsis
	}

	parts := strings.Split(dir, sep)
	if len(parts) <= 2 {
		return ellipsis + dir[len(dir)-budget:]
	}

	head := parts[0]
	if head == "" {
		head = sep + parts[1]
	}
	tail := parts[len(parts)-1]

	if len(head)+len(tail)+2*len(sep)+len(ellipsis) <= budget {
		return head + sep + ellipsis + sep + tail
	}
	return ellipsis + sep + tail
}

// CalculatePageSize converts a terminal height into the number of list rows a
// paged view can show once the title, instructions, summary, and status bar
// have taken their share.
func CalculatePageSize(terminalHeight int) int {
	const chromeRows = 10

	if rows := terminalHeight - chromeRows; rows > 5 {
		return rows
	}
	return 5
}

// IsTerminalTooSmall checks if the terminal is below minimum recommended size
func IsTerminalTooSmall(width, height int) bool {
	return width < MinTerminalWidth || height < MinTerminalHeight
}

// GetSizeWarningBanner returns a warning banner if terminal is too small
func GetSizeWarningBanner(width, height int) string {
	if !IsTerminalTooSmall(width, height) {
		return ""
	}

	msg := fmt.Sprintf("⚠️  Terminal too small! Recommended: %dx%d or larger",
		MinTerminalWidth, MinTerminalHeight)
	if width > 0 && height > 0 {
		msg += styles.DimStyle.Render(" (current: ") +
			styles.WarningStyle.Render(fmt.Sprintf("%dx%d", width, height)) +
			styles.DimStyle.Render(")")
	}

	return styles.WarningStyle.Render(msg) + "\n\n"
}

// TruncateString clips s at the end, adding an ellipsis when it does not fit.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < len(ellipsis) {
		return ellipsis
	}
	return s[:maxLen-len(ellipsis)] + ellipsis
}

// TruncateMiddle clips s from the middle so both the start and the end stay
// visible. Short limits fall back to end truncation.
func TruncateMiddle(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 10 {
		return TruncateString(s, maxLen)
	}

	keep := (maxLen - len(ellipsis)) / 2
	return s[:keep] + ellipsis + s[len(s)-keep:]
}
