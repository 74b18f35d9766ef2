// Package utils holds small helpers shared across commands and packages.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Binary size units.
const (
	B int64 = 1 << (10 * iota)
	KB
	MB
	GB
	TB
)

var sizeUnits = []struct {
	scale int64
	name  string
}{
	{TB, "TB"},
	{GB, "GB"},
	{MB, "MB"},
	{KB, "KB"},
}

// FormatBytes renders a byte count using its largest binary unit, with two
// decimal places above the byte range.
func FormatBytes(n int64) string {
	if n < 0 {
		return "0 B"
	}
	for _, u := range sizeUnits {
		if n >= u.scale {
			return fmt.Sprintf("%.2f %s", float64(n)/float64(u.scale), u.name)
		}
	}
	return fmt.Sprintf("%d B", n)
}

// ParseSize converts a human-readable size such as "1KB" or "1.5 GB" into
// bytes. Units are binary and case-insensitive; a bare number means bytes.
func ParseSize(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("empty size")
	}

	// Split the trailing unit off the numeric part.
	split := len(trimmed)
	for split > 0 && !isSizeDigit(trimmed[split-1]) {
		split--
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(trimmed[:split]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size format: %s", s)
	}

	scale, err := sizeScale(strings.TrimSpace(trimmed[split:]))
	if err != nil {
		return 0, err
	}
	return int64(value * float64(scale)), nil
}

func sizeScale(unit string) (int64, error) {
	switch strings.ToUpper(unit) {
	case "", "B":
		return B, nil
	case "K", "KB":
		return KB, nil
	case "M", "MB":
		return MB, nil
	case "G", "GB":
		return GB, nil
	case "T", "TB":
		return TB, nil
	default:
		return 0, fmt.Errorf("unknown size unit: %s", unit)
	}
}

func isSizeDigit(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}
