package utils

import (
	"strings"
	"testing"
)

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{"fits", "/tmp/file.txt", 80, "/tmp/file.txt"},
		{"exact fit", "/tmp/file.txt", 13, "/tmp/file.txt"},
		{"too narrow", "/Users/nathan/Library/Caches/file.db", 8, "..."},
		{
			"keeps first and last directory",
			"/Users/nathan/Library/Caches/com.example.App/file.db",
			40,
			"/Users/.../com.example.App/file.db",
		},
		{
			"long last directory",
			"/Users/nathan/Library/Application Support/VeryLongDirectoryNameHere/file.db",
			40,
			".../VeryLongDirectoryNameHere/file.db",
		},
		{
			"long filename keeps tail",
			"/Users/nathan/Library/Preferences/com.example.VeryLongApplicationBundleIdentifier.plist",
			30,
			"...tionBundleIdentifier.plist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePath(tt.path, tt.maxWidth)
			if got != tt.expected {
				t.Errorf("TruncatePath(%q, %d) = %q, want %q", tt.path, tt.maxWidth, got, tt.expected)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"tiny max", "hello", 2, "..."},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxLen)
			if got != tt.expected {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"fits", "com.apple.dock", 20, "com.apple.dock"},
		{"middle truncation", "com.example.application.identifier", 20, "com.exam...entifier"},
		{"small max falls back to end truncation", "abcdefghijk", 8, "abcde..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateMiddle(tt.input, tt.maxLen)
			if got != tt.expected {
				t.Errorf("TruncateMiddle(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestCalculatePageSize(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		expected int
	}{
		{"standard terminal", 24, 14},
		{"tall terminal", 40, 30},
		{"short terminal clamps to minimum", 12, 5},
		{"zero height clamps to minimum", 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePageSize(tt.height); got != tt.expected {
				t.Errorf("CalculatePageSize(%d) = %d, want %d", tt.height, got, tt.expected)
			}
		})
	}
}

func TestIsTerminalTooSmall(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		expected bool
	}{
		{"minimum size", 80, 24, false},
		{"large terminal", 120, 50, false},
		{"too narrow", 79, 24, true},
		{"too short", 80, 23, true},
		{"both too small", 40, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTerminalTooSmall(tt.width, tt.height); got != tt.expected {
				t.Errorf("IsTerminalTooSmall(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.expected)
			}
		})
	}
}

func TestGetSizeWarningBanner(t *testing.T) {
	if banner := GetSizeWarningBanner(100, 40); banner != "" {
		t.Errorf("expected no banner for large terminal, got %q", banner)
	}

	banner := GetSizeWarningBanner(60, 20)
	if !strings.Contains(banner, "Terminal too small") {
		t.Errorf("expected warning banner, got %q", banner)
	}
	if !strings.Contains(banner, "60x20") {
		t.Errorf("expected current size in banner, got %q", banner)
	}
}
