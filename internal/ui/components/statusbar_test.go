package components

import (
	"strings"
	"testing"
)

func TestStatusBarRender(t *testing.T) {
	bar := NewStatusBar()
	bar.SetView("Artifacts")
	bar.SetSelection(2, 5, 300*1024*1024)
	bar.SetShortcuts(map[string]string{
		"space": "toggle",
		"enter": "remove",
		"q":     "quit",
	})

	out := bar.Render(120)

	if !strings.Contains(out, "Artifacts") {
		t.Error("expected view name in status bar")
	}
	if !strings.Contains(out, "2/5 selected") {
		t.Error("expected selection count in status bar")
	}
	if !strings.Contains(out, "300.00 MB") {
		t.Error("expected selection size in status bar")
	}
	for _, shortcut := range []string{"toggle", "remove", "quit"} {
		if !strings.Contains(out, shortcut) {
			t.Errorf("expected shortcut %q in status bar", shortcut)
		}
	}
}

func TestStatusBarOmitsEmptySections(t *testing.T) {
	bar := NewStatusBar()
	bar.SetView("Applications")

	out := bar.Render(80)

	if strings.Contains(out, "selected") {
		t.Error("expected no selection section without a selection")
	}
}

func TestRenderSimple(t *testing.T) {
	out := RenderSimple("Loading...", 80)
	if !strings.Contains(out, "Loading...") {
		t.Error("expected message in simple status bar")
	}
}
