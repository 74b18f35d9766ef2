package models

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/config"
	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/remover"
)

func confirmConfig(mode string, dryRun bool) *config.Config {
	cfg := config.GetDefault()
	cfg.Removal.Mode = mode
	cfg.Removal.DryRun = dryRun
	return cfg
}

func newConfirmView(t *testing.T, mode string) *ConfirmViewModel {
	t.Helper()
	return NewConfirmViewModel(
		apps.Application{Name: "Slack", BundleID: "com.tinyspeck.slackmacgap"},
		exampleCandidates(),
		confirmConfig(mode, false),
		100, 40,
	)
}

func TestConfirmDefaultCursor(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		artifacts []discovery.CandidateArtifact
		expected  int
	}{
		{"trash mode", "trash", exampleCandidates(), 0},
		{"permanent with protected defaults to cancel", "permanent", exampleCandidates(), 2},
		{"permanent without protected", "permanent", exampleCandidates()[:2], 0},
		{"unknown mode falls back to trash", "shred", exampleCandidates(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmViewModel(apps.Application{Name: "Slack"}, tt.artifacts, confirmConfig(tt.mode, false), 100, 40)
			if m.cursor != tt.expected {
				t.Errorf("expected cursor %d, got %d", tt.expected, m.cursor)
			}
		})
	}
}

func TestConfirmNavigation(t *testing.T) {
	m := newConfirmView(t, "trash")

	// Left at the first button stays put
	m, _ = m.Update(keyRunes("h"))
	if m.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", m.cursor)
	}

	m, _ = m.Update(keyRunes("l"))
	m, _ = m.Update(keyRunes("l"))
	if m.cursor != 2 {
		t.Errorf("expected cursor at 2, got %d", m.cursor)
	}

	m, _ = m.Update(keyRunes("l"))
	if m.cursor != 2 {
		t.Errorf("expected cursor to stay at 2, got %d", m.cursor)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.cursor != 0 {
		t.Errorf("expected tab to wrap to 0, got %d", m.cursor)
	}
}

func TestConfirmShortcuts(t *testing.T) {
	m := newConfirmView(t, "trash")

	_, cmd := m.Update(keyRunes("y"))
	if cmd == nil {
		t.Fatal("expected y to produce a command")
	}
	if _, ok := cmd().(ConfirmedMsg); !ok {
		t.Errorf("expected ConfirmedMsg from y, got %T", cmd())
	}

	_, cmd = m.Update(keyRunes("e"))
	if cmd == nil {
		t.Fatal("expected e to produce a command")
	}
	if _, ok := cmd().(ReviewSelectionMsg); !ok {
		t.Errorf("expected ReviewSelectionMsg from e, got %T", cmd())
	}

	_, cmd = m.Update(keyRunes("n"))
	if cmd == nil {
		t.Fatal("expected n to produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg from n, got %T", cmd())
	}
}

func TestConfirmEnterFollowsCursor(t *testing.T) {
	m := newConfirmView(t, "trash")

	_, cmd := m.Update(keyEnter())
	if _, ok := cmd().(ConfirmedMsg); !ok {
		t.Errorf("expected ConfirmedMsg at cursor 0, got %T", cmd())
	}

	m, _ = m.Update(keyRunes("l"))
	_, cmd = m.Update(keyEnter())
	if _, ok := cmd().(ReviewSelectionMsg); !ok {
		t.Errorf("expected ReviewSelectionMsg at cursor 1, got %T", cmd())
	}

	m, _ = m.Update(keyRunes("l"))
	_, cmd = m.Update(keyEnter())
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg at cursor 2, got %T", cmd())
	}
}

func TestConfirmViewContents(t *testing.T) {
	m := newConfirmView(t, "trash")
	view := m.View()

	if !strings.Contains(view, "Confirm Removal") {
		t.Error("expected title in view")
	}
	if !strings.Contains(view, "Slack") {
		t.Error("expected application name in view")
	}
	if !strings.Contains(view, "protected artifacts included") {
		t.Error("expected protected warning in view")
	}
	if !strings.Contains(view, "moved to the Trash") {
		t.Error("expected trash mode notice in view")
	}
}

func TestConfirmViewPermanentWarning(t *testing.T) {
	m := newConfirmView(t, "permanent")
	if m.mode != remover.ModePermanent {
		t.Fatalf("expected permanent mode, got %v", m.mode)
	}

	view := m.View()
	if !strings.Contains(view, "permanently deleted") {
		t.Error("expected permanent deletion warning in view")
	}
}

func TestConfirmViewDryRun(t *testing.T) {
	m := NewConfirmViewModel(apps.Application{Name: "Slack"}, exampleCandidates(), confirmConfig("trash", true), 100, 40)

	view := m.View()
	if !strings.Contains(view, "Dry run") {
		t.Error("expected dry run notice in view")
	}
}
