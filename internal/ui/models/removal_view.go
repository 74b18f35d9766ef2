package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/config"
	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/platform"
	"github.com/fenilsonani/appsweep/internal/remover"
	"github.com/fenilsonani/appsweep/internal/reporter"
	"github.com/fenilsonani/appsweep/internal/security"
	"github.com/fenilsonani/appsweep/internal/trash"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
)

// RemovalViewModel drives the removal batch and shows live progress. The
// batch runs in its own goroutine; progress arrives over a channel sized to
// the batch so the engine never blocks on the UI.
type RemovalViewModel struct {
	app       apps.Application
	artifacts []discovery.CandidateArtifact
	engine    *remover.Engine
	mode      remover.Mode
	dryRun    bool

	spinner   spinner.Model
	bar       progress.Model
	completed int
	total     int
	startTime time.Time
	events    chan tea.Msg
}

// removalProgressMsg reports one finished artifact
type removalProgressMsg struct {
	completed int
	total     int
}

// NewRemovalViewModel creates a new removal view model
func NewRemovalViewModel(cfg *config.Config, platformInfo *platform.Info, app apps.Application, artifacts []discovery.CandidateArtifact) *RemovalViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	var ttl time.Duration
	if cfg.Security.ProbeCacheTTL != "" {
		// Validated at config load time
		ttl, _ = time.ParseDuration(cfg.Security.ProbeCacheTTL)
	}

	probe := security.NewSIPProbe(nil, ttl)
	classifier := security.NewClassifier(platformInfo, probe)
	engine := remover.NewEngine(classifier, trash.NewBin(platformInfo), remover.NewAdminSession())
	engine.SetDryRun(cfg.Removal.DryRun)

	mode, err := remover.ParseMode(cfg.Removal.Mode)
	if err != nil {
		mode = remover.ModeTrash
	}

	return &RemovalViewModel{
		app:       app,
		artifacts: artifacts,
		engine:    engine,
		mode:      mode,
		dryRun:    cfg.Removal.DryRun,
		spinner:   s,
		bar:       progress.New(progress.WithDefaultGradient()),
		total:     len(artifacts),
		startTime: time.Now(),
		events:    make(chan tea.Msg, len(artifacts)+1),
	}
}

// Init initializes the removal view
func (m *RemovalViewModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.performRemoval,
		m.awaitEvent,
	)
}

// performRemoval runs the batch and returns the completion message
func (m *RemovalViewModel) performRemoval() tea.Msg {
	outcomes := m.engine.Remove(m.artifacts, m.mode, func(completed, total int) {
		m.events <- removalProgressMsg{completed: completed, total: total}
	})

	request := &reporter.RemovalRequest{
		App:       m.app.Name,
		Artifacts: m.artifacts,
		Mode:      m.mode,
		DryRun:    m.dryRun,
	}

	close(m.events)
	return RemovalCompleteMsg{Summary: reporter.Summarize(request, outcomes)}
}

// awaitEvent delivers the next progress event to the program
func (m *RemovalViewModel) awaitEvent() tea.Msg {
	return <-m.events
}

// Update handles messages
func (m *RemovalViewModel) Update(msg tea.Msg) (*RemovalViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case removalProgressMsg:
		m.completed = msg.completed
		m.total = msg.total
		return m, m.awaitEvent
	}

	return m, nil
}

// View renders the removal view
func (m *RemovalViewModel) View() string {
	var b strings.Builder

	title := "🗑  Removing Artifacts"
	if m.dryRun {
		title = "🗑  Removing Artifacts (dry run)"
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.spinner.View())
	b.WriteString(fmt.Sprintf(" Removing data for %s... ", m.app.Name))
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second))))
	b.WriteString("\n\n")

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.completed) / float64(m.total)
	}
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Progress: %d/%d artifacts", m.completed, m.total))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpStyle.Render("Removal cannot be interrupted"))

	return b.String()
}
