package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/config"
	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/platform"
	"github.com/fenilsonani/appsweep/internal/reporter"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
)

// ViewState represents the current view in the app
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewAppList
	ViewArtifacts
	ViewConfirm
	ViewRemoving
	ViewSummary
	ViewHelp
)

// AppModel is the root model for the interactive TUI
type AppModel struct {
	// Current state
	state         ViewState
	previousState ViewState // For back navigation

	// Shared data
	config       *config.Config
	platformInfo *platform.Info

	// View models
	loadingView   *LoadingViewModel
	appListView   *AppListViewModel
	artifactsView *ArtifactsViewModel
	confirmView   *ConfirmViewModel
	removalView   *RemovalViewModel
	summaryView   *SummaryViewModel

	// UI state
	width  int
	height int
	err    error
}

// NewAppModel creates a new app model
func NewAppModel(cfg *config.Config, platformInfo *platform.Info) *AppModel {
	return &AppModel{
		state:        ViewLoading,
		config:       cfg,
		platformInfo: platformInfo,
	}
}

// Init initializes the model
func (m *AppModel) Init() tea.Cmd {
	m.loadingView = NewLoadingViewModel(m.platformInfo)
	return m.loadingView.Init()
}

// Update handles messages
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Allow quitting from most views except during active removal
			if m.state != ViewRemoving && !m.capturesKeys() {
				return m, tea.Quit
			}
		case "?":
			if m.state == ViewHelp {
				m.state = m.previousState
				return m, nil
			}
			if m.state != ViewRemoving && !m.capturesKeys() {
				m.previousState = m.state
				m.state = ViewHelp
				return m, nil
			}
		case "esc":
			switch m.state {
			case ViewHelp:
				m.state = m.previousState
				return m, nil
			case ViewArtifacts:
				if !m.capturesKeys() {
					m.state = ViewAppList
					return m, nil
				}
			case ViewConfirm:
				m.state = ViewArtifacts
				return m, nil
			}
		default:
			if m.state == ViewHelp {
				m.state = m.previousState
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case AppsLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.appListView = NewAppListViewModel(msg.Apps, m.width, m.height)
		m.state = ViewAppList
		return m, nil

	case AppChosenMsg:
		m.artifactsView = NewArtifactsViewModel(m.config, m.platformInfo, msg.App, m.width, m.height)
		m.state = ViewArtifacts
		return m, m.artifactsView.Init()

	case ArtifactsSelectedMsg:
		m.confirmView = NewConfirmViewModel(m.artifactsView.app, msg.Artifacts, m.config, m.width, m.height)
		m.state = ViewConfirm
		return m, nil

	case ConfirmedMsg:
		m.removalView = NewRemovalViewModel(m.config, m.platformInfo, m.confirmView.app, m.confirmView.artifacts)
		m.state = ViewRemoving
		return m, m.removalView.Init()

	case ReviewSelectionMsg:
		// Back to the artifact checklist with selections intact
		m.state = ViewArtifacts
		return m, nil

	case RemovalCompleteMsg:
		m.summaryView = NewSummaryViewModel(msg.Summary)
		m.state = ViewSummary
		return m, nil
	}

	// Delegate to current view
	return m.delegateUpdate(msg)
}

// capturesKeys reports whether the current view wants raw key input, so
// global shortcuts must stand down.
func (m *AppModel) capturesKeys() bool {
	return m.state == ViewAppList && m.appListView != nil && m.appListView.filtering
}

// delegateUpdate delegates the update to the current view
func (m *AppModel) delegateUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.state {
	case ViewLoading:
		if m.loadingView != nil {
			m.loadingView, cmd = m.loadingView.Update(msg)
		}
	case ViewAppList:
		if m.appListView != nil {
			m.appListView, cmd = m.appListView.Update(msg)
		}
	case ViewArtifacts:
		if m.artifactsView != nil {
			m.artifactsView, cmd = m.artifactsView.Update(msg)
		}
	case ViewConfirm:
		if m.confirmView != nil {
			m.confirmView, cmd = m.confirmView.Update(msg)
		}
	case ViewRemoving:
		if m.removalView != nil {
			m.removalView, cmd = m.removalView.Update(msg)
		}
	case ViewSummary:
		if m.summaryView != nil {
			m.summaryView, cmd = m.summaryView.Update(msg)
		}
	}

	return m, cmd
}

// View renders the current view
func (m *AppModel) View() string {
	if m.err != nil {
		return styles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\nPress q to quit."
	}

	switch m.state {
	case ViewLoading:
		if m.loadingView != nil {
			return m.loadingView.View()
		}
	case ViewAppList:
		if m.appListView != nil {
			return m.appListView.View()
		}
	case ViewArtifacts:
		if m.artifactsView != nil {
			return m.artifactsView.View()
		}
	case ViewConfirm:
		if m.confirmView != nil {
			return m.confirmView.View()
		}
	case ViewRemoving:
		if m.removalView != nil {
			return m.removalView.View()
		}
	case ViewSummary:
		if m.summaryView != nil {
			return m.summaryView.View()
		}
	case ViewHelp:
		return m.renderHelp()
	}

	return "Loading..."
}

// renderHelp renders the help view with context-aware content
func (m *AppModel) renderHelp() string {
	var b strings.Builder

	var viewName string
	var helpContent string

	switch m.previousState {
	case ViewLoading:
		viewName = "Loading"
		helpContent = m.getHelpForLoading()
	case ViewAppList:
		viewName = "Applications"
		helpContent = m.getHelpForAppList()
	case ViewArtifacts:
		viewName = "Artifact Selection"
		helpContent = m.getHelpForArtifacts()
	case ViewConfirm:
		viewName = "Confirmation"
		helpContent = m.getHelpForConfirm()
	case ViewSummary:
		viewName = "Summary"
		helpContent = m.getHelpForSummary()
	default:
		viewName = "General"
		helpContent = m.getHelpForGeneral()
	}

	title := fmt.Sprintf("Help - %s", viewName)
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(helpContent)

	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("Press any key to close"))

	return b.String()
}

func (m *AppModel) getHelpForLoading() string {
	return `Looking up the applications installed on this machine.

Actions:
  ctrl+c  - Cancel and exit
  q       - Cancel and exit

The application list appears automatically when the lookup finishes.`
}

func (m *AppModel) getHelpForAppList() string {
	return `Pick the application whose leftover data you want to remove.

Navigation:
  ↑/k     - Move up
  ↓/j     - Move down
  g       - Go to top
  G       - Go to bottom
  ctrl+f  - Page down
  ctrl+b  - Page up

Actions:
  /       - Filter by name or bundle identifier
  enter   - Show the application's artifacts
  q       - Quit`
}

func (m *AppModel) getHelpForArtifacts() string {
	return `Choose which of the application's artifacts to remove.

Navigation:
  ↑/k     - Move up
  ↓/j     - Move down
  g       - Go to top
  G       - Go to bottom

Selection:
  space   - Toggle item
  x       - Toggle item and move down
  a       - Select all unprotected items
  d       - Deselect all

Other:
  i       - Show details for the highlighted item
  enter   - Proceed to confirmation
  esc     - Back to application list
  q       - Quit

Items marked 🔒 hold sandboxed container data and must be
selected one by one.`
}

func (m *AppModel) getHelpForConfirm() string {
	return `Review and confirm the removal.

Navigation:
  ←/→/h/l - Switch between buttons

Actions:
  enter   - Activate the highlighted button
  y       - Yes, remove
  e       - Edit selection (go back)
  n       - Cancel and quit
  esc     - Back to artifact selection

Trash mode moves artifacts to the Trash where they can be
restored; permanent mode deletes them outright.`
}

func (m *AppModel) getHelpForSummary() string {
	return `Removal complete. Review the results.

Actions:
  enter   - Exit application
  q       - Exit application

Results show:
  - Artifacts removed and space freed
  - Any failures with the reason for each`
}

func (m *AppModel) getHelpForGeneral() string {
	return `AppSweep - Interactive Mode Help

Global Shortcuts:
  ?       - Toggle this help
  esc     - Go back / Close help
  q       - Quit (from most views)
  ctrl+c  - Force quit

This interactive mode guides you through:
  1. Applications - Pick an installed application
  2. Artifacts - Select the data it left behind
  3. Confirmation - Review your choices
  4. Removal - Watch progress as items are removed
  5. Summary - View results

Press ? at any time to see context-specific help.`
}

// Custom messages
type AppsLoadedMsg struct {
	Apps []apps.Application
	Err  error
}

type AppChosenMsg struct {
	App apps.Application
}

type ArtifactsSelectedMsg struct {
	Artifacts []discovery.CandidateArtifact
}

type ConfirmedMsg struct{}

type ReviewSelectionMsg struct{}

type RemovalCompleteMsg struct {
	Summary *reporter.RemovalSummary
}
