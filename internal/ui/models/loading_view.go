package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/platform"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
)

// LoadingViewModel shows a spinner while the installed applications are
// looked up.
type LoadingViewModel struct {
	platformInfo *platform.Info
	spinner      spinner.Model
	startTime    time.Time
}

// NewLoadingViewModel creates a new loading view model
func NewLoadingViewModel(platformInfo *platform.Info) *LoadingViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return &LoadingViewModel{
		platformInfo: platformInfo,
		spinner:      s,
		startTime:    time.Now(),
	}
}

// Init initializes the loading view
func (m *LoadingViewModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadApplications,
	)
}

// Update handles messages
func (m *LoadingViewModel) Update(msg tea.Msg) (*LoadingViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the loading view
func (m *LoadingViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🔍 AppSweep"))
	b.WriteString("\n\n")

	b.WriteString(m.spinner.View())
	b.WriteString(" Discovering installed applications... ")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second))))
	b.WriteString("\n\n")

	for _, dir := range m.platformInfo.ApplicationsDirs {
		b.WriteString(styles.DimStyle.Render("  " + dir))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("Press ctrl+c to cancel"))

	return b.String()
}

// loadApplications lists the installed applications
func (m *LoadingViewModel) loadApplications() tea.Msg {
	applications, err := apps.List(m.platformInfo)
	if err != nil {
		return AppsLoadedMsg{Err: err}
	}
	return AppsLoadedMsg{Apps: applications}
}
