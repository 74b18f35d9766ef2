// Package ui holds the interactive terminal interface: a bubbletea program
// that walks from application selection through artifact review to removal.
package ui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/fenilsonani/appsweep/internal/config"
	"github.com/fenilsonani/appsweep/internal/platform"
	"github.com/fenilsonani/appsweep/internal/ui/models"
)

// RunInteractive starts the interactive TUI mode. It refuses to start when
// stdout is not a terminal; scripted callers should use the scan and remove
// commands instead.
func RunInteractive(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("interactive mode requires a terminal; use scan/remove for scripted runs")
	}

	platformInfo, err := platform.GetInfo()
	if err != nil {
		return fmt.Errorf("failed to get platform info: %w", err)
	}

	program := tea.NewProgram(
		models.NewAppModel(cfg, platformInfo),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running interactive mode: %w", err)
	}
	return nil
}
