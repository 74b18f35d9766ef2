// Package daemon runs scheduled orphan scans in the background. The daemon
// only ever scans and reports; removal stays an interactive operation.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/config"
	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/platform"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

const defaultPidFile = "/tmp/appsweep-daemon.pid"

// Daemon represents the orphan-scan daemon
type Daemon struct {
	config      *config.Config
	scheduler   *Scheduler
	notifier    *Notifier
	logger      *Logger
	running     bool
	shutdownCtx context.Context
	cancelFunc  context.CancelFunc
	mu          sync.RWMutex
}

// New creates a new daemon instance
func New(cfg *config.Config) (*Daemon, error) {
	if cfg.Daemon == nil || !cfg.Daemon.Enabled {
		return nil, fmt.Errorf("daemon not enabled in configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())

	logger, err := NewLogger(cfg.Daemon.LogFile, cfg.Daemon.LogLevel)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	daemon := &Daemon{
		config:      cfg,
		logger:      logger,
		shutdownCtx: ctx,
		cancelFunc:  cancel,
	}

	daemon.scheduler = NewScheduler(daemon, cfg.Daemon.Schedule)

	if cfg.Daemon.Notify.Webhook != "" {
		daemon.notifier = NewNotifier(cfg.Daemon.Notify, logger)
	}

	return daemon, nil
}

// Start starts the daemon and blocks until shutdown
func (d *Daemon) Start() error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return fmt.Errorf("daemon already running")
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info().Msg("starting daemon")

	if err := d.acquireLock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer d.releaseLock()

	if err := d.writePidFile(); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	defer d.removePidFile()

	d.watchSignals()

	if err := d.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer d.scheduler.Stop()

	d.logger.Info().
		Str("schedule", d.config.Daemon.Schedule).
		Time("next_run", d.scheduler.NextRun()).
		Msg("daemon started")

	if d.notifier != nil {
		d.notifier.SendStartup()
	}

	<-d.shutdownCtx.Done()

	d.logger.Info().Msg("daemon shutting down")

	d.mu.Lock()
	d.running = false
	d.mu.Unlock()

	if d.notifier != nil {
		d.notifier.SendShutdown()
	}

	return nil
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	if d.cancelFunc != nil {
		d.cancelFunc()
	}
}

// IsRunning returns whether the daemon is running
func (d *Daemon) IsRunning() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.running
}

// Close releases the daemon's logger
func (d *Daemon) Close() error {
	return d.logger.Close()
}

// RunScanJob executes one orphan scan and reports the result
func (d *Daemon) RunScanJob() error {
	startTime := time.Now()
	d.logger.Info().Msg("running orphan scan")

	info, err := platform.GetInfo()
	if err != nil {
		return fmt.Errorf("failed to get platform info: %w", err)
	}

	installed, err := apps.List(info)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	engine := discovery.NewEngine(info)
	engine.ExtraVendorPrefixes = d.config.Scan.VendorAllowlist
	engine.ExcludePatterns = d.config.Scan.ExcludePatterns
	if d.config.Scan.OrphanMinSize != "" {
		// Validated at config load time
		if size, err := utils.ParseSize(d.config.Scan.OrphanMinSize); err == nil {
			engine.OrphanMinSize = size
		}
	}

	groups := engine.DiscoverOrphans(discovery.InstalledIndex(installed))

	var total int64
	for _, g := range groups {
		total += g.TotalSize
	}

	duration := time.Since(startTime)
	d.logger.Info().
		Int("installed_apps", len(installed)).
		Int("orphan_groups", len(groups)).
		Int64("reclaimable_bytes", total).
		Str("reclaimable", utils.FormatBytes(total)).
		Dur("duration", duration).
		Msg("orphan scan complete")

	for _, g := range groups {
		d.logger.Debug().
			Str("identifier", g.Identifier).
			Int("items", len(g.Artifacts)).
			Str("size", utils.FormatBytes(g.TotalSize)).
			Msg("orphan group")
	}

	if d.notifier != nil {
		d.notifier.SendScanReport(groups, duration)
	}

	return nil
}

// watchSignals translates process signals into daemon actions: INT and
// TERM shut down, HUP triggers an immediate scan.
func (d *Daemon) watchSignals() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for sig := range sigs {
			if sig == syscall.SIGHUP {
				d.logger.Info().Msg("received reload signal, triggering scan")
				go d.runScanLogged()
				continue
			}
			d.logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
			d.Stop()
		}
	}()
}

func (d *Daemon) runScanLogged() {
	if err := d.RunScanJob(); err != nil {
		d.logger.Error().Err(err).Msg("triggered scan failed")
	}
}

func (d *Daemon) pidFilePath() string {
	if d.config.Daemon.PidFile != "" {
		return d.config.Daemon.PidFile
	}
	return defaultPidFile
}

// acquireLock takes the exclusive lock file, failing when another daemon
// instance already holds it.
func (d *Daemon) acquireLock() error {
	lockFile := d.pidFilePath() + ".lock"

	file, err := os.OpenFile(lockFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("daemon already running (lock file exists at %s)", lockFile)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(file, "%d\n", os.Getpid())
	file.Close()
	return err
}

// releaseLock releases the lock file
func (d *Daemon) releaseLock() error {
	return os.Remove(d.pidFilePath() + ".lock")
}

// writePidFile writes the PID file
func (d *Daemon) writePidFile() error {
	return os.WriteFile(d.pidFilePath(), []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
}

// removePidFile removes the PID file
func (d *Daemon) removePidFile() error {
	return os.Remove(d.pidFilePath())
}
