package daemon

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the orphan scan on the configured cron schedule
type Scheduler struct {
	daemon   *Daemon
	cron     *cron.Cron
	schedule string
	entry    cron.EntryID
	mu       sync.Mutex
	running  bool

	job func() // test seam, defaults to the daemon's scan job
}

// NewScheduler creates a new scheduler
func NewScheduler(daemon *Daemon, schedule string) *Scheduler {
	parser := cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)

	logger := cronLogger{daemon.logger}
	c := cron.New(cron.WithParser(parser), cron.WithChain(
		cron.Recover(logger),
	))

	s := &Scheduler{
		daemon:   daemon,
		cron:     c,
		schedule: schedule,
	}
	s.job = s.runScan
	return s
}

func (s *Scheduler) runScan() {
	if err := s.daemon.RunScanJob(); err != nil {
		s.daemon.logger.Error().Err(err).Msg("scheduled scan failed")
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	id, err := s.cron.AddFunc(s.schedule, func() { s.job() })
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.entry = id

	s.cron.Start()
	s.running = true

	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		// Clean shutdown
	case <-time.After(10 * time.Second):
		s.daemon.logger.Warn().Msg("scheduler stop timed out")
	}

	s.running = false
}

// NextRun returns the next scheduled run time
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}

// cronLogger adapts the daemon logger to cron's logging interface.
type cronLogger struct {
	logger *Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
