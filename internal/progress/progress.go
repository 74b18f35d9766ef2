// Package progress carries live status between long-running engine
// operations and whichever frontend is watching them.
package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/fenilsonani/appsweep/pkg/utils"
)

// Phase represents the current phase of operation
type Phase string

const (
	PhaseDiscovering Phase = "discovering"
	PhaseRemoving    Phase = "removing"
	PhaseComplete    Phase = "complete"
	PhaseError       Phase = "error"
)

// DiscoveryProgress represents progress during artifact discovery
type DiscoveryProgress struct {
	Phase          Phase
	App            string
	ArtifactsFound int
	TotalSize      int64
	StartTime      time.Time
	Error          error
}

// RemovalProgress represents progress during removal
type RemovalProgress struct {
	Phase       Phase
	CurrentPath string
	Completed   int
	Total       int
	FreedSize   int64
	FailedCount int
	NeedsAdmin  bool
	StartTime   time.Time
	Error       error
}

// ProgressReporter fans progress updates out to any number of listeners.
// Publishing never blocks: a listener that falls behind misses updates and
// catches up on the next one.
type ProgressReporter struct {
	mu        sync.RWMutex
	discovery *DiscoveryProgress
	removal   *RemovalProgress
	listeners []chan interface{}
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{}
}

// Subscribe returns a channel that receives progress updates
func (pr *ProgressReporter) Subscribe() <-chan interface{} {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	ch := make(chan interface{}, 10)
	pr.listeners = append(pr.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (pr *ProgressReporter) Unsubscribe(ch <-chan interface{}) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	for i, listener := range pr.listeners {
		if listener == ch {
			close(listener)
			pr.listeners = append(pr.listeners[:i], pr.listeners[i+1:]...)
			return
		}
	}
}

// UpdateDiscovery updates discovery progress and notifies listeners
func (pr *ProgressReporter) UpdateDiscovery(update *DiscoveryProgress) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	pr.discovery = update
	pr.notifyLocked(update)
}

// UpdateRemoval updates removal progress and notifies listeners
func (pr *ProgressReporter) UpdateRemoval(update *RemovalProgress) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	pr.removal = update
	pr.notifyLocked(update)
}

// notifyLocked pushes update to every listener. Sends are non-blocking,
// so holding the lock here cannot stall the publishing operation.
func (pr *ProgressReporter) notifyLocked(update interface{}) {
	for _, ch := range pr.listeners {
		select {
		case ch <- update:
		default:
		}
	}
}

// GetDiscovery returns the current discovery progress
func (pr *ProgressReporter) GetDiscovery() *DiscoveryProgress {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	return pr.discovery
}

// GetRemoval returns the current removal progress
func (pr *ProgressReporter) GetRemoval() *RemovalProgress {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	return pr.removal
}

// FormatDiscovery returns a human-readable discovery progress string
func FormatDiscovery(p *DiscoveryProgress) string {
	if p == nil {
		return "Initializing..."
	}

	switch p.Phase {
	case PhaseDiscovering:
		return fmt.Sprintf("Scanning for %s... Found %d artifacts (%s) [%s]",
			p.App, p.ArtifactsFound, utils.FormatBytes(p.TotalSize),
			FormatDuration(time.Since(p.StartTime)))
	case PhaseComplete:
		return fmt.Sprintf("Scan complete: %d artifacts (%s) in %s",
			p.ArtifactsFound, utils.FormatBytes(p.TotalSize),
			FormatDuration(time.Since(p.StartTime)))
	case PhaseError:
		return fmt.Sprintf("Scan error: %v", p.Error)
	default:
		return "Scanning..."
	}
}

// FormatRemoval returns a human-readable removal progress string
func FormatRemoval(p *RemovalProgress) string {
	if p == nil {
		return "Preparing..."
	}

	elapsed := time.Since(p.StartTime)

	switch p.Phase {
	case PhaseRemoving:
		percentage := 0
		if p.Total > 0 {
			percentage = p.Completed * 100 / p.Total
		}

		admin := ""
		if p.NeedsAdmin {
			admin = " [ADMIN]"
		}

		return fmt.Sprintf("Removing... %d/%d items (%d%%) - %s freed%s%s",
			p.Completed, p.Total, percentage,
			utils.FormatBytes(p.FreedSize), admin, removalETA(p, elapsed))
	case PhaseComplete:
		summary := fmt.Sprintf("Removal complete: %d items (%s) in %s",
			p.Completed, utils.FormatBytes(p.FreedSize), FormatDuration(elapsed))
		if p.FailedCount > 0 {
			summary += fmt.Sprintf(", %d failed", p.FailedCount)
		}
		return summary
	case PhaseError:
		return fmt.Sprintf("Removal error: %v", p.Error)
	default:
		return "Preparing removal..."
	}
}

// removalETA projects time remaining from the average pace so far.
func removalETA(p *RemovalProgress, elapsed time.Duration) string {
	if p.Completed <= 0 || p.Total <= p.Completed {
		return ""
	}

	perItem := elapsed / time.Duration(p.Completed)
	remaining := time.Duration(p.Total-p.Completed) * perItem
	return fmt.Sprintf(" ETA: %s", FormatDuration(remaining))
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	s := int(d.Round(time.Second).Seconds())

	switch {
	case s >= 3600:
		return fmt.Sprintf("%dh%dm%ds", s/3600, s%3600/60, s%60)
	case s >= 60:
		return fmt.Sprintf("%dm%ds", s/60, s%60)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
