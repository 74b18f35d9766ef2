package security

import (
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// DefaultProbeTTL bounds how long a probe answer is reused before the
// external status check runs again.
const DefaultProbeTTL = 5 * time.Minute

// ProbeFunc asks the operating system whether integrity protection is
// active. It is invoked rarely; results are cached by SIPProbe.
type ProbeFunc func() (bool, error)

// SIPProbe is an IntegrityOracle backed by an external status probe with a
// bounded-TTL cache. Callers must tolerate a stale "enabled" answer for up
// to the TTL. A probe that cannot run counts as enabled.
type SIPProbe struct {
	mu        sync.Mutex
	probe     ProbeFunc
	ttl       time.Duration
	enabled   bool
	checkedAt time.Time
}

// NewSIPProbe creates a probe cache. A nil probe uses the platform's native
// status command; a non-positive ttl uses DefaultProbeTTL.
func NewSIPProbe(probe ProbeFunc, ttl time.Duration) *SIPProbe {
	if probe == nil {
		probe = platformProbe
	}
	if ttl <= 0 {
		ttl = DefaultProbeTTL
	}
	return &SIPProbe{
		probe: probe,
		ttl:   ttl,
	}
}

// Enabled returns the cached protection status, refreshing it once the TTL
// has elapsed.
func (p *SIPProbe) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.checkedAt.IsZero() && time.Since(p.checkedAt) < p.ttl {
		return p.enabled
	}

	enabled, err := p.probe()
	if err != nil {
		enabled = true
	}

	p.enabled = enabled
	p.checkedAt = time.Now()
	return p.enabled
}

// Invalidate drops the cached answer so the next Enabled call probes again.
func (p *SIPProbe) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checkedAt = time.Time{}
}

// platformProbe runs the OS integrity-status command. Platforms without one
// report protection as enabled.
func platformProbe() (bool, error) {
	if runtime.GOOS != "darwin" {
		return true, nil
	}

	out, err := exec.Command("csrutil", "status").Output()
	if err != nil {
		return true, err
	}

	return strings.Contains(strings.ToLower(string(out)), "enabled"), nil
}
