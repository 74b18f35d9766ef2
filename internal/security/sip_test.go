package security

import (
	"errors"
	"testing"
	"time"
)

func TestSIPProbeCachesResult(t *testing.T) {
	calls := 0
	p := NewSIPProbe(func() (bool, error) {
		calls++
		return false, nil
	}, time.Hour)

	for i := 0; i < 5; i++ {
		if p.Enabled() {
			t.Fatalf("Enabled() call %d = true, want false", i+1)
		}
	}
	if calls != 1 {
		t.Errorf("probe ran %d times within TTL, want 1", calls)
	}
}

func TestSIPProbeRefreshesAfterTTL(t *testing.T) {
	calls := 0
	p := NewSIPProbe(func() (bool, error) {
		calls++
		return calls > 1, nil
	}, time.Hour)

	if p.Enabled() {
		t.Fatal("first Enabled() = true, want false")
	}

	// Age the cache past the TTL instead of sleeping.
	p.mu.Lock()
	p.checkedAt = time.Now().Add(-2 * time.Hour)
	p.mu.Unlock()

	if !p.Enabled() {
		t.Error("Enabled() after TTL expiry = false, want refreshed true")
	}
	if calls != 2 {
		t.Errorf("probe ran %d times, want 2", calls)
	}
}

func TestSIPProbeFailureAssumesEnabled(t *testing.T) {
	p := NewSIPProbe(func() (bool, error) {
		return false, errors.New("status command unavailable")
	}, time.Hour)

	if !p.Enabled() {
		t.Error("Enabled() with failing probe = false, want true")
	}
}

func TestSIPProbeInvalidate(t *testing.T) {
	calls := 0
	p := NewSIPProbe(func() (bool, error) {
		calls++
		return true, nil
	}, time.Hour)

	p.Enabled()
	p.Enabled()
	if calls != 1 {
		t.Fatalf("probe ran %d times before Invalidate, want 1", calls)
	}

	p.Invalidate()
	p.Enabled()
	if calls != 2 {
		t.Errorf("probe ran %d times after Invalidate, want 2", calls)
	}
}

func TestNewSIPProbeDefaults(t *testing.T) {
	p := NewSIPProbe(nil, 0)
	if p.ttl != DefaultProbeTTL {
		t.Errorf("ttl = %v, want %v", p.ttl, DefaultProbeTTL)
	}
	if p.probe == nil {
		t.Error("probe = nil, want platform default")
	}
}
