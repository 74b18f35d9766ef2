package daemon

import (
	"sync"
	"testing"
	"time"
)

func testDaemon(t *testing.T) *Daemon {
	t.Helper()
	return &Daemon{logger: newTestLogger(t)}
}

func TestSchedulerRunsJob(t *testing.T) {
	s := NewScheduler(testDaemon(t), "@every 50ms")

	var mu sync.Mutex
	var runs int
	s.job = func() {
		mu.Lock()
		runs++
		mu.Unlock()
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := runs
		mu.Unlock()
		if n >= 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("scheduled job never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSchedulerInvalidSchedule(t *testing.T) {
	s := NewScheduler(testDaemon(t), "whenever")
	if err := s.Start(); err == nil {
		t.Error("expected error for invalid schedule")
	}
}

func TestSchedulerDoubleStart(t *testing.T) {
	s := NewScheduler(testDaemon(t), "@daily")
	s.job = func() {}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	if err := s.Start(); err == nil {
		t.Error("expected error on second Start")
	}
}

func TestSchedulerNextRun(t *testing.T) {
	s := NewScheduler(testDaemon(t), "@daily")
	s.job = func() {}

	if !s.NextRun().IsZero() {
		t.Error("NextRun should be zero before Start")
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	next := s.NextRun()
	if next.IsZero() {
		t.Error("NextRun should be set after Start")
	}
	if next.After(time.Now().Add(25 * time.Hour)) {
		t.Errorf("NextRun %v is more than a day away", next)
	}

	s.Stop()
	if !s.NextRun().IsZero() {
		t.Error("NextRun should be zero after Stop")
	}
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := NewScheduler(testDaemon(t), "@daily")
	s.Stop()
}
