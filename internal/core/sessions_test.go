package core

import (
	"context"
	"testing"
	"time"
)

func newTestSessions(idle time.Duration) *Sessions {
	return NewSessions(func() *Controller {
		return NewController(&fakeAPI{}, ControllerConfig{})
	}, idle)
}

func TestSessions_GetCreatesAndReuses(t *testing.T) {
	s := newTestSessions(time.Minute)
	defer s.CloseAll()

	id, c1 := s.Get("")
	if id == "" || c1 == nil {
		t.Fatalf("Get(\"\") = %q, %v", id, c1)
	}

	same, c2 := s.Get(id)
	if same != id || c2 != c1 {
		t.Error("Get(id) should return the existing session")
	}

	other, c3 := s.Get("unknown-id")
	if other == "unknown-id" || c3 == c1 {
		t.Error("unknown id should start a fresh session with a new id")
	}

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSessions_LookupNeverCreates(t *testing.T) {
	s := newTestSessions(time.Minute)
	defer s.CloseAll()

	for _, id := range []string{"", "unknown-id"} {
		if ctrl, ok := s.Lookup(id); ok || ctrl != nil {
			t.Errorf("Lookup(%q) = %v, %v; want miss", id, ctrl, ok)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d after misses, want 0", s.Len())
	}

	id, started := s.Start()
	if ctrl, ok := s.Lookup(id); !ok || ctrl != started {
		t.Error("Lookup should find a started session")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSessions_SessionsAreIndependent(t *testing.T) {
	s := newTestSessions(time.Minute)
	defer s.CloseAll()

	_, a := s.Get("")
	_, b := s.Get("")

	a.SetPageSize(20)
	if b.State().PageSize != DefaultPageSize {
		t.Error("page size leaked between sessions")
	}
}

func TestSessions_SweepEvictsIdle(t *testing.T) {
	s := newTestSessions(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	stale, _ := s.Get("")
	now = now.Add(50 * time.Second)
	fresh, _ := s.Get("")
	now = now.Add(20 * time.Second)

	if n := s.Sweep(); n != 1 {
		t.Fatalf("Sweep() = %d, want 1", n)
	}
	if got, _ := s.Get(fresh); got != fresh {
		t.Error("fresh session was evicted")
	}
	if got, _ := s.Get(stale); got == stale {
		t.Error("stale session survived")
	}
}

func TestSessions_RunJanitorClosesOnCancel(t *testing.T) {
	s := newTestSessions(time.Minute)
	s.Get("")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after shutdown, want 0", s.Len())
	}
}
