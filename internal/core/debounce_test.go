package core

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_OnlyLastOfBurstRuns(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var ran atomic.Int32
	var last atomic.Int32

	var chans []<-chan bool
	for i := 1; i <= 5; i++ {
		chans = append(chans, d.Schedule(func() {
			ran.Add(1)
			last.Store(int32(i))
		}))
	}

	for i, ch := range chans {
		select {
		case applied := <-ch:
			if want := i == len(chans)-1; applied != want {
				t.Errorf("task %d applied = %v, want %v", i+1, applied, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("task %d never reported", i+1)
		}
	}

	if ran.Load() != 1 {
		t.Errorf("ran %d tasks, want 1", ran.Load())
	}
	if last.Load() != 5 {
		t.Errorf("last task = %d, want 5", last.Load())
	}
}

func TestDebouncer_SeparatedInputsBothRun(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	for i := 0; i < 2; i++ {
		select {
		case applied := <-d.Schedule(func() {}):
			if !applied {
				t.Fatalf("input %d was cancelled", i)
			}
		case <-time.After(time.Second):
			t.Fatalf("input %d never reported", i)
		}
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(time.Hour)

	var ran atomic.Bool
	ch := d.Schedule(func() { ran.Store(true) })
	if !d.Pending() {
		t.Fatal("Pending() = false right after Schedule")
	}

	d.Stop()

	select {
	case applied := <-ch:
		if applied {
			t.Error("stopped task reported applied")
		}
	case <-time.After(time.Second):
		t.Fatal("stopped task never reported")
	}
	if ran.Load() {
		t.Error("stopped task ran")
	}
	if d.Pending() {
		t.Error("Pending() = true after Stop")
	}
}

func TestNewDebouncer_DefaultWindow(t *testing.T) {
	if got := NewDebouncer(0).Window(); got != DefaultDebounceWindow {
		t.Errorf("Window() = %v, want %v", got, DefaultDebounceWindow)
	}
}
