package view

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { atomic.AddInt32(&calls, 1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a burst to collapse into 1 call, got %d", got)
	}
}

func TestDebouncerRunsAgainAfterQuiet(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(60 * time.Millisecond)
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(60 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 separate runs, got %d", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("expected no call after Stop, got %d", got)
	}
}

func TestDebouncerZeroDurationFallsBack(t *testing.T) {
	d := NewDebouncer(0)
	defer d.Stop()
	if d.d != DefaultDebounce {
		t.Fatalf("expected default interval %v, got %v", DefaultDebounce, d.d)
	}
}
