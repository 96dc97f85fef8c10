package providers

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_RunsLastScheduled(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var ran atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		i := int32(i)
		d.Schedule(func() {
			ran.Add(1)
			last.Store(i)
		})
	}

	time.Sleep(100 * time.Millisecond)
	if got := ran.Load(); got != 1 {
		t.Errorf("expected exactly one run, got %d", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("expected the last scheduled function to run, got %d", got)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var ran atomic.Int32
	d.Schedule(func() { ran.Add(1) })
	d.Cancel()

	time.Sleep(100 * time.Millisecond)
	if got := ran.Load(); got != 0 {
		t.Errorf("expected no run after cancel, got %d", got)
	}
}

func TestDebouncer_RescheduleAfterCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var ran atomic.Int32
	d.Schedule(func() { ran.Add(1) })
	d.Cancel()
	d.Schedule(func() { ran.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if got := ran.Load(); got != 1 {
		t.Errorf("expected one run, got %d", got)
	}
}
