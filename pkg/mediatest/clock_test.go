package mediatest

import (
	"testing"
	"time"
)

func TestFakeClockFiresInDeadlineOrder(t *testing.T) {
	c := NewFakeClock()
	var order []string
	c.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	c.AfterFunc(time.Second, func() { order = append(order, "a") })

	c.Advance(3 * time.Second)

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("fire order = %v, want [a b]", order)
	}
	if got := c.PendingTimers(); got != 0 {
		t.Errorf("PendingTimers = %d, want 0", got)
	}
}

func TestFakeClockDoesNotFireEarly(t *testing.T) {
	c := NewFakeClock()
	fired := false
	c.AfterFunc(time.Second, func() { fired = true })

	c.Advance(999 * time.Millisecond)
	if fired {
		t.Fatal("timer fired before its deadline")
	}
	c.Advance(time.Millisecond)
	if !fired {
		t.Error("timer did not fire at its deadline")
	}
}

func TestFakeClockCancel(t *testing.T) {
	c := NewFakeClock()
	fired := false
	cancel := c.AfterFunc(time.Second, func() { fired = true })
	cancel()
	cancel() // safe to call again

	c.Advance(2 * time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
	if got := c.PendingTimers(); got != 0 {
		t.Errorf("PendingTimers = %d, want 0", got)
	}
}

func TestFakeClockCallbackMaySchedule(t *testing.T) {
	c := NewFakeClock()
	var fires int
	c.AfterFunc(time.Second, func() {
		fires++
		// Rescheduling from inside a callback must not deadlock; the new
		// timer fires in the same Advance when already due.
		c.AfterFunc(time.Second, func() { fires++ })
	})

	c.Advance(2 * time.Second)
	if fires != 2 {
		t.Errorf("fires = %d, want 2", fires)
	}
}

func TestFakeClockNowAdvances(t *testing.T) {
	c := NewFakeClock()
	start := c.Now()
	c.Advance(1500 * time.Millisecond)
	if got := c.Now().Sub(start); got != 1500*time.Millisecond {
		t.Errorf("elapsed = %v, want 1.5s", got)
	}
}
