package engine

import (
	"testing"
	"time"
)

func TestCountdownFiresOnExpiry(t *testing.T) {
	fired := make(chan struct{})
	c := NewCountdown(1, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("countdown did not fire")
	}
	if c.Running() {
		t.Error("Running() = true after expiry")
	}
}

func TestCountdownStopCancels(t *testing.T) {
	fired := make(chan struct{})
	c := NewCountdown(1, func() { close(fired) })

	if !c.Stop() {
		t.Fatal("Stop() = false, want true for a pending countdown")
	}

	select {
	case <-fired:
		t.Fatal("callback fired after Stop")
	case <-time.After(1500 * time.Millisecond):
	}

	// Second stop is a no-op.
	if c.Stop() {
		t.Error("second Stop() = true, want false")
	}
}

func TestCountdownRemaining(t *testing.T) {
	c := NewCountdown(20, func() {})
	defer c.Stop()

	got := c.Remaining()
	if got < 18 || got > 20 {
		t.Errorf("Remaining() = %d, want ~20", got)
	}
	if !c.Running() {
		t.Error("Running() = false for pending countdown")
	}
}

func TestCountdownUntimed(t *testing.T) {
	c := NewCountdown(0, func() { t.Error("untimed countdown fired") })

	if c.Running() {
		t.Error("Running() = true for untimed countdown")
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", c.Remaining())
	}
	if c.Stop() {
		t.Error("Stop() = true for untimed countdown")
	}
}
