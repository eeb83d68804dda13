package engine

import (
	"sync"
	"time"
)

// Countdown is the per-question timer owned by the session controller in
// timed modes. It is an explicit resource: started once, stoppable, and the
// expiry callback fires at most once. Stopping the session stops the
// countdown. That is the only cancellation in the engine.
type Countdown struct {
	mu        sync.Mutex
	duration  time.Duration
	startedAt time.Time
	timer     *time.Timer
	stopped   bool
}

// NewCountdown creates a countdown for the given number of seconds and
// starts it immediately. onExpire runs on the timer goroutine; it must not
// block. A non-positive limit returns a countdown that never fires, which
// is how untimed modes are driven through the same controller path.
func NewCountdown(limitSeconds int, onExpire func()) *Countdown {
	c := &Countdown{}
	if limitSeconds <= 0 {
		c.stopped = true
		return c
	}

	c.duration = time.Duration(limitSeconds) * time.Second
	c.startedAt = time.Now()
	c.timer = time.AfterFunc(c.duration, func() {
		c.mu.Lock()
		fire := !c.stopped
		c.stopped = true
		c.mu.Unlock()
		if fire {
			onExpire()
		}
	})
	return c
}

// Remaining returns the whole seconds left, never negative. An untimed
// countdown always reports zero; callers check Running to tell the two
// zero cases apart.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil {
		return 0
	}
	left := c.duration - time.Since(c.startedAt)
	if left < 0 {
		return 0
	}
	return int(left / time.Second)
}

// Running reports whether the countdown is still pending.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil && !c.stopped
}

// Stop cancels the pending expiry. Safe to call multiple times and after
// expiry. Returns true if the callback was prevented from firing.
func (c *Countdown) Stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil || c.stopped {
		return false
	}
	c.stopped = true
	return c.timer.Stop()
}
