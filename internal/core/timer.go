package core

import "time"

// Timer is a one-shot countdown driven by simulation time rather than the
// wall clock. A driver owns one Timer per engine instance; rescheduling or
// cancelling it invalidates whatever was pending, so a stale callback can
// never act on a state that has since been replaced.
type Timer struct {
	remaining time.Duration
	armed     bool
}

// Schedule arms the timer to fire after d, replacing any pending deadline.
func (t *Timer) Schedule(d time.Duration) {
	t.remaining = max(d, 0)
	t.armed = true
}

// Cancel disarms the timer.
func (t *Timer) Cancel() {
	t.armed = false
	t.remaining = 0
}

// Pending reports whether a deadline is armed.
func (t *Timer) Pending() bool {
	return t.armed
}

// Advance moves simulation time forward by dt and reports whether the
// pending deadline fired. A fired timer is disarmed.
func (t *Timer) Advance(dt time.Duration) bool {
	if !t.armed {
		return false
	}
	t.remaining -= dt
	if t.remaining > 0 {
		return false
	}
	t.armed = false
	t.remaining = 0
	return true
}

// Accumulator converts fixed driver frames into coarser simulation steps,
// e.g. 60 fps frames into a snake move every 150ms.
type Accumulator struct {
	elapsed time.Duration
}

// Add advances the accumulator by dt and returns how many whole periods
// elapsed. A non-positive period never yields a step.
func (a *Accumulator) Add(dt, period time.Duration) int {
	if period <= 0 {
		return 0
	}
	a.elapsed += dt
	steps := int(a.elapsed / period)
	a.elapsed -= time.Duration(steps) * period
	return steps
}

// Reset discards any partial period.
func (a *Accumulator) Reset() {
	a.elapsed = 0
}
