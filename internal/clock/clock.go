// Package clock turns wall time into fixed hardware ticks and provides the
// software timers that every tick advances.
package clock

import (
	"time"

	"github.com/tomz197/pewpew/internal/loop/config"
)

// Delta is the simulated time one tick represents, in seconds.
const Delta = config.Delta

// Timer is a real-valued accumulator advanced by Delta on every tick.
// Timers are independent of each other; each has its own wrap threshold.
type Timer struct {
	Elapsed float64 // Seconds accumulated since the last reset
	Wrap    float64 // Elapsed resets to 0 once it exceeds Wrap (0 = never)
}

// NewTimer creates a timer that wraps after the given number of seconds.
func NewTimer(wrap float64) Timer {
	return Timer{Wrap: wrap}
}

// Advance wraps the accumulator if it has passed its threshold, then adds one
// tick. Wrapping before adding keeps the value observable for one tick past
// the threshold.
func (t *Timer) Advance() {
	if t.Wrap > 0 && t.Elapsed > t.Wrap {
		t.Elapsed = 0
	}
	t.Elapsed += Delta
}

// Reset zeroes the accumulator.
func (t *Timer) Reset() {
	t.Elapsed = 0
}

// Reached reports whether at least s seconds have accumulated.
func (t *Timer) Reached(s float64) bool {
	return t.Elapsed >= s
}

// Stepper converts elapsed wall time into a number of whole ticks.
// Remainders carry over so long-run tick rate matches Period exactly.
type Stepper struct {
	Period   time.Duration
	MaxBurst int // Upper bound on ticks returned by one Advance (0 = unbounded)
	pending  time.Duration
	total    uint64
}

// NewStepper creates a stepper running at the hardware tick period.
func NewStepper() *Stepper {
	return &Stepper{
		Period:   config.TickPeriod,
		MaxBurst: config.MaxCatchUpTicks,
	}
}

// Advance adds elapsed wall time and returns how many ticks are now due.
// When more than MaxBurst ticks are due the excess is dropped so a stalled
// host does not spiral trying to catch up.
func (s *Stepper) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	s.pending += elapsed
	n := int(s.pending / s.Period)
	s.pending -= time.Duration(n) * s.Period
	if s.MaxBurst > 0 && n > s.MaxBurst {
		n = s.MaxBurst
	}
	s.total += uint64(n)
	return n
}

// Ticks returns the total number of ticks handed out so far.
func (s *Stepper) Ticks() uint64 {
	return s.total
}

// TicksFor returns the number of ticks needed for at least s simulated seconds.
func TicksFor(s float64) int {
	n := int(s / Delta)
	if float64(n)*Delta < s {
		n++
	}
	return n
}
