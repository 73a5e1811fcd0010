// Package loop provides the fixed-timestep accumulator that drives simulation ticks.
package loop

import "time"

// Stepper converts variable frame times into a whole number of fixed ticks
// and keeps the remainder for render-time interpolation.
type Stepper struct {
	step time.Duration
	lag  time.Duration
	now  func() time.Time
	last time.Time

	ticks uint64
}

// NewStepper creates a stepper running at the given number of ticks per second.
func NewStepper(rate int) *Stepper {
	if rate <= 0 {
		rate = 60
	}
	return &Stepper{
		step: time.Second / time.Duration(rate),
		now:  time.Now,
	}
}

// Step returns the tick duration.
func (s *Stepper) Step() time.Duration {
	return s.step
}

// Start resets the accumulator and the frame clock.
func (s *Stepper) Start() {
	s.lag = 0
	s.last = s.now()
}

// Frame measures the wall time since the previous frame and returns how many
// ticks to run to catch up.
func (s *Stepper) Frame() int {
	now := s.now()
	elapsed := now.Sub(s.last)
	s.last = now
	return s.Advance(elapsed)
}

// Advance adds elapsed time and returns the number of whole ticks it covers.
// The leftover time stays accumulated.
func (s *Stepper) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		s.lag += elapsed
	}

	n := 0
	for s.lag >= s.step {
		s.lag -= s.step
		n++
	}
	s.ticks += uint64(n)
	return n
}

// Fraction returns the leftover time as a fraction of a tick, in [0, 1).
func (s *Stepper) Fraction() float32 {
	return float32(float64(s.lag) / float64(s.step))
}

// Ticks returns the total number of ticks produced so far.
func (s *Stepper) Ticks() uint64 {
	return s.ticks
}
