package clock

import "time"

// MaxStep is the default upper bound on a single tick's delta.
const MaxStep = 100 * time.Millisecond

// Clock supplies wall time. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Stepper turns wall-clock samples into bounded simulation deltas.
// Every phase of a tick consumes the same delta; nothing else samples time.
type Stepper struct {
	max     time.Duration
	last    time.Time
	primed  bool
	elapsed time.Duration
	ticks   uint64
}

// NewStepper bounds deltas by max. Values outside (0, MaxStep] fall back
// to MaxStep.
func NewStepper(max time.Duration) *Stepper {
	if max <= 0 || max > MaxStep {
		max = MaxStep
	}
	return &Stepper{max: max}
}

// Step returns min(now-last, max) and advances the baseline to now.
// The first sample after construction or Rebase yields 0. A clock that
// goes backwards yields 0 rather than a negative delta.
func (s *Stepper) Step(now time.Time) time.Duration {
	if !s.primed {
		s.last = now
		s.primed = true
		return 0
	}
	dt := now.Sub(s.last)
	s.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > s.max {
		dt = s.max
	}
	return dt
}

// Advance records dt as simulated time. Called only for ticks that ran.
func (s *Stepper) Advance(dt time.Duration) {
	s.elapsed += dt
	s.ticks++
}

// Rebase discards the current baseline so the next Step starts fresh.
// Used on unpause: wall time spent paused is never integrated.
func (s *Stepper) Rebase(now time.Time) {
	s.last = now
	s.primed = true
}

// Reset clears simulated time and the baseline.
func (s *Stepper) Reset() {
	s.primed = false
	s.elapsed = 0
	s.ticks = 0
}

// Elapsed is the total simulated time.
func (s *Stepper) Elapsed() time.Duration { return s.elapsed }

// Ticks is the number of simulated ticks.
func (s *Stepper) Ticks() uint64 { return s.ticks }

// Max is the delta bound.
func (s *Stepper) Max() time.Duration { return s.max }
