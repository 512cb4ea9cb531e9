// Package smooth provides parameter ramps that remove zipper noise when a
// control value jumps.
package smooth

import "math"

// Linear ramps from its current value to a target in a fixed number of
// steps. The step count is derived from the rate it is stepped at and the
// ramp duration, so the ramp length in seconds does not depend on how
// abruptly the target moves.
//
// The zero value holds 0 and jumps on SetTarget until Reset configures a
// ramp length.
type Linear struct {
	current   float64
	target    float64
	step      float64
	steps     int
	countdown int
}

// Reset sets the ramp length to floor(rampSeconds*stepRate) steps and
// snaps the current value to the target.
func (s *Linear) Reset(stepRate, rampSeconds float64) {
	s.steps = 0
	if stepRate > 0 && rampSeconds > 0 {
		s.steps = int(math.Floor(rampSeconds * stepRate))
	}

	s.current = s.target
	s.countdown = 0
}

// SetTarget starts a ramp towards target. Without a configured ramp length
// the value jumps immediately.
func (s *Linear) SetTarget(target float64) {
	if target == s.target {
		return
	}

	s.target = target

	if s.steps <= 0 {
		s.SetCurrentAndTarget(target)
		return
	}

	s.countdown = s.steps
	s.step = (s.target - s.current) / float64(s.steps)
}

// SetCurrentAndTarget jumps to value and stops any ramp in progress.
func (s *Linear) SetCurrentAndTarget(value float64) {
	s.current = value
	s.target = value
	s.countdown = 0
}

// Next advances the ramp by one step and returns the new value. The final
// step lands exactly on the target.
func (s *Linear) Next() float64 {
	if s.countdown <= 0 {
		return s.target
	}

	s.countdown--
	if s.countdown == 0 {
		s.current = s.target
	} else {
		s.current += s.step
	}

	return s.current
}

// Current returns the value without advancing.
func (s *Linear) Current() float64 { return s.current }

// Target returns the value being ramped to.
func (s *Linear) Target() float64 { return s.target }

// IsSmoothing reports whether a ramp is in progress.
func (s *Linear) IsSmoothing() bool { return s.countdown > 0 }
