package reverb

import (
	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/filter/onepole"
)

const (
	maxCombFeedback   = 0.9999
	maxSpreadFeedback = 0.999
	maxCombDamp       = 0.9999

	// spreadDepth scales the stereo spread into a feedback offset.
	spreadDepth = 0.01
)

// Comb is a lowpass-feedback comb filter: the delayed sample is returned
// undamped while the damped copy is fed back together with the input.
type Comb interface {
	// Reserve allocates storage for delays up to n samples.
	Reserve(n int)
	// SetSize sets the loop length (clamped to >= 1) and clears the loop.
	SetSize(n int)
	Capacity() int
	SetFeedback(g float64)
	Feedback() float64
	// SetDamping sets the loop filter. Implementations without a
	// two-band loop filter ignore hp.
	SetDamping(lp, hp float64)
	Process(input float64) float64
	Clear()
}

// CombStrategy selects the comb implementation used by a Processor.
type CombStrategy int

const (
	// CombBasic uses CombFilter: single one-pole damping in the loop.
	CombBasic CombStrategy = iota
	// CombStereoSpread uses SpreadComb: two-band damping and feedback
	// offset per channel by the envelopment.
	CombStereoSpread
)

func (s CombStrategy) String() string {
	switch s {
	case CombBasic:
		return "basic"
	case CombStereoSpread:
		return "stereo-spread"
	default:
		return "unknown"
	}
}

func (s CombStrategy) newComb() Comb {
	if s == CombStereoSpread {
		return NewSpreadComb(1)
	}

	return NewCombFilter(1)
}

// spreader is implemented by combs whose feedback follows the stereo spread.
type spreader interface {
	SetSpread(spread float64)
}

// combLoop is the circular storage shared by both comb variants.
type combLoop struct {
	buffer []float64
	pos    int
}

func (l *combLoop) Reserve(n int) {
	if n <= cap(l.buffer) {
		return
	}

	l.buffer = make([]float64, max(len(l.buffer), 1), n)
	l.pos = 0
}

func (l *combLoop) SetSize(n int) {
	l.buffer = core.EnsureLen(l.buffer, max(n, 1))
	core.Zero(l.buffer)
	l.pos = 0
}

// Capacity returns the loop length in samples.
func (l *combLoop) Capacity() int { return len(l.buffer) }

func (l *combLoop) read() float64 { return l.buffer[l.pos] }

func (l *combLoop) writeAdvance(v float64) {
	l.buffer[l.pos] = core.FlushDenormals(v)

	l.pos++
	if l.pos >= len(l.buffer) {
		l.pos = 0
	}
}

func (l *combLoop) clear() {
	core.Zero(l.buffer)
	l.pos = 0
}

// CombFilter is the basic LFCF comb with a one-pole loop filter.
type CombFilter struct {
	combLoop

	feedback float64
	damp     float64
	filter   onepole.OnePole
}

// NewCombFilter returns a comb with a loop of size samples.
func NewCombFilter(size int) *CombFilter {
	c := &CombFilter{}
	c.SetSize(size)

	return c
}

// SetSize sets the loop length (clamped to >= 1) and clears the loop.
func (c *CombFilter) SetSize(n int) {
	c.combLoop.SetSize(n)
	c.filter.Reset()
}

// SetFeedback clamps g to [0, 0.9999].
func (c *CombFilter) SetFeedback(g float64) { c.feedback = core.Clamp(g, 0, maxCombFeedback) }

// Feedback returns the loop gain.
func (c *CombFilter) Feedback() float64 { return c.feedback }

// SetDamping sets the one-pole coefficient, clamped to [0, 0.9999].
func (c *CombFilter) SetDamping(lp, _ float64) { c.damp = core.Clamp(lp, 0, maxCombDamp) }

// Damping returns the one-pole coefficient.
func (c *CombFilter) Damping() float64 { return c.damp }

// Process runs one sample through the loop.
func (c *CombFilter) Process(input float64) float64 {
	if len(c.buffer) == 0 {
		return input
	}

	out := c.read()
	damped := c.filter.Process(out, c.damp)
	c.writeAdvance(input + damped*c.feedback)

	return out
}

// Clear zeroes the loop and the filter state.
func (c *CombFilter) Clear() {
	c.clear()
	c.filter.Reset()
}

// SpreadComb is an LFCF comb with the two-stage Damping loop filter and a
// feedback gain offset by a stereo spread amount.
type SpreadComb struct {
	combLoop

	feedback  float64
	spread    float64
	effective float64
	filter    onepole.Damping
}

// NewSpreadComb returns a spread comb with a loop of size samples.
func NewSpreadComb(size int) *SpreadComb {
	c := &SpreadComb{}
	c.filter.SetCoeffs(0, 0)
	c.SetSize(size)

	return c
}

// SetSize sets the loop length (clamped to >= 1) and clears the loop.
func (c *SpreadComb) SetSize(n int) {
	c.combLoop.SetSize(n)
	c.filter.Reset()
}

// SetFeedback clamps g to [0, 0.9999].
func (c *SpreadComb) SetFeedback(g float64) {
	c.feedback = core.Clamp(g, 0, maxCombFeedback)
	c.updateEffective()
}

// Feedback returns the loop gain before the spread offset.
func (c *SpreadComb) Feedback() float64 { return c.feedback }

// EffectiveFeedback returns feedback*(1+spread*0.01), clamped so that the
// loop gain including the damping filter's peak stays at or below 0.999.
func (c *SpreadComb) EffectiveFeedback() float64 { return c.effective }

// SetSpread sets the stereo spread. Positive values lengthen the decay.
func (c *SpreadComb) SetSpread(spread float64) {
	c.spread = spread
	c.updateEffective()
}

// SetDamping sets both loop filter coefficients.
func (c *SpreadComb) SetDamping(lp, hp float64) {
	c.filter.SetCoeffs(lp, hp)
	c.updateEffective()
}

// PeakLoopGain returns the largest gain a sample can pick up per trip
// around the loop. It is below 1 for every coefficient setting.
func (c *SpreadComb) PeakLoopGain() float64 { return c.effective * c.filter.PeakGain() }

// Damping returns the clamped loop filter coefficients.
func (c *SpreadComb) Damping() (lp, hp float64) { return c.filter.Coeffs() }

// Process runs one sample through the loop.
func (c *SpreadComb) Process(input float64) float64 {
	if len(c.buffer) == 0 {
		return input
	}

	out := c.read()
	damped := c.filter.Process(out)
	c.writeAdvance(input + damped*c.effective)

	return out
}

// Clear zeroes the loop and the filter state.
func (c *SpreadComb) Clear() {
	c.clear()
	c.filter.Reset()
}

func (c *SpreadComb) updateEffective() {
	limit := maxSpreadFeedback / c.filter.PeakGain()
	c.effective = core.Clamp(c.feedback*(1+c.spread*spreadDepth), 0, limit)
}
