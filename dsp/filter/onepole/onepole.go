package onepole

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

const (
	maxCoeff = 0.9999

	maxDampingLP = 0.999
	minDampingHP = 0.01
	maxDampingHP = 0.999

	// emphasis is the share of the high band added back by Damping.
	emphasis = 0.3

	// peakCells is the number of cos(w) intervals PeakGain bounds.
	peakCells = 128
)

// OnePole is an exponential smoother: state = in*(1-c) + state*c.
// The coefficient is passed on every call so a comb can share one
// damping value across its filters.
type OnePole struct {
	state float64
}

// Process smooths input with coeff clamped to [0, 0.9999].
func (f *OnePole) Process(input, coeff float64) float64 {
	c := core.Clamp(coeff, 0, maxCoeff)
	f.state = core.FlushDenormals(input*(1-c) + f.state*c)

	return f.state
}

// Reset clears the filter state.
func (f *OnePole) Reset() { f.state = 0 }

// Damping is a two-stage loop filter: a one-pole low-pass followed by an
// emphasis of the part of the low-passed signal that a slower one-pole
// has not yet tracked.
type Damping struct {
	lp, hp           float64
	lpState, hpState float64
	peak             float64
}

// NewDamping returns a Damping filter with the given coefficients.
func NewDamping(lp, hp float64) *Damping {
	d := &Damping{}
	d.SetCoeffs(lp, hp)

	return d
}

// SetCoeffs clamps lp to [0, 0.999] and hp to [0.01, 0.999].
func (d *Damping) SetCoeffs(lp, hp float64) {
	lp = core.Clamp(lp, 0, maxDampingLP)
	hp = core.Clamp(hp, minDampingHP, maxDampingHP)

	if d.peak > 0 && lp == d.lp && hp == d.hp {
		return
	}

	d.lp, d.hp = lp, hp
	d.peak = peakGain(lp, hp)
}

// PeakGain returns an upper bound of the filter's magnitude response over
// all frequencies. The emphasis stage lifts high frequencies above unity,
// so a feedback loop through Damping stays stable only while
// feedback*PeakGain < 1. A zero Damping gets its coefficients clamped first.
func (d *Damping) PeakGain() float64 {
	if d.peak == 0 {
		d.SetCoeffs(d.lp, d.hp)
	}

	return d.peak
}

// Coeffs returns the clamped low-pass and high-pass coefficients.
func (d *Damping) Coeffs() (lp, hp float64) {
	return d.lp, d.hp
}

// Process filters one sample.
func (d *Damping) Process(input float64) float64 {
	s1 := input*(1-d.lp) + d.lpState*d.lp
	d.lpState = core.FlushDenormals(s1)

	high := s1 - d.hpState
	d.hpState = core.FlushDenormals(s1*d.hp + d.hpState*(1-d.hp))

	return s1 + emphasis*high
}

// peakGain bounds max |LP(w)*HS(w)|. With c = cos(w) both squared
// magnitudes are monotonic rational functions of c:
//
//	|LP|^2 = (1-lp)^2 / (1 + lp^2 - 2*lp*c)
//	|HS|^2 = ((1+e)^2 + b^2 - 2*(1+e)*b*c) / (1 + a^2 - 2*a*c)
//
// with a = 1-hp, b = a+e and e the emphasis. On every interval of c the
// product is at most the larger end value of each factor, so the maximum
// over all intervals never underestimates the true peak.
func peakGain(lp, hp float64) float64 {
	a := 1 - hp
	b := a + emphasis
	g := 1 + emphasis

	lpSq := func(c float64) float64 { return (1 - lp) * (1 - lp) / (1 + lp*lp - 2*lp*c) }
	hsSq := func(c float64) float64 { return (g*g + b*b - 2*g*b*c) / (1 + a*a - 2*a*c) }

	peak := 0.0
	prevLP, prevHS := lpSq(-1), hsSq(-1)

	for i := 1; i <= peakCells; i++ {
		c := -1 + 2*float64(i)/peakCells
		curLP, curHS := lpSq(c), hsSq(c)

		peak = max(peak, max(prevLP, curLP)*max(prevHS, curHS))
		prevLP, prevHS = curLP, curHS
	}

	return math.Sqrt(peak)
}

// Reset clears both stages.
func (d *Damping) Reset() {
	d.lpState = 0
	d.hpState = 0
}
