package reverb

import "github.com/cwbudde/algo-reverb/dsp/core"

const maxAllpassCoeff = 0.9999

// Allpass is a Schroeder allpass diffuser.
type Allpass struct {
	buffer []float64
	pos    int
	coeff  float64
}

// NewAllpass returns an allpass with a delay of size samples.
func NewAllpass(size int) *Allpass {
	a := &Allpass{}
	a.SetSize(size)

	return a
}

// Reserve allocates storage for delays up to n samples.
func (a *Allpass) Reserve(n int) {
	if n <= cap(a.buffer) {
		return
	}

	a.buffer = make([]float64, max(len(a.buffer), 1), n)
	a.pos = 0
}

// SetSize sets the delay (clamped to >= 1) and clears the buffer.
func (a *Allpass) SetSize(n int) {
	a.buffer = core.EnsureLen(a.buffer, max(n, 1))
	a.Clear()
}

// Capacity returns the delay length in samples.
func (a *Allpass) Capacity() int { return len(a.buffer) }

// SetCoeff clamps g to [0, 0.9999].
func (a *Allpass) SetCoeff(g float64) { a.coeff = core.Clamp(g, 0, maxAllpassCoeff) }

// Coeff returns the diffusion coefficient.
func (a *Allpass) Coeff() float64 { return a.coeff }

// Process runs one sample through the diffuser.
func (a *Allpass) Process(input float64) float64 {
	if len(a.buffer) == 0 {
		return input
	}

	bufOut := a.buffer[a.pos]
	a.buffer[a.pos] = core.FlushDenormals(input + bufOut*a.coeff)

	a.pos++
	if a.pos >= len(a.buffer) {
		a.pos = 0
	}

	return bufOut - input
}

// Clear zeroes the buffer and rewinds the cursor.
func (a *Allpass) Clear() {
	core.Zero(a.buffer)
	a.pos = 0
}
