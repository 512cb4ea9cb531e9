package tail

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Band is a frequency range in Hz, Low inclusive and High exclusive.
type Band struct {
	Low, High float64
}

func (b Band) String() string {
	return fmt.Sprintf("%g-%g Hz", b.Low, b.High)
}

// DefaultBands splits the audible range into four octave groups.
var DefaultBands = []Band{
	{Low: 125, High: 500},
	{Low: 500, High: 2000},
	{Low: 2000, High: 8000},
	{Low: 8000, High: 16000},
}

// BandResult is the decay fitted in one band.
type BandResult struct {
	Band Band
	// Rate is the decay in dB per second, positive for a decaying band.
	Rate float64
	// RT60 is 60/Rate, or 0 when the band does not decay.
	RT60 float64
	// PeakDB is the highest frame energy in dB.
	PeakDB float64
	// Frames is the number of frames the fit used.
	Frames int
}

// BandDecay fits a decay rate per band from Hann windowed frames with 50 %
// overlap. Each band is fitted from its loudest frame until its energy drops
// more than the fit range below that peak.
func (a *Analyzer) BandDecay(x []float64) ([]BandResult, error) {
	if err := a.check(x); err != nil {
		return nil, err
	}

	n := a.fftSize
	if len(x) < n {
		return nil, fmt.Errorf("%w: %d < %d", ErrShortResponse, len(x), n)
	}

	binHz := a.sampleRate / float64(n)
	nyquist := n / 2

	ranges := make([][2]int, len(a.bands))
	for i, b := range a.bands {
		lo := max(int(math.Ceil(b.Low/binHz)), 1)
		hi := min(int(math.Ceil(b.High/binHz)), nyquist+1)

		if hi <= lo {
			return nil, fmt.Errorf("%w: %s", ErrInvalidBand, b)
		}

		ranges[i] = [2]int{lo, hi}
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("tail: fft plan: %w", err)
	}

	hop := n / 2
	frames := (len(x)-n)/hop + 1

	window := hann(n)
	frame := make([]float64, n)
	in := make([]complex128, n)
	out := make([]complex128, n)
	re := make([]float64, nyquist+1)
	im := make([]float64, nyquist+1)
	power := make([]float64, nyquist+1)

	energy := make([][]float64, len(a.bands))
	for i := range energy {
		energy[i] = make([]float64, frames)
	}

	for f := range frames {
		vecmath.MulBlock(frame, x[f*hop:f*hop+n], window)

		for i, v := range frame {
			in[i] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("tail: fft frame %d: %w", f, err)
		}

		for k := range re {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}

		vecmath.Power(power, re, im)

		for b, r := range ranges {
			var sum float64
			for _, p := range power[r[0]:r[1]] {
				sum += p
			}

			energy[b][f] = powerDB(sum)
		}
	}

	frameRate := a.sampleRate / float64(hop)
	results := make([]BandResult, len(a.bands))

	for b, curve := range energy {
		results[b] = a.fitBand(a.bands[b], curve, frameRate)
	}

	return results, nil
}

func (a *Analyzer) fitBand(b Band, curve []float64, frameRate float64) BandResult {
	peak := 0
	for i, v := range curve {
		if v > curve[peak] {
			peak = i
		}
	}

	res := BandResult{Band: b, PeakDB: curve[peak]}

	end := peak
	for end+1 < len(curve) && curve[end+1] >= curve[peak]-a.fitRange {
		end++
	}

	res.Frames = end - peak + 1

	slope := regressionSlope(curve[peak : end+1])
	if slope >= 0 {
		return res
	}

	res.Rate = -slope * frameRate
	res.RT60 = 60 / res.Rate

	return res
}

func powerDB(p float64) float64 {
	if p <= 0 {
		return floorDB
	}

	return max(core.LinearPowerToDB(p), floorDB)
}

// hann returns a periodic Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}

	return w
}
