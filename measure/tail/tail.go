package tail

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Errors returned by the analyzer.
var (
	ErrEmptyResponse     = errors.New("tail: response is empty")
	ErrInvalidSampleRate = errors.New("tail: sample rate must be positive")
	ErrInvalidTime       = errors.New("tail: time must be positive")
	ErrNoDecay           = errors.New("tail: response does not decay far enough")
	ErrShortResponse     = errors.New("tail: response is shorter than one analysis frame")
	ErrInvalidBand       = errors.New("tail: band contains no spectral bins")
)

// floorDB is reported for energy that has fully decayed.
const floorDB = -200.0

// Metrics holds the broadband tail measurements.
type Metrics struct {
	RT60       float64 // seconds, T30 or T20
	EDT        float64 // seconds, 0 to -10 dB
	T20        float64 // seconds, -5 to -25 dB
	T30        float64 // seconds, -5 to -35 dB
	C50        float64 // dB
	C80        float64 // dB
	D50        float64 // ratio 0..1
	D80        float64 // ratio 0..1
	CenterTime float64 // seconds
	PeakIndex  int
}

// Analyzer measures responses recorded at one sample rate.
type Analyzer struct {
	sampleRate float64
	fftSize    int
	bands      []Band
	fitRange   float64
}

// NewAnalyzer returns an analyzer for sampleRate.
func NewAnalyzer(sampleRate float64, opts ...Option) *Analyzer {
	a := &Analyzer{
		sampleRate: sampleRate,
		fftSize:    defaultFFTSize,
		bands:      append([]Band(nil), DefaultBands...),
		fitRange:   defaultFitRange,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

// SampleRate returns the analysis rate.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

func (a *Analyzer) check(x []float64) error {
	if len(x) == 0 {
		return ErrEmptyResponse
	}

	if !(a.sampleRate > 0) {
		return ErrInvalidSampleRate
	}

	return nil
}

// Analyze measures every broadband metric. Measurement starts at the
// absolute peak so pre-delay does not bias the fit.
func (a *Analyzer) Analyze(x []float64) (Metrics, error) {
	if err := a.check(x); err != nil {
		return Metrics{}, err
	}

	peak := peakIndex(x)
	x = x[peak:]
	curve := energyDecay(x)

	m := Metrics{
		PeakIndex:  peak,
		EDT:        a.fit(curve, 0, -10),
		T20:        a.fit(curve, -5, -25),
		T30:        a.fit(curve, -5, -35),
		C50:        a.clarity(x, 50),
		C80:        a.clarity(x, 80),
		D50:        a.definition(x, 50),
		D80:        a.definition(x, 80),
		CenterTime: a.centerTime(x),
	}

	m.RT60 = m.T30
	if m.RT60 <= 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// EnergyDecay returns the Schroeder backward integral of x in dB relative
// to the total energy:
//
//	EDC(t) = 10*log10( sum_{n>=t} x²[n] / sum_n x²[n] )
func (a *Analyzer) EnergyDecay(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyResponse
	}

	return energyDecay(x), nil
}

func energyDecay(x []float64) []float64 {
	curve := make([]float64, len(x))

	var acc float64
	for i := len(x) - 1; i >= 0; i-- {
		acc += x[i] * x[i]
		curve[i] = acc
	}

	total := curve[0]
	if total <= 0 {
		return curve
	}

	for i, e := range curve {
		if e <= 0 {
			curve[i] = floorDB
			continue
		}

		curve[i] = core.LinearPowerToDB(e / total)
	}

	return curve
}

// RT60 returns T30, or T20 when the curve never reaches -35 dB.
func (a *Analyzer) RT60(x []float64) (float64, error) {
	if err := a.check(x); err != nil {
		return 0, err
	}

	curve := energyDecay(x)
	if rt := a.fit(curve, -5, -35); rt > 0 {
		return rt, nil
	}

	if rt := a.fit(curve, -5, -25); rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}

// fit regresses the decay curve between fromDB and toDB and extrapolates
// the slope to 60 dB. It returns 0 when the curve does not cover the range.
func (a *Analyzer) fit(curve []float64, fromDB, toDB float64) float64 {
	start, end := -1, -1

	for i, v := range curve {
		if start < 0 && v <= fromDB {
			start = i
		}

		if start >= 0 && v <= toDB {
			end = i
			break
		}
	}

	if start < 0 || end <= start {
		return 0
	}

	slope := regressionSlope(curve[start : end+1])
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.sampleRate)
}

// regressionSlope returns the least-squares slope of y against its index.
func regressionSlope(y []float64) float64 {
	n := float64(len(y))
	if n < 2 {
		return 0
	}

	var sx, sy, sxx, sxy float64
	for i, v := range y {
		x := float64(i)
		sx += x
		sy += v
		sxx += x * x
		sxy += x * v
	}

	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}

	return (n*sxy - sx*sy) / den
}

// Definition returns the share of energy arriving before ms.
func (a *Analyzer) Definition(x []float64, ms float64) (float64, error) {
	if err := a.check(x); err != nil {
		return 0, err
	}

	if !(ms > 0) {
		return 0, ErrInvalidTime
	}

	return a.definition(x, ms), nil
}

func (a *Analyzer) definition(x []float64, ms float64) float64 {
	early, late := a.split(x, ms)
	if early+late <= 0 {
		return 0
	}

	return early / (early + late)
}

// Clarity returns the early to late energy ratio at ms in dB.
func (a *Analyzer) Clarity(x []float64, ms float64) (float64, error) {
	if err := a.check(x); err != nil {
		return 0, err
	}

	if !(ms > 0) {
		return 0, ErrInvalidTime
	}

	return a.clarity(x, ms), nil
}

func (a *Analyzer) clarity(x []float64, ms float64) float64 {
	early, late := a.split(x, ms)

	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}

	return core.LinearPowerToDB(early / late)
}

// split sums the energy before and after the boundary at ms.
func (a *Analyzer) split(x []float64, ms float64) (early, late float64) {
	boundary := min(int(math.Round(ms*0.001*a.sampleRate)), len(x))

	for i, v := range x {
		if i < boundary {
			early += v * v
		} else {
			late += v * v
		}
	}

	return early, late
}

// CenterTime returns the energy centroid of x in seconds.
func (a *Analyzer) CenterTime(x []float64) (float64, error) {
	if err := a.check(x); err != nil {
		return 0, err
	}

	return a.centerTime(x), nil
}

func (a *Analyzer) centerTime(x []float64) float64 {
	var num, den float64

	for i, v := range x {
		e := v * v
		num += float64(i) * e
		den += e
	}

	if den <= 0 {
		return 0
	}

	return num / den / a.sampleRate
}

// Onset returns the first index whose magnitude reaches a tenth of the peak.
func (a *Analyzer) Onset(x []float64) (int, error) {
	if len(x) == 0 {
		return 0, ErrEmptyResponse
	}

	threshold := 0.1 * vecmath.MaxAbs(x)
	if threshold == 0 {
		return 0, nil
	}

	for i, v := range x {
		if math.Abs(v) >= threshold {
			return i, nil
		}
	}

	return 0, nil
}

func peakIndex(x []float64) int {
	idx, peak := 0, 0.0

	for i, v := range x {
		if av := math.Abs(v); av > peak {
			idx, peak = i, av
		}
	}

	return idx
}
