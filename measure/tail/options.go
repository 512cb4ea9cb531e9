package tail

const (
	defaultFFTSize  = 1024
	minFFTSize      = 64
	maxFFTSize      = 1 << 16
	defaultFitRange = 30.0
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFFTSize sets the band analysis frame length. Sizes that are not a
// power of two in [64, 65536] are ignored.
func WithFFTSize(n int) Option {
	return func(a *Analyzer) {
		if n >= minFFTSize && n <= maxFFTSize && n&(n-1) == 0 {
			a.fftSize = n
		}
	}
}

// WithBands replaces the analysis bands. An empty list keeps the defaults.
func WithBands(bands ...Band) Option {
	return func(a *Analyzer) {
		if len(bands) > 0 {
			a.bands = append(a.bands[:0], bands...)
		}
	}
}

// WithFitRange sets how many dB below its peak each band is fitted over.
func WithFitRange(db float64) Option {
	return func(a *Analyzer) {
		if db > 0 {
			a.fitRange = db
		}
	}
}
