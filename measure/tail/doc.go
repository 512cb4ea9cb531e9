// Package tail measures reverberation tails.
//
// The broadband metrics follow ISO 3382 and are derived from the Schroeder
// backward integral of the squared response:
//
//   - RT60: reverberation time, T30 when the curve reaches -35 dB, else T20
//   - EDT: early decay time, fitted from 0 to -10 dB
//   - C50, C80: early to late energy ratio in dB
//   - D50, D80: early energy fraction
//   - CenterTime: energy centroid in seconds
//
// BandDecay splits the response into short-time spectra and fits a decay
// slope per frequency band, which shows how quickly the loop damping removes
// high frequencies from the tail.
//
// # Usage
//
//	a := tail.NewAnalyzer(48000, tail.WithFFTSize(2048))
//	m, err := a.Analyze(response)
//	bands, err := a.BandDecay(response)
package tail
