//go:build fastmath

package reverb

import "github.com/meko-christian/algo-approx"

// meterMagnitude uses an approximate square root; the meter is display-only.
func meterMagnitude(l, r float64) float64 {
	return approx.FastSqrt(l*l + r*r)
}
