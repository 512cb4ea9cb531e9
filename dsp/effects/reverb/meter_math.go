//go:build !fastmath

package reverb

import "math"

func meterMagnitude(l, r float64) float64 {
	return math.Sqrt(l*l + r*r)
}
