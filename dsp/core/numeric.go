package core

import "math"

const defaultEpsilon = 1e-12

// FallbackSampleRate replaces sample rates that cannot be used in
// sample-count math (zero, negative, NaN).
const FallbackSampleRate = 44100.0

// Clamp limits value to the inclusive range [min, max].
// NaN is returned unchanged; use ClampOr when NaN needs a substitute.
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampOr is Clamp with NaN mapped to fallback before clamping.
func ClampOr(value, min, max, fallback float64) float64 {
	if math.IsNaN(value) {
		value = fallback
	}

	return Clamp(value, min, max)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Recirculating delay loops decay into this range on silence.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// SanitizeSampleRate clamps sampleRate to [min, max]. Non-positive and NaN
// rates become FallbackSampleRate first.
func SanitizeSampleRate(sampleRate, min, max float64) float64 {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 1) {
		sampleRate = FallbackSampleRate
	}

	return Clamp(sampleRate, min, max)
}

// MsToSamples converts a duration in milliseconds to a rounded sample count.
// Negative durations map to 0 and an unusable sample rate is replaced by
// FallbackSampleRate.
func MsToSamples(ms, sampleRate float64) int {
	if !(ms > 0) {
		return 0
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 1) {
		sampleRate = FallbackSampleRate
	}

	return int(math.Round(sampleRate * ms / 1000))
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
