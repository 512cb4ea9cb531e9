package reverb

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

const (
	numChannels  = 2
	numCombs     = 8
	numAllpasses = 4
	numTaps      = 6

	// Allpasses below this index diffuse the early field and follow the
	// diffusion control; the rest follow the reverb diffusion control.
	numEarlyAllpasses = 2

	rightDelayStretch = 1.02
	rightTapStretch   = 1.03

	maxPreDelayMs = 500.0

	maxDecayFeedback        = 0.998
	feedbackVariation       = 0.015
	feedbackVariationPeriod = 4

	dampingLPScale  = 0.9
	dampingHPOffset = 0.1
	dampingHPScale  = 0.4

	diffusionScale = 0.6
	minDiffusion   = 0.01
	maxDiffusion   = 0.999

	maxInputGain = 2.0
	maxTieGain   = 3.0
)

// Base delays in milliseconds at room size 1.
var (
	combBaseMs    = [numCombs]float64{29.7, 37.1, 41.1, 43.7, 31.3, 34.9, 39.5, 44.3}
	allpassBaseMs = [numAllpasses]float64{5.0, 1.7, 12.7, 9.3}
	tapBaseMs     = [numTaps]float64{8.3, 11.7, 15.2, 19.8, 24.1, 28.9}
)

// Channel selects the left or right half of a stereo filter bank.
type Channel int

const (
	Left Channel = iota
	Right
)

func (c Channel) String() string {
	if c == Right {
		return "right"
	}

	return "left"
}

func delaySamples(sampleRate, ms float64) int {
	return max(int(math.Round(sampleRate*ms/1000)), 1)
}

// combDelay returns the loop length of comb i in samples.
func combDelay(sampleRate, roomSize, subsequentDelay float64, i int, ch Channel) int {
	ms := combBaseMs[i] * roomSize * subsequentDelay
	if ch == Right {
		ms *= rightDelayStretch
	}

	return delaySamples(sampleRate, ms)
}

// allpassDelay returns the delay of allpass i in samples.
func allpassDelay(sampleRate, roomSize float64, i int, ch Channel) int {
	ms := allpassBaseMs[i] * roomSize
	if ch == Right {
		ms *= rightDelayStretch
	}

	return delaySamples(sampleRate, ms)
}

// tapDelay returns the delay of early reflection tap i in samples.
func tapDelay(sampleRate, roomSize, reflectionDelay float64, i int, ch Channel) int {
	ms := tapBaseMs[i] * roomSize * reflectionDelay
	if ch == Right {
		ms *= rightTapStretch
	}

	return delaySamples(sampleRate, ms)
}

// decayFeedback maps a decay time to a comb loop gain with the RT60 rule
// g = 10^(-3*d/T), i.e. -60 dB after T seconds of d-long trips. The first
// comb's scaled delay stands in for all eight.
func decayFeedback(decayTime, roomSize, subsequentDelay, reflectivity float64) float64 {
	delaySec := combBaseMs[0] * roomSize * subsequentDelay / 1000
	g := core.DBToLinear(-60 * delaySec / decayTime)

	return core.Clamp(g*reflectivity, 0, maxDecayFeedback)
}

// combFeedback spreads the shared loop gain across comb i of a channel.
func combFeedback(base float64, i int, ch Channel) float64 {
	v := 1 + feedbackVariation*float64(i%feedbackVariationPeriod)
	if ch == Right {
		return base / v
	}

	return base * v
}

func dampingCoeffs(damping float64) (lp, hp float64) {
	return damping * dampingLPScale, dampingHPOffset + damping*dampingHPScale
}

func diffusionCoeff(diffusion float64) float64 {
	return core.Clamp(diffusion*diffusionScale, minDiffusion, maxDiffusion)
}

func tieLevelGain(tieLevel float64) float64 {
	return core.Clamp(0.5+tieLevel*1.5, 0, maxTieGain)
}

func inputGain(roomVolume float64) float64 {
	return core.Clamp(roomVolume, 0, maxInputGain)
}

// Per-tap and per-comb stereo weights.
var (
	tapWeight  [numChannels][numTaps]float64
	combOwn    [numChannels][numCombs]float64
	combCross  [numChannels][numCombs]float64
	combDetune [numChannels][numCombs]float64
)

func init() {
	for t := range numTaps {
		pan := float64(t) / numTaps
		tapWeight[Left][t] = 1 - 0.7*pan
		tapWeight[Right][t] = 0.3 + 0.7*pan
	}

	for c := range numCombs {
		phase := 0.5 * float64(c)
		combOwn[Left][c] = 0.7 + 0.3*math.Sin(phase)
		combCross[Left][c] = 0.3 * math.Cos(phase)
		combDetune[Left][c] = 1 + 0.0005*float64(c)

		combOwn[Right][c] = 0.7 + 0.3*math.Cos(phase)
		combCross[Right][c] = 0.3 * math.Sin(phase)
		combDetune[Right][c] = 1 - 0.0005*float64(c)
	}
}
