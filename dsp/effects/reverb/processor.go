package reverb

import (
	"context"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-reverb/dsp/smooth"
)

const (
	minSampleRate = 22050.0
	maxSampleRate = 192000.0

	smoothingSeconds = 0.05
	// controlStride is the number of frames between decay/damping steps.
	controlStride = 8

	layoutTolerance = 0.001

	earlyShare   = 0.3
	lateShare    = 0.7
	midSideScale = 0.707

	meterDecay  = 0.995
	meterAttack = 0.005

	outputTrim = 0.95

	fadeSteps = 64

	// Upper bounds of the layout controls, used to reserve storage.
	maxRoomSize        = 2.0
	maxReflectionDelay = 4.0
	maxSubsequentDelay = 4.0
)

// Processor is a stereo Schroeder reverb: pre-delay, six early reflection
// taps, eight lowpass-feedback combs and four series allpasses per channel,
// followed by mid/side width, early/late mix, dry/wet and a safety limiter.
//
// All storage is reserved by Prepare. Setters and ProcessStereo do not
// allocate afterwards. A Processor is not safe for concurrent use; see
// host.Engine for cross-goroutine control.
type Processor struct {
	params   Parameters
	strategy CombStrategy
	logger   *slog.Logger

	sampleRate float64
	prepared   bool

	combs    [numChannels][numCombs]Comb
	allpass  [numChannels][numAllpasses]Allpass
	taps     [numChannels][numTaps]delay.Line
	preDelay [numChannels]delay.Line

	decay   smooth.Linear
	damping smooth.Linear
	mix     smooth.Linear
	tick    int

	gain         float64
	earlyScale   float64
	tailGain     float64
	tieGain      float64
	hfBoost      float64
	feedbackBase float64
	dampLP       float64
	dampHP       float64
	cross        [numChannels][numCombs]float64

	lastRoomSize        float64
	lastReflectionDelay float64
	lastSubsequentDelay float64
	layoutValid         bool

	level float64
}

// New returns a Processor with default parameters. Call Prepare before
// processing.
func New(opts ...Option) *Processor {
	p := &Processor{
		params: DefaultParameters(),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	for ch := range numChannels {
		for i := range numCombs {
			p.combs[ch][i] = p.strategy.newComb()
		}
	}

	p.decay.SetCurrentAndTarget(p.params.DecayTime)
	p.damping.SetCurrentAndTarget(p.params.Damping)
	p.mix.SetCurrentAndTarget(p.params.DryWet)

	return p
}

// Prepare sizes every filter for sampleRate (clamped to [22050, 192000];
// unusable rates fall back to 44100), snaps the smoothers to their targets,
// recomputes all coefficients and clears the state.
func (p *Processor) Prepare(sampleRate float64) {
	sr := core.SanitizeSampleRate(sampleRate, minSampleRate, maxSampleRate)
	p.sampleRate = sr

	p.decay.Reset(sr/controlStride, smoothingSeconds)
	p.damping.Reset(sr/controlStride, smoothingSeconds)
	p.mix.Reset(sr, smoothingSeconds)
	p.tick = 0

	p.reserve()

	p.prepared = true
	p.layoutValid = false
	p.updateParameters()
	p.Clear()

	p.logger.Debug("reverb prepared",
		"requested_rate", sampleRate,
		"sample_rate", sr,
		"strategy", p.strategy.String(),
		"pre_delay_capacity", p.preDelay[Left].Capacity())
}

// reserve allocates storage for the largest layout any control values can
// produce at the current sample rate.
func (p *Processor) reserve() {
	sr := p.sampleRate

	for ch := range numChannels {
		c := Channel(ch)

		for i := range numCombs {
			p.combs[ch][i].Reserve(combDelay(sr, maxRoomSize, maxSubsequentDelay, i, c))
		}

		for i := range numAllpasses {
			p.allpass[ch][i].Reserve(allpassDelay(sr, maxRoomSize, i, c))
		}

		for i := range numTaps {
			p.taps[ch][i].Reserve(2 * tapDelay(sr, maxRoomSize, maxReflectionDelay, i, c))
		}

		maxPre := core.MsToSamples(maxPreDelayMs, sr) + 1
		p.preDelay[ch].Reserve(maxPre)
		p.preDelay[ch].SetSize(maxPre)
	}
}

// updateParameters recomputes every derived quantity from the current
// control values. The filter layout is only rebuilt when a layout control
// moved by more than layoutTolerance.
func (p *Processor) updateParameters() {
	if !p.prepared {
		return
	}

	p.updateLayout()
	p.updateFeedback(p.decay.Current())
	p.updateDamping(p.damping.Current())

	early := diffusionCoeff(p.params.Diffusion)
	late := diffusionCoeff(p.params.ReverbDiffusion)

	for ch := range numChannels {
		for i := range numAllpasses {
			if i < numEarlyAllpasses {
				p.allpass[ch][i].SetCoeff(early)
			} else {
				p.allpass[ch][i].SetCoeff(late)
			}
		}

		p.preDelay[ch].SetDelay(core.MsToSamples(p.params.PreDelay, p.sampleRate))
	}

	p.gain = inputGain(p.params.RoomVolume)
	p.earlyScale = p.params.EarlyReflectionLevel / numTaps
	p.tieGain = tieLevelGain(p.params.TieLevel)
	p.tailGain = p.params.SubsequentLevel * p.tieGain
	p.hfBoost = 1 + p.params.TieLevel*2*0.5

	for c := range numCombs {
		p.cross[Left][c] = combCross[Left][c] * p.params.Position
		p.cross[Right][c] = combCross[Right][c] * (1 - p.params.Position)
	}

	p.updateSpread()
}

func (p *Processor) layoutChanged() bool {
	if !p.layoutValid {
		return true
	}

	return math.Abs(p.params.RoomSize-p.lastRoomSize) > layoutTolerance ||
		math.Abs(p.params.ReflectionDelay-p.lastReflectionDelay) > layoutTolerance ||
		math.Abs(p.params.SubsequentDelay-p.lastSubsequentDelay) > layoutTolerance
}

func (p *Processor) updateLayout() {
	if !p.layoutChanged() {
		return
	}

	sr := p.sampleRate
	size := p.params.RoomSize

	for ch := range numChannels {
		c := Channel(ch)

		for i := range numCombs {
			n := combDelay(sr, size, p.params.SubsequentDelay, i, c)
			if p.combs[ch][i].Capacity() != n {
				p.combs[ch][i].SetSize(n)
			}
		}

		for i := range numAllpasses {
			n := allpassDelay(sr, size, i, c)
			if p.allpass[ch][i].Capacity() != n {
				p.allpass[ch][i].SetSize(n)
			}
		}

		for i := range numTaps {
			d := tapDelay(sr, size, p.params.ReflectionDelay, i, c)
			if need := max(2*d, 1); p.taps[ch][i].Capacity() < need {
				p.taps[ch][i].SetSize(need)
			}

			p.taps[ch][i].SetDelay(d)
		}
	}

	p.lastRoomSize = size
	p.lastReflectionDelay = p.params.ReflectionDelay
	p.lastSubsequentDelay = p.params.SubsequentDelay
	p.layoutValid = true

	// Setters can reach this path; skip building attributes when disabled.
	if p.logger.Enabled(context.Background(), slog.LevelDebug) {
		p.logger.Debug("reverb layout updated",
			"room_size", size,
			"reflection_delay", p.params.ReflectionDelay,
			"subsequent_delay", p.params.SubsequentDelay,
			"first_comb", p.combs[Left][0].Capacity())
	}
}

func (p *Processor) updateFeedback(decayTime float64) {
	p.feedbackBase = decayFeedback(decayTime, p.params.RoomSize, p.params.SubsequentDelay, p.params.Reflectivity)

	for ch := range numChannels {
		for i := range numCombs {
			p.combs[ch][i].SetFeedback(combFeedback(p.feedbackBase, i, Channel(ch)))
		}
	}
}

func (p *Processor) updateDamping(damping float64) {
	p.dampLP, p.dampHP = dampingCoeffs(damping)

	for ch := range numChannels {
		for i := range numCombs {
			p.combs[ch][i].SetDamping(p.dampLP, p.dampHP)
		}
	}
}

// updateSpread offsets the spread combs by +envelopment on the left bank
// and -envelopment on the right bank.
func (p *Processor) updateSpread() {
	spread := [numChannels]float64{p.params.Envelopment, -p.params.Envelopment}

	for ch := range numChannels {
		for i := range numCombs {
			if s, ok := p.combs[ch][i].(spreader); ok {
				s.SetSpread(spread[ch])
			}
		}
	}
}

// stepControl advances the decay and damping ramps by one control step.
func (p *Processor) stepControl() {
	if p.decay.IsSmoothing() {
		p.updateFeedback(p.decay.Next())
	}

	if p.damping.IsSmoothing() {
		p.updateDamping(p.damping.Next())
	}
}

// ProcessStereo reverberates left and right in place. It processes
// min(len(left), len(right)) frames and is a no-op for empty input or
// before Prepare.
func (p *Processor) ProcessStereo(left, right []float64) {
	n := core.Frames(left, right)
	if n == 0 || !p.prepared {
		return
	}

	left = left[:n]
	right = right[:n]

	vecmath.ScaleBlockInPlace(left, p.gain)
	vecmath.ScaleBlockInPlace(right, p.gain)

	env := p.params.Envelopment
	reflect := p.params.Reflectivity

	for i := range n {
		if p.tick == 0 {
			p.stepControl()
		}

		p.tick++
		if p.tick == controlStride {
			p.tick = 0
		}

		inL, inR := left[i], right[i]

		preL := p.preDelay[Left].Process(inL)
		preR := p.preDelay[Right].Process(inR)

		var earlyL, earlyR float64
		for t := range numTaps {
			earlyL += p.taps[Left][t].Process(preL) * tapWeight[Left][t]
			earlyR += p.taps[Right][t].Process(preR) * tapWeight[Right][t]
		}

		earlyL *= p.earlyScale
		earlyR *= p.earlyScale

		var combL, combR float64
		for c := range numCombs {
			combL += p.combs[Left][c].Process((preL*combOwn[Left][c] + preR*p.cross[Left][c]) * combDetune[Left][c])
			combR += p.combs[Right][c].Process((preR*combOwn[Right][c] + preL*p.cross[Right][c]) * combDetune[Right][c])
		}

		lateL := combL / numCombs
		lateR := combR / numCombs

		for a := range numAllpasses {
			lateL = p.allpass[Left][a].Process(lateL)
			lateR = p.allpass[Right][a].Process(lateR)
		}

		lateL *= p.tailGain
		lateR *= p.tailGain

		mid := (lateL + lateR) * midSideScale
		side := (lateL - lateR) * midSideScale
		wideL := mid + side*env
		wideR := mid - side*env

		wetL := (earlyShare*earlyL + lateShare*wideL) * reflect * p.hfBoost
		wetR := (earlyShare*earlyR + lateShare*wideR) * reflect * p.hfBoost

		mix := p.mix.Current()
		p.mix.Next()

		outL := inL*(1-mix) + wetL*mix
		outR := inR*(1-mix) + wetR*mix

		p.level = meterDecay*p.level + meterAttack*meterMagnitude(wetL, wetR)

		left[i] = core.ClampOr(outL*outputTrim, -1, 1, 0)
		right[i] = core.ClampOr(outR*outputTrim, -1, 1, 0)
	}
}

// ReverbLevel returns the smoothed magnitude of the wet signal.
func (p *Processor) ReverbLevel() float64 { return p.level }

// Clear silences every delay, filter and the level meter. Parameters and
// smoother positions are kept.
func (p *Processor) Clear() {
	for ch := range numChannels {
		for i := range numCombs {
			p.combs[ch][i].Clear()
		}

		for i := range numAllpasses {
			p.allpass[ch][i].Clear()
		}

		for i := range numTaps {
			p.taps[ch][i].Clear()
		}

		p.preDelay[ch].Clear()
	}

	p.level = 0

	p.logger.Debug("reverb cleared")
}

// ResetWithFade ramps every comb's feedback to zero in 64 steps, clears
// the state and restores the feedback from the current parameters.
func (p *Processor) ResetWithFade() {
	var start [numChannels][numCombs]float64
	for ch := range numChannels {
		for i := range numCombs {
			start[ch][i] = p.combs[ch][i].Feedback()
		}
	}

	for step := 1; step <= fadeSteps; step++ {
		g := 1 - float64(step)/fadeSteps
		for ch := range numChannels {
			for i := range numCombs {
				p.combs[ch][i].SetFeedback(start[ch][i] * g)
			}
		}
	}

	p.Clear()

	if p.prepared {
		p.updateFeedback(p.decay.Current())
	} else {
		for ch := range numChannels {
			for i := range numCombs {
				p.combs[ch][i].SetFeedback(start[ch][i])
			}
		}
	}

	p.logger.Debug("reverb reset with fade")
}
