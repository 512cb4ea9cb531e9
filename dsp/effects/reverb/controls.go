package reverb

// Set clamps v into the range of id, stores it and refreshes the derived
// coefficients. Decay, damping and dry/wet ramp to the new value over
// 50 ms once the processor is prepared. Invalid ids are ignored.
func (p *Processor) Set(id Param, v float64) {
	if !id.Valid() {
		return
	}

	v = p.params.Set(id, v)

	switch id {
	case ParamDecayTime:
		p.decay.SetTarget(v)
	case ParamDamping:
		p.damping.SetTarget(v)
	case ParamDryWet:
		p.mix.SetTarget(v)
	}

	p.updateParameters()
}

// Get returns the stored value of id.
func (p *Processor) Get(id Param) float64 { return p.params.Get(id) }

// Parameters returns a copy of all control values.
func (p *Processor) Parameters() Parameters { return p.params }

// SetParameters applies every value in params.
func (p *Processor) SetParameters(params Parameters) {
	for i := range NumParams {
		id := Param(i)
		if params.Get(id) != p.params.Get(id) {
			p.Set(id, params.Get(id))
		}
	}
}

// SetDecayTime sets the decay time in seconds, clamped to [0.01, 60].
func (p *Processor) SetDecayTime(seconds float64) { p.Set(ParamDecayTime, seconds) }

// SetPreDelay sets the pre-delay in milliseconds, clamped to [0, 500].
func (p *Processor) SetPreDelay(ms float64) { p.Set(ParamPreDelay, ms) }

// SetDamping sets the high frequency damping, clamped to [0, 0.999].
func (p *Processor) SetDamping(v float64) { p.Set(ParamDamping, v) }

// SetDiffusion sets the early diffusion, clamped to [0, 1].
func (p *Processor) SetDiffusion(v float64) { p.Set(ParamDiffusion, v) }

// SetReverbDiffusion sets the tail diffusion, clamped to [0, 1].
func (p *Processor) SetReverbDiffusion(v float64) { p.Set(ParamReverbDiffusion, v) }

// SetRoomSize scales every delay, clamped to [0.01, 2].
func (p *Processor) SetRoomSize(v float64) { p.Set(ParamRoomSize, v) }

// SetRoomVolume sets the input gain, clamped to [0, 5]. Gains above 2 are
// limited to 2 when processing.
func (p *Processor) SetRoomVolume(v float64) { p.Set(ParamRoomVolume, v) }

// SetEarlyReflectionLevel clamps to [0, 1].
func (p *Processor) SetEarlyReflectionLevel(v float64) { p.Set(ParamEarlyReflectionLevel, v) }

// SetReflectionDelay scales the early taps, clamped to [0.1, 4].
func (p *Processor) SetReflectionDelay(v float64) { p.Set(ParamReflectionDelay, v) }

// SetSubsequentDelay scales the comb loops, clamped to [0.1, 4].
func (p *Processor) SetSubsequentDelay(v float64) { p.Set(ParamSubsequentDelay, v) }

// SetSubsequentLevel sets the tail level, clamped to [0, 1].
func (p *Processor) SetSubsequentLevel(v float64) { p.Set(ParamSubsequentLevel, v) }

// SetEnvelopment sets the stereo width, clamped to [0, 1].
func (p *Processor) SetEnvelopment(v float64) { p.Set(ParamEnvelopment, v) }

// SetReflectivity clamps to [0, 1].
func (p *Processor) SetReflectivity(v float64) { p.Set(ParamReflectivity, v) }

// SetTieLevel sets the HF level, clamped to [0, 1].
func (p *Processor) SetTieLevel(v float64) { p.Set(ParamTieLevel, v) }

// SetPosition clamps to [0, 1]. 0 keeps the right input out of the left
// combs, 1 keeps the left input out of the right combs.
func (p *Processor) SetPosition(v float64) { p.Set(ParamPosition, v) }

// SetDryWet sets the wet share of the output, clamped to [0, 1].
func (p *Processor) SetDryWet(v float64) { p.Set(ParamDryWet, v) }

// SampleRate returns the rate set by Prepare, or 0 before Prepare.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// Prepared reports whether Prepare has been called.
func (p *Processor) Prepared() bool { return p.prepared }

// Strategy returns the comb implementation in use.
func (p *Processor) Strategy() CombStrategy { return p.strategy }

// CombFeedback returns the loop gain of comb i on ch.
func (p *Processor) CombFeedback(ch Channel, i int) float64 { return p.combs[ch][i].Feedback() }

// CombDamping returns the loop filter coefficients applied to every comb.
func (p *Processor) CombDamping() (lp, hp float64) { return p.dampLP, p.dampHP }

// CombCapacity returns the loop length of comb i on ch.
func (p *Processor) CombCapacity(ch Channel, i int) int { return p.combs[ch][i].Capacity() }

// AllpassCoeff returns the coefficient of allpass i (both channels share it).
func (p *Processor) AllpassCoeff(i int) float64 { return p.allpass[Left][i].Coeff() }

// AllpassCapacity returns the delay of allpass i on ch.
func (p *Processor) AllpassCapacity(ch Channel, i int) int { return p.allpass[ch][i].Capacity() }

// TapDelay returns the delay of early reflection tap i on ch.
func (p *Processor) TapDelay(ch Channel, i int) int { return p.taps[ch][i].Delay() }

// TapCapacity returns the capacity of early reflection tap i on ch.
func (p *Processor) TapCapacity(ch Channel, i int) int { return p.taps[ch][i].Capacity() }

// PreDelaySamples returns the configured pre-delay in samples.
func (p *Processor) PreDelaySamples() int { return p.preDelay[Left].Delay() }

// TieLevelGain returns the tail multiplier derived from the HF level.
func (p *Processor) TieLevelGain() float64 { return p.tieGain }

// SmoothedMix returns the dry/wet value the next frame will use.
func (p *Processor) SmoothedMix() float64 { return p.mix.Current() }

// SmoothedDecay returns the decay time the comb feedback currently follows.
func (p *Processor) SmoothedDecay() float64 { return p.decay.Current() }
