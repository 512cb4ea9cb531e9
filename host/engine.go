package host

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
)

// tailFactor is the tail length in multiples of the decay time.
const tailFactor = 2

// Levels holds the peaks of the last processed block and the wet meter.
type Levels struct {
	Input  float64
	Output float64
	Reverb float64
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	logger   *slog.Logger
	strategy reverb.CombStrategy
	params   reverb.Parameters
}

// WithLogger sets the logger used by the engine and its processor.
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCombStrategy selects the processor's comb implementation.
func WithCombStrategy(s reverb.CombStrategy) Option {
	return func(o *engineOptions) { o.strategy = s }
}

// WithParameters sets the initial parameters.
func WithParameters(params reverb.Parameters) Option {
	return func(o *engineOptions) { o.params = params.Clamped() }
}

// Engine wraps a Processor for use from two sides: control goroutines call
// Set, Get and Levels at any time, one audio goroutine calls Process.
// Prepare must not run concurrently with Process.
type Engine struct {
	proc   *reverb.Processor
	cfg    core.ProcessorConfig
	logger *slog.Logger

	// values holds the latest requested value of each parameter as float64
	// bits; dirty has bit i set while values[i] is not yet applied.
	values [reverb.NumParams]atomic.Uint64
	dirty  atomic.Uint32
	reset  atomic.Bool

	inPeak  atomic.Uint64
	outPeak atomic.Uint64
	level   atomic.Uint64

	left, right []float64
}

// NewEngine returns an engine prepared for cfg.
func NewEngine(cfg core.ProcessorConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}

	o := engineOptions{
		logger: slog.New(slog.DiscardHandler),
		params: reverb.DefaultParameters(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	e := &Engine{
		cfg:    cfg,
		logger: o.logger,
		proc: reverb.New(
			reverb.WithCombStrategy(o.strategy),
			reverb.WithParameters(o.params),
			reverb.WithLogger(o.logger),
		),
		left:  make([]float64, cfg.BlockSize),
		right: make([]float64, cfg.BlockSize),
	}

	for i := range reverb.NumParams {
		e.values[i].Store(math.Float64bits(o.params.Get(reverb.Param(i))))
	}

	e.proc.Prepare(cfg.SampleRate)

	e.logger.Info("engine ready",
		"sample_rate", e.proc.SampleRate(),
		"block_size", cfg.BlockSize,
		"strategy", e.proc.Strategy().String())

	return e, nil
}

// Prepare changes the sample rate. Pending parameter changes are applied
// first.
func (e *Engine) Prepare(sampleRate float64) error {
	cfg := e.cfg
	cfg.SampleRate = sampleRate

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("host: %w", err)
	}

	e.cfg = cfg
	e.applyPending()
	e.proc.Prepare(sampleRate)
	e.storeLevels(0, 0)

	e.logger.Info("engine prepared", "sample_rate", e.proc.SampleRate())

	return nil
}

// Config returns the streaming configuration.
func (e *Engine) Config() core.ProcessorConfig { return e.cfg }

// SampleRate returns the rate the processor runs at after clamping.
func (e *Engine) SampleRate() float64 { return e.proc.SampleRate() }

// Set requests a parameter change; the value is clamped now and applied
// at the next block boundary. Safe for concurrent use.
func (e *Engine) Set(id reverb.Param, v float64) {
	if !id.Valid() {
		return
	}

	e.values[id].Store(math.Float64bits(id.Range().Clamp(v)))
	e.dirty.Or(1 << uint(id))
}

// SetByID is Set addressed by parameter ID.
func (e *Engine) SetByID(id string, v float64) error {
	p, ok := reverb.ParamByID(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, id)
	}

	e.Set(p, v)

	return nil
}

// Get returns the latest requested value of id.
func (e *Engine) Get(id reverb.Param) float64 {
	if !id.Valid() {
		return 0
	}

	return math.Float64frombits(e.values[id].Load())
}

// Parameters returns the latest requested values.
func (e *Engine) Parameters() reverb.Parameters {
	var p reverb.Parameters
	for i := range reverb.NumParams {
		p.Set(reverb.Param(i), e.Get(reverb.Param(i)))
	}

	return p
}

// SetParameters requests every value in params.
func (e *Engine) SetParameters(params reverb.Parameters) {
	for i := range reverb.NumParams {
		e.Set(reverb.Param(i), params.Get(reverb.Param(i)))
	}
}

// Reset requests a fade-out reset before the next block.
func (e *Engine) Reset() { e.reset.Store(true) }

// TailLength returns how long output keeps ringing after the input stops.
func (e *Engine) TailLength() time.Duration {
	decay := e.Get(reverb.ParamDecayTime)
	return time.Duration(tailFactor * decay * float64(time.Second))
}

// Levels returns the peaks of the last block and the reverb meter.
func (e *Engine) Levels() Levels {
	return Levels{
		Input:  math.Float64frombits(e.inPeak.Load()),
		Output: math.Float64frombits(e.outPeak.Load()),
		Reverb: math.Float64frombits(e.level.Load()),
	}
}

// Process runs left and right through the reverb in place, in chunks of
// at most BlockSize frames. Pending parameter changes are applied before
// each chunk.
func (e *Engine) Process(left, right []float64) {
	n := core.Frames(left, right)
	if n == 0 {
		return
	}

	var in, out float64

	for off := 0; off < n; off += e.cfg.BlockSize {
		end := min(off+e.cfg.BlockSize, n)
		l, r := left[off:end], right[off:end]

		e.applyPending()

		in = max(in, vecmath.MaxAbs(l), vecmath.MaxAbs(r))
		e.proc.ProcessStereo(l, r)
		out = max(out, vecmath.MaxAbs(l), vecmath.MaxAbs(r))
	}

	e.storeLevels(in, out)
}

// ProcessInterleaved runs interleaved L,R frames through the reverb in
// place. A trailing odd sample is left untouched.
func (e *Engine) ProcessInterleaved(buf []float64) {
	frames := len(buf) / 2
	if frames == 0 {
		return
	}

	var in, out float64

	for off := 0; off < frames; off += e.cfg.BlockSize {
		end := min(off+e.cfg.BlockSize, frames)
		chunk := buf[2*off : 2*end]

		e.left, e.right = core.Deinterleave(e.left, e.right, chunk)
		e.applyPending()

		in = max(in, vecmath.MaxAbs(e.left), vecmath.MaxAbs(e.right))
		e.proc.ProcessStereo(e.left, e.right)
		out = max(out, vecmath.MaxAbs(e.left), vecmath.MaxAbs(e.right))

		core.Interleave(chunk, e.left, e.right)
	}

	e.storeLevels(in, out)
}

func (e *Engine) applyPending() {
	if mask := e.dirty.Swap(0); mask != 0 {
		for i := range reverb.NumParams {
			if mask&(1<<uint(i)) != 0 {
				e.proc.Set(reverb.Param(i), math.Float64frombits(e.values[i].Load()))
			}
		}
	}

	if e.reset.Swap(false) {
		e.proc.ResetWithFade()
	}
}

func (e *Engine) storeLevels(in, out float64) {
	e.inPeak.Store(math.Float64bits(in))
	e.outPeak.Store(math.Float64bits(out))
	e.level.Store(math.Float64bits(e.proc.ReverbLevel()))
}
