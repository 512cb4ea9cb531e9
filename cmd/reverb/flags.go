package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/host"
)

// Globals is bound into every command's Run method.
type Globals struct {
	Logger *slog.Logger
	Out    io.Writer
}

// optFloat is a float flag that remembers whether it was given, so unset
// flags leave preset values alone.
type optFloat struct {
	value float64
	set   bool
}

func (o *optFloat) Decode(ctx *kong.DecodeContext) error {
	var s string
	if err := ctx.Scan.PopValueInto("value", &s); err != nil {
		return err
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("expected a number but got %q", s)
	}

	o.value, o.set = v, true

	return nil
}

// ReverbFlags holds one flag per reverb parameter plus preset and comb
// selection. Precedence: defaults, then the preset, then explicit flags.
type ReverbFlags struct {
	Preset   string `type:"existingfile" placeholder:"FILE" help:"JSON preset applied before the parameter flags."`
	Strategy string `enum:"basic,spread" default:"basic" help:"Comb implementation (basic or spread)."`

	Decay     optFloat `name:"decay" placeholder:"S" group:"Reverb" help:"Decay time (${range_decay})."`
	PreDelay  optFloat `name:"predelay" placeholder:"MS" group:"Reverb" help:"Pre-delay (${range_predelay})."`
	Damping   optFloat `name:"damping" placeholder:"X" group:"Reverb" help:"High frequency damping (${range_damping})."`
	Diffusion optFloat `name:"diffusion" placeholder:"X" group:"Reverb" help:"Early diffusion (${range_diffusion})."`
	RevDiff   optFloat `name:"revdiff" placeholder:"X" group:"Reverb" help:"Tail diffusion (${range_revdiff})."`
	Size      optFloat `name:"size" placeholder:"X" group:"Reverb" help:"Room size (${range_size})."`
	Volume    optFloat `name:"volume" placeholder:"X" group:"Reverb" help:"Room volume, input gain (${range_volume})."`
	Early     optFloat `name:"early" placeholder:"X" group:"Reverb" help:"Early reflection level (${range_early})."`
	RefDelay  optFloat `name:"refdelay" placeholder:"X" group:"Reverb" help:"Reflection delay scale (${range_refdelay})."`
	SubDelay  optFloat `name:"subdelay" placeholder:"X" group:"Reverb" help:"Subsequent delay scale (${range_subdelay})."`
	SubLevel  optFloat `name:"sublevel" placeholder:"X" group:"Reverb" help:"Subsequent level (${range_sublevel})."`
	Envelop   optFloat `name:"envelop" placeholder:"X" group:"Reverb" help:"Envelopment, stereo width (${range_envelop})."`
	Reflect   optFloat `name:"reflect" placeholder:"X" group:"Reverb" help:"Reflectivity (${range_reflect})."`
	TieLevel  optFloat `name:"tielevel" placeholder:"X" group:"Reverb" help:"HF level (${range_tielevel})."`
	Position  optFloat `name:"position" placeholder:"X" group:"Reverb" help:"Source position, 0 left to 1 right (${range_position})."`
	Mix       optFloat `name:"mix" placeholder:"X" group:"Reverb" help:"Dry/wet (${range_mix})."`
}

func (f *ReverbFlags) byParam() [reverb.NumParams]*optFloat {
	return [reverb.NumParams]*optFloat{
		reverb.ParamDecayTime:            &f.Decay,
		reverb.ParamPreDelay:             &f.PreDelay,
		reverb.ParamDamping:              &f.Damping,
		reverb.ParamDiffusion:            &f.Diffusion,
		reverb.ParamReverbDiffusion:      &f.RevDiff,
		reverb.ParamRoomSize:             &f.Size,
		reverb.ParamRoomVolume:           &f.Volume,
		reverb.ParamEarlyReflectionLevel: &f.Early,
		reverb.ParamReflectionDelay:      &f.RefDelay,
		reverb.ParamSubsequentDelay:      &f.SubDelay,
		reverb.ParamSubsequentLevel:      &f.SubLevel,
		reverb.ParamEnvelopment:          &f.Envelop,
		reverb.ParamReflectivity:         &f.Reflect,
		reverb.ParamTieLevel:             &f.TieLevel,
		reverb.ParamPosition:             &f.Position,
		reverb.ParamDryWet:               &f.Mix,
	}
}

// Parameters resolves the preset and flags into a clamped parameter set.
func (f *ReverbFlags) Parameters() (reverb.Parameters, error) {
	params := reverb.DefaultParameters()

	if f.Preset != "" {
		file, err := os.Open(f.Preset)
		if err != nil {
			return params, err
		}
		defer file.Close()

		params, err = host.LoadState(file)
		if err != nil {
			return params, fmt.Errorf("%s: %w", f.Preset, err)
		}
	}

	for i, v := range f.byParam() {
		if v.set {
			params.Set(reverb.Param(i), v.value)
		}
	}

	return params, nil
}

// CombStrategy returns the selected comb implementation.
func (f *ReverbFlags) CombStrategy() reverb.CombStrategy {
	if f.Strategy == "spread" {
		return reverb.CombStereoSpread
	}

	return reverb.CombBasic
}

// newEngine builds an engine for the given rate from the flags.
func newEngine(sampleRate float64, blockSize int, f *ReverbFlags, logger *slog.Logger) (*host.Engine, error) {
	params, err := f.Parameters()
	if err != nil {
		return nil, err
	}

	cfg := core.ApplyProcessorOptions(core.WithSampleRate(sampleRate), core.WithBlockSize(blockSize))

	return host.NewEngine(cfg,
		host.WithLogger(logger),
		host.WithCombStrategy(f.CombStrategy()),
		host.WithParameters(params),
	)
}

// paramVars exposes the parameter ranges to help strings.
func paramVars() kong.Vars {
	vars := kong.Vars{}

	for _, p := range reverb.AllParams() {
		r := p.Range()

		unit := ""
		if p.Unit() != "" {
			unit = " " + p.Unit()
		}

		vars["range_"+p.ID()] = fmt.Sprintf("%g to %g%s, default %g", r.Min, r.Max, unit, r.Default)
	}

	return vars
}
