package host

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
)

// ErrUnknownParam is returned for parameter IDs that do not exist.
var ErrUnknownParam = errors.New("host: unknown parameter")

// Descriptor describes how a host presents one parameter. The UI range is
// narrower than the range the processor accepts for some parameters.
type Descriptor struct {
	Param   reverb.Param
	ID      string
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	Step    float64
	// Skew shapes the normalized mapping; 1 is linear, below 1 gives the
	// low end more travel.
	Skew float64

	format func(float64) string
}

// Format renders v for display.
func (d Descriptor) Format(v float64) string {
	if d.format == nil {
		return fmt.Sprintf("%.2f", v)
	}

	return d.format(v)
}

// Clamp limits v to the UI range and snaps it to Step.
func (d Descriptor) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return d.Default
	}

	v = math.Max(d.Min, math.Min(d.Max, v))
	if d.Step > 0 {
		v = d.Min + math.Round((v-d.Min)/d.Step)*d.Step
		v = math.Min(v, d.Max)
	}

	return v
}

// Normalize maps v in the UI range to [0, 1].
func (d Descriptor) Normalize(v float64) float64 {
	if d.Max <= d.Min {
		return 0
	}

	n := (math.Max(d.Min, math.Min(d.Max, v)) - d.Min) / (d.Max - d.Min)
	if d.Skew > 0 && d.Skew != 1 {
		n = math.Pow(n, d.Skew)
	}

	return n
}

// Denormalize maps n in [0, 1] back to the UI range.
func (d Descriptor) Denormalize(n float64) float64 {
	n = math.Max(0, math.Min(1, n))
	if d.Skew > 0 && d.Skew != 1 {
		n = math.Pow(n, 1/d.Skew)
	}

	return d.Min + n*(d.Max-d.Min)
}

func seconds(v float64) string { return fmt.Sprintf("%.2fs", v) }
func millis(v float64) string  { return fmt.Sprintf("%.0fms", v) }
func percent(v float64) string { return fmt.Sprintf("%.0f%%", v*100) }
func times(v float64) string   { return fmt.Sprintf("%.2fx", v) }

func side(v float64) string {
	switch {
	case v < 0.33:
		return "Left"
	case v < 0.66:
		return "Center"
	default:
		return "Right"
	}
}

var descriptors = [reverb.NumParams]Descriptor{
	reverb.ParamDecayTime:            {Min: 0.1, Max: 10, Step: 0.01, Skew: 0.5, format: seconds},
	reverb.ParamPreDelay:             {Min: 0, Max: 200, Step: 1, Skew: 1, format: millis},
	reverb.ParamDamping:              {Min: 0, Max: 0.999, Step: 0.01, Skew: 1},
	reverb.ParamDiffusion:            {Min: 0, Max: 1, Step: 0.01, Skew: 1},
	reverb.ParamReverbDiffusion:      {Min: 0, Max: 1, Step: 0.01, Skew: 1},
	reverb.ParamRoomSize:             {Min: 0.1, Max: 2, Step: 0.01, Skew: 0.7, format: percent},
	reverb.ParamRoomVolume:           {Min: 0, Max: 3, Step: 0.01, Skew: 1, format: times},
	reverb.ParamEarlyReflectionLevel: {Min: 0, Max: 1, Step: 0.01, Skew: 1, format: percent},
	reverb.ParamReflectionDelay:      {Min: 0.5, Max: 2, Step: 0.01, Skew: 1, format: times},
	reverb.ParamSubsequentDelay:      {Min: 0.5, Max: 2, Step: 0.01, Skew: 1, format: times},
	reverb.ParamSubsequentLevel:      {Min: 0, Max: 1, Step: 0.01, Skew: 1, format: percent},
	reverb.ParamEnvelopment:          {Min: 0, Max: 1, Step: 0.01, Skew: 1, format: percent},
	reverb.ParamReflectivity:         {Min: 0, Max: 1, Step: 0.01, Skew: 1, format: percent},
	reverb.ParamTieLevel:             {Min: 0, Max: 1, Step: 0.01, Skew: 1, format: percent},
	reverb.ParamPosition:             {Min: 0, Max: 1, Step: 0.01, Skew: 1, format: side},
	reverb.ParamDryWet:               {Min: 0, Max: 1, Step: 0.01, Skew: 1, format: percent},
}

func init() {
	for i := range descriptors {
		p := reverb.Param(i)
		d := &descriptors[i]
		d.Param = p
		d.ID = p.ID()
		d.Name = p.Name()
		d.Unit = p.Unit()
		d.Default = p.Range().Default
	}
}

// Descriptors returns the descriptors of every parameter in processor order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors[:])

	return out
}

// DescriptorOf returns the descriptor of p.
func DescriptorOf(p reverb.Param) (Descriptor, bool) {
	if !p.Valid() {
		return Descriptor{}, false
	}

	return descriptors[p], true
}

// Lookup returns the descriptor with the given ID.
func Lookup(id string) (Descriptor, error) {
	p, ok := reverb.ParamByID(id)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownParam, id)
	}

	return descriptors[p], nil
}
