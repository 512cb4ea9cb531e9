package reverb

import "github.com/cwbudde/algo-reverb/dsp/core"

// Param identifies one of the sixteen reverb controls.
type Param int

// Reverb controls, in host order.
const (
	ParamDecayTime Param = iota
	ParamPreDelay
	ParamDamping
	ParamDiffusion
	ParamReverbDiffusion
	ParamRoomSize
	ParamRoomVolume
	ParamEarlyReflectionLevel
	ParamReflectionDelay
	ParamSubsequentDelay
	ParamSubsequentLevel
	ParamEnvelopment
	ParamReflectivity
	ParamTieLevel
	ParamPosition
	ParamDryWet

	NumParams = int(ParamDryWet) + 1
)

// Range is the accepted interval and the default of a control.
type Range struct {
	Min, Max, Default float64
}

// Clamp limits v to the range. NaN maps to the default.
func (r Range) Clamp(v float64) float64 {
	return core.ClampOr(v, r.Min, r.Max, r.Default)
}

type paramInfo struct {
	id   string
	name string
	unit string
	rng  Range
}

var paramTable = [NumParams]paramInfo{
	ParamDecayTime:            {id: "decay", name: "Decay Time", unit: "s", rng: Range{Min: 0.01, Max: 60, Default: 2.0}},
	ParamPreDelay:             {id: "predelay", name: "Pre-Delay", unit: "ms", rng: Range{Min: 0, Max: 500, Default: 20}},
	ParamDamping:              {id: "damping", name: "Damping", rng: Range{Min: 0, Max: 0.999, Default: 0.5}},
	ParamDiffusion:            {id: "diffusion", name: "Diffusion", rng: Range{Min: 0, Max: 1, Default: 0.7}},
	ParamReverbDiffusion:      {id: "revdiff", name: "Reverb Diffusion", rng: Range{Min: 0, Max: 1, Default: 0.7}},
	ParamRoomSize:             {id: "size", name: "Room Size", rng: Range{Min: 0.01, Max: 2, Default: 0.75}},
	ParamRoomVolume:           {id: "volume", name: "Room Volume", rng: Range{Min: 0, Max: 5, Default: 1.0}},
	ParamEarlyReflectionLevel: {id: "early", name: "Early Reflections", rng: Range{Min: 0, Max: 1, Default: 0.3}},
	ParamReflectionDelay:      {id: "refdelay", name: "Reflection Delay", rng: Range{Min: 0.1, Max: 4, Default: 1.0}},
	ParamSubsequentDelay:      {id: "subdelay", name: "Subsequent Delay", rng: Range{Min: 0.1, Max: 4, Default: 1.0}},
	ParamSubsequentLevel:      {id: "sublevel", name: "Subsequent Level", rng: Range{Min: 0, Max: 1, Default: 0.8}},
	ParamEnvelopment:          {id: "envelop", name: "Envelopment", rng: Range{Min: 0, Max: 1, Default: 0.8}},
	ParamReflectivity:         {id: "reflect", name: "Reflectivity", rng: Range{Min: 0, Max: 1, Default: 0.8}},
	ParamTieLevel:             {id: "tielevel", name: "HF Level", rng: Range{Min: 0, Max: 1, Default: 0.5}},
	ParamPosition:             {id: "position", name: "Position", rng: Range{Min: 0, Max: 1, Default: 0.5}},
	ParamDryWet:               {id: "mix", name: "Dry/Wet", rng: Range{Min: 0, Max: 1, Default: 0.5}},
}

// Valid reports whether p names a control.
func (p Param) Valid() bool { return p >= 0 && int(p) < NumParams }

// ID returns the stable identifier used for presets and host automation.
func (p Param) ID() string {
	if !p.Valid() {
		return ""
	}

	return paramTable[p].id
}

// Name returns the display name.
func (p Param) Name() string {
	if !p.Valid() {
		return ""
	}

	return paramTable[p].name
}

// Unit returns the engineering unit, empty for normalized controls.
func (p Param) Unit() string {
	if !p.Valid() {
		return ""
	}

	return paramTable[p].unit
}

// Range returns the clamp range and default.
func (p Param) Range() Range {
	if !p.Valid() {
		return Range{}
	}

	return paramTable[p].rng
}

func (p Param) String() string {
	if !p.Valid() {
		return "Param(invalid)"
	}

	return paramTable[p].id
}

// AllParams returns every control in host order.
func AllParams() []Param {
	out := make([]Param, NumParams)
	for i := range out {
		out[i] = Param(i)
	}

	return out
}

// ParamByID looks up a control by its identifier.
func ParamByID(id string) (Param, bool) {
	for i := range paramTable {
		if paramTable[i].id == id {
			return Param(i), true
		}
	}

	return 0, false
}

// Parameters is a complete set of control values. Field tags match the
// control identifiers.
type Parameters struct {
	DecayTime            float64 `json:"decay"`
	PreDelay             float64 `json:"predelay"`
	Damping              float64 `json:"damping"`
	Diffusion            float64 `json:"diffusion"`
	ReverbDiffusion      float64 `json:"revdiff"`
	RoomSize             float64 `json:"size"`
	RoomVolume           float64 `json:"volume"`
	EarlyReflectionLevel float64 `json:"early"`
	ReflectionDelay      float64 `json:"refdelay"`
	SubsequentDelay      float64 `json:"subdelay"`
	SubsequentLevel      float64 `json:"sublevel"`
	Envelopment          float64 `json:"envelop"`
	Reflectivity         float64 `json:"reflect"`
	TieLevel             float64 `json:"tielevel"`
	Position             float64 `json:"position"`
	DryWet               float64 `json:"mix"`
}

// DefaultParameters returns every control at its default.
func DefaultParameters() Parameters {
	var p Parameters
	for i := range NumParams {
		*p.field(Param(i)) = paramTable[i].rng.Default
	}

	return p
}

// Get returns the value of id, or 0 for an invalid id.
func (p Parameters) Get(id Param) float64 {
	f := p.field(id)
	if f == nil {
		return 0
	}

	return *f
}

// Set stores v clamped to the range of id and returns the stored value.
// Invalid ids are ignored.
func (p *Parameters) Set(id Param, v float64) float64 {
	f := p.field(id)
	if f == nil {
		return 0
	}

	*f = paramTable[id].rng.Clamp(v)

	return *f
}

// Clamped returns a copy with every value clamped to its range.
func (p Parameters) Clamped() Parameters {
	for i := range NumParams {
		p.Set(Param(i), p.Get(Param(i)))
	}

	return p
}

func (p *Parameters) field(id Param) *float64 {
	switch id {
	case ParamDecayTime:
		return &p.DecayTime
	case ParamPreDelay:
		return &p.PreDelay
	case ParamDamping:
		return &p.Damping
	case ParamDiffusion:
		return &p.Diffusion
	case ParamReverbDiffusion:
		return &p.ReverbDiffusion
	case ParamRoomSize:
		return &p.RoomSize
	case ParamRoomVolume:
		return &p.RoomVolume
	case ParamEarlyReflectionLevel:
		return &p.EarlyReflectionLevel
	case ParamReflectionDelay:
		return &p.ReflectionDelay
	case ParamSubsequentDelay:
		return &p.SubsequentDelay
	case ParamSubsequentLevel:
		return &p.SubsequentLevel
	case ParamEnvelopment:
		return &p.Envelopment
	case ParamReflectivity:
		return &p.Reflectivity
	case ParamTieLevel:
		return &p.TieLevel
	case ParamPosition:
		return &p.Position
	case ParamDryWet:
		return &p.DryWet
	default:
		return nil
	}
}
