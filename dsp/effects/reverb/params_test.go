package reverb

import (
	"math"
	"testing"
)

func TestParamTable(t *testing.T) {
	seen := map[string]bool{}
	for _, id := range AllParams() {
		if id.ID() == "" || id.Name() == "" {
			t.Fatalf("param %d has empty id or name", id)
		}
		if seen[id.ID()] {
			t.Fatalf("duplicate id %q", id.ID())
		}
		seen[id.ID()] = true

		got, ok := ParamByID(id.ID())
		if !ok || got != id {
			t.Fatalf("ParamByID(%q) = %v, %v", id.ID(), got, ok)
		}

		r := id.Range()
		if r.Default < r.Min || r.Default > r.Max {
			t.Fatalf("%s default %v outside [%v, %v]", id, r.Default, r.Min, r.Max)
		}
	}

	if len(seen) != 16 {
		t.Fatalf("got %d params, want 16", len(seen))
	}

	if _, ok := ParamByID("nope"); ok {
		t.Fatal("unknown id resolved")
	}
	if Param(-1).Valid() || Param(NumParams).Valid() {
		t.Fatal("out of range param reported valid")
	}
	if Param(99).ID() != "" || Param(99).Range() != (Range{}) {
		t.Fatal("invalid param returned metadata")
	}
}

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	want := Parameters{
		DecayTime:            2.0,
		PreDelay:             20,
		Damping:              0.5,
		Diffusion:            0.7,
		ReverbDiffusion:      0.7,
		RoomSize:             0.75,
		RoomVolume:           1.0,
		EarlyReflectionLevel: 0.3,
		ReflectionDelay:      1.0,
		SubsequentDelay:      1.0,
		SubsequentLevel:      0.8,
		Envelopment:          0.8,
		Reflectivity:         0.8,
		TieLevel:             0.5,
		Position:             0.5,
		DryWet:               0.5,
	}

	if p != want {
		t.Fatalf("DefaultParameters() = %+v, want %+v", p, want)
	}
}

func TestParametersSetClamps(t *testing.T) {
	tests := []struct {
		id        Param
		low, high float64
	}{
		{ParamDecayTime, 0.01, 60},
		{ParamPreDelay, 0, 500},
		{ParamDamping, 0, 0.999},
		{ParamDiffusion, 0, 1},
		{ParamReverbDiffusion, 0, 1},
		{ParamRoomSize, 0.01, 2},
		{ParamRoomVolume, 0, 5},
		{ParamEarlyReflectionLevel, 0, 1},
		{ParamReflectionDelay, 0.1, 4},
		{ParamSubsequentDelay, 0.1, 4},
		{ParamSubsequentLevel, 0, 1},
		{ParamEnvelopment, 0, 1},
		{ParamReflectivity, 0, 1},
		{ParamTieLevel, 0, 1},
		{ParamPosition, 0, 1},
		{ParamDryWet, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			var p Parameters
			if got := p.Set(tt.id, -1000); got != tt.low {
				t.Fatalf("Set(-1000) = %v, want %v", got, tt.low)
			}
			if got := p.Set(tt.id, 1000); got != tt.high {
				t.Fatalf("Set(1000) = %v, want %v", got, tt.high)
			}
			if got := p.Set(tt.id, math.NaN()); got != tt.id.Range().Default {
				t.Fatalf("Set(NaN) = %v, want default %v", got, tt.id.Range().Default)
			}
			if got := p.Set(tt.id, math.Inf(1)); got != tt.high {
				t.Fatalf("Set(+Inf) = %v, want %v", got, tt.high)
			}
			if p.Get(tt.id) != tt.high {
				t.Fatalf("Get = %v, want %v", p.Get(tt.id), tt.high)
			}
		})
	}
}

func TestParametersClamped(t *testing.T) {
	p := DefaultParameters()
	p.DecayTime = -5
	p.RoomSize = 99
	p.Damping = math.NaN()

	c := p.Clamped()
	if c.DecayTime != 0.01 || c.RoomSize != 2 || c.Damping != 0.5 {
		t.Fatalf("Clamped = %+v", c)
	}
	if p.DecayTime != -5 {
		t.Fatal("Clamped modified the receiver")
	}
}
