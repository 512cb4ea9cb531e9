package host

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
)

// StateVersion is the version written by SaveState.
const StateVersion = 1

// ErrUnsupportedVersion is returned for state written by a newer version.
var ErrUnsupportedVersion = errors.New("host: unsupported state version")

type stateFile struct {
	Version int                `json:"version"`
	Params  map[string]float64 `json:"params"`
}

// SaveState writes params as indented JSON keyed by parameter ID.
func SaveState(w io.Writer, params reverb.Parameters) error {
	st := stateFile{
		Version: StateVersion,
		Params:  make(map[string]float64, reverb.NumParams),
	}

	for _, p := range reverb.AllParams() {
		st.Params[p.ID()] = params.Get(p)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("host: encode state: %w", err)
	}

	return nil
}

// LoadState reads a state written by SaveState. Missing parameters keep
// their defaults, values are clamped, and unknown keys are an error.
func LoadState(r io.Reader) (reverb.Parameters, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var st stateFile
	if err := dec.Decode(&st); err != nil {
		return reverb.Parameters{}, fmt.Errorf("host: decode state: %w", err)
	}

	if st.Version < 1 || st.Version > StateVersion {
		return reverb.Parameters{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, st.Version)
	}

	params := reverb.DefaultParameters()

	for _, id := range slices.Sorted(maps.Keys(st.Params)) {
		p, ok := reverb.ParamByID(id)
		if !ok {
			return reverb.Parameters{}, fmt.Errorf("%w: %q", ErrUnknownParam, id)
		}

		params.Set(p, st.Params[id])
	}

	return params, nil
}
