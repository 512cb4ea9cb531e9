package main

import (
	"os"

	"github.com/cwbudde/algo-reverb/host"
	"github.com/cwbudde/algo-reverb/internal/cli"
)

// PresetCmd groups the preset subcommands.
type PresetCmd struct {
	Save PresetSaveCmd `cmd:"" help:"Write the resolved parameters to a preset file."`
}

// PresetSaveCmd writes defaults, an optional base preset and flag overrides
// to a new preset.
type PresetSaveCmd struct {
	File string `arg:"" type:"path" help:"Preset file to write."`

	ReverbFlags `embed:""`
}

// Run writes the preset.
func (c *PresetSaveCmd) Run(g *Globals) error {
	params, err := c.Parameters()
	if err != nil {
		return err
	}

	f, err := os.Create(c.File)
	if err != nil {
		return err
	}

	if err := host.SaveState(f, params); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	cli.PrintKeyValue(g.Out, "Preset", c.File)

	return nil
}
