package main

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/host"
	"github.com/cwbudde/algo-reverb/internal/cli"
)

// ParamsCmd lists every reverb parameter.
type ParamsCmd struct {
	JSON bool `name:"json" help:"Print the defaults as a preset file instead of a table."`
}

// Run prints the parameter table.
func (c *ParamsCmd) Run(g *Globals) error {
	if c.JSON {
		return host.SaveState(g.Out, reverb.DefaultParameters())
	}

	t := &cli.Table{Headers: []string{"ID", "Name", "Range", "UI range", "Default"}}

	for _, d := range host.Descriptors() {
		r := d.Param.Range()

		t.Rows = append(t.Rows, cli.Row{
			Label: d.ID,
			Cells: []string{
				d.Name,
				fmt.Sprintf("%g..%g", r.Min, r.Max),
				fmt.Sprintf("%g..%g", d.Min, d.Max),
				d.Format(d.Default),
			},
		})
	}

	cli.PrintTitle(g.Out, "Parameters")
	fmt.Fprintln(g.Out, t.String())

	return nil
}
