package main

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/internal/audio"
	"github.com/cwbudde/algo-reverb/internal/cli"
	"github.com/cwbudde/algo-reverb/measure/tail"
)

// ImpulseCmd renders the stereo impulse response and reports its decay.
type ImpulseCmd struct {
	Rate    float64 `default:"48000" help:"Sample rate in Hz."`
	Seconds float64 `default:"-1" placeholder:"S" help:"Response length. Negative uses twice the decay time."`
	Out     string  `type:"path" placeholder:"FILE" help:"Also write the response as a 24-bit WAV file."`
	FFTSize int     `name:"fft-size" default:"1024" help:"Frame size for the band analysis (power of two)."`
	WetOnly bool    `name:"wet-only" negatable:"" default:"true" help:"Force the mix fully wet so the dry impulse is not measured."`

	ReverbFlags `embed:""`
}

// Run renders and analyzes the response.
func (c *ImpulseCmd) Run(g *Globals) error {
	e, err := newEngine(c.Rate, 0, &c.ReverbFlags, g.Logger)
	if err != nil {
		return err
	}

	if c.WetOnly {
		e.Set(reverb.ParamDryWet, 1)
	}

	if err := e.Prepare(c.Rate); err != nil {
		return err
	}

	sr := int(e.SampleRate())

	frames := tailFrames(c.Seconds, e, sr)
	if frames <= 0 {
		return fmt.Errorf("impulse length must be positive, got %g s", c.Seconds)
	}

	ir := audio.NewStereo(sr, 24, frames)
	ir.Left[0], ir.Right[0] = 1, 1
	e.Process(ir.Left, ir.Right)

	analyzer := tail.NewAnalyzer(e.SampleRate(), tail.WithFFTSize(c.FFTSize))

	left, err := analyzer.Analyze(ir.Left)
	if err != nil {
		return fmt.Errorf("left channel: %w", err)
	}

	right, err := analyzer.Analyze(ir.Right)
	if err != nil {
		return fmt.Errorf("right channel: %w", err)
	}

	cli.PrintTitle(g.Out, "Impulse Response")
	fmt.Fprintln(g.Out, metricsTable(left, right).String())

	leftBands, errL := analyzer.BandDecay(ir.Left)
	rightBands, errR := analyzer.BandDecay(ir.Right)

	if err := errors.Join(errL, errR); err == nil {
		fmt.Fprintln(g.Out, cli.SectionStyle.Render("Band Decay"))
		fmt.Fprintln(g.Out, bandTable(leftBands, rightBands).String())
	} else {
		g.Logger.Warn("band analysis skipped", "err", err)
	}

	if c.Out != "" {
		if err := audio.WriteFile(c.Out, ir, 24); err != nil {
			return err
		}

		cli.PrintKeyValue(g.Out, "Output", c.Out)
	}

	return nil
}

func metricsTable(l, r tail.Metrics) *cli.Table {
	sec := func(v float64) string { return fmt.Sprintf("%.2f s", v) }
	db := func(v float64) string { return fmt.Sprintf("%.1f dB", v) }
	pct := func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) }

	return &cli.Table{
		Headers: []string{"Metric", "Left", "Right"},
		Rows: []cli.Row{
			{Label: "RT60", Cells: []string{sec(l.RT60), sec(r.RT60)}},
			{Label: "EDT", Cells: []string{sec(l.EDT), sec(r.EDT)}},
			{Label: "T20", Cells: []string{sec(l.T20), sec(r.T20)}},
			{Label: "T30", Cells: []string{sec(l.T30), sec(r.T30)}},
			{Label: "C50", Cells: []string{db(l.C50), db(r.C50)}},
			{Label: "C80", Cells: []string{db(l.C80), db(r.C80)}},
			{Label: "D50", Cells: []string{pct(l.D50), pct(r.D50)}},
			{Label: "Center time", Cells: []string{
				fmt.Sprintf("%.0f ms", l.CenterTime*1000), fmt.Sprintf("%.0f ms", r.CenterTime*1000),
			}},
		},
	}
}

func bandTable(l, r []tail.BandResult) *cli.Table {
	t := &cli.Table{Headers: []string{"Band", "Left RT60", "Right RT60"}}

	for i := range min(len(l), len(r)) {
		t.Rows = append(t.Rows, cli.Row{
			Label: l[i].Band.String(),
			Cells: []string{bandRT(l[i]), bandRT(r[i])},
		})
	}

	return t
}

func bandRT(b tail.BandResult) string {
	if b.RT60 <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.2f s", b.RT60)
}
