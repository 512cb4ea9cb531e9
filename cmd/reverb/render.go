package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-reverb/host"
	"github.com/cwbudde/algo-reverb/internal/audio"
	"github.com/cwbudde/algo-reverb/internal/cli"
	"github.com/cwbudde/algo-reverb/internal/ui"
)

// reportFrames is how often renderClip reports progress.
const reportFrames = 8192

var errCancelled = errors.New("render cancelled")

// RenderCmd processes a WAV file through the reverb.
type RenderCmd struct {
	In        string  `arg:"" type:"existingfile" help:"Input WAV file (PCM, mono or stereo)."`
	Out       string  `arg:"" type:"path" help:"Output WAV file."`
	Tail      float64 `default:"-1" placeholder:"S" help:"Seconds of silence appended for the tail. Negative uses twice the decay time."`
	BlockSize int     `name:"block-size" default:"512" help:"Frames per processing block."`
	Bits      int     `default:"0" help:"Output bit depth (16, 24 or 32). 0 keeps the input depth."`
	Progress  bool    `negatable:"" default:"true" help:"Show the progress view."`

	ReverbFlags `embed:""`
}

// Run renders c.In into c.Out.
func (c *RenderCmd) Run(g *Globals) error {
	clip, err := audio.ReadFile(c.In)
	if err != nil {
		return err
	}

	e, err := newEngine(float64(clip.SampleRate), c.BlockSize, &c.ReverbFlags, g.Logger)
	if err != nil {
		return err
	}

	inputFrames := clip.Frames()
	clip.AppendSilence(tailFrames(c.Tail, e, clip.SampleRate))

	bits := c.Bits
	if bits == 0 {
		bits = clip.BitDepth
	}

	g.Logger.Info("rendering", "input", c.In, "frames", clip.Frames(), "sample_rate", clip.SampleRate)

	start := time.Now()

	if c.Progress {
		err = renderWithProgress(e, clip, c.In, c.Out, bits)
	} else {
		err = renderToFile(context.Background(), e, clip, c.Out, bits, nil)
	}

	if err != nil {
		return err
	}

	cli.PrintKeyValue(g.Out, "Output", c.Out)
	cli.PrintKeyValue(g.Out, "Input", fmt.Sprintf("%d frames", inputFrames))
	cli.PrintKeyValue(g.Out, "Rendered", fmt.Sprintf("%d frames at %d Hz", clip.Frames(), clip.SampleRate))
	cli.PrintKeyValue(g.Out, "Elapsed", time.Since(start).Round(time.Millisecond).String())

	return nil
}

// tailFrames converts a tail length in seconds to frames. Negative seconds
// select the engine's own tail estimate.
func tailFrames(seconds float64, e *host.Engine, sampleRate int) int {
	if seconds < 0 {
		seconds = e.TailLength().Seconds()
	}

	return int(math.Round(seconds * float64(sampleRate)))
}

// renderClip processes clip in place. report, when set, is called after
// every reportFrames frames and once at the end.
func renderClip(ctx context.Context, e *host.Engine, clip *audio.Stereo, report func(done, total int, lv host.Levels)) error {
	total := clip.Frames()

	for pos := 0; pos < total; pos += reportFrames {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(pos+reportFrames, total)
		e.Process(clip.Left[pos:end], clip.Right[pos:end])

		if report != nil {
			report(end, total, e.Levels())
		}
	}

	return nil
}

func renderToFile(ctx context.Context, e *host.Engine, clip *audio.Stereo, path string, bits int,
	report func(done, total int, lv host.Levels),
) error {
	if err := renderClip(ctx, e, clip, report); err != nil {
		return err
	}

	return audio.WriteFile(path, clip, bits)
}

// renderWithProgress runs the render in a goroutine and shows the
// Bubbletea view until it reports done or the user quits.
func renderWithProgress(e *host.Engine, clip *audio.Stereo, in, out string, bits int) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan tea.Msg, 16)
	finished := make(chan struct{})

	go func() {
		defer close(finished)

		err := renderToFile(ctx, e, clip, out, bits, func(done, total int, lv host.Levels) {
			select {
			case updates <- ui.ProgressMsg{Frames: done, Total: total, Peak: lv.Output, Reverb: lv.Reverb}:
			default:
			}
		})

		select {
		case updates <- ui.DoneMsg{OutputPath: out, Err: err}:
		case <-ctx.Done():
		}
	}()

	final, err := tea.NewProgram(ui.NewModel("Reverb", in, updates)).Run()
	cancel()
	<-finished

	if err != nil {
		return err
	}

	m, ok := final.(ui.Model)
	if !ok {
		return nil
	}

	if m.Cancelled {
		return errCancelled
	}

	return m.Err
}
