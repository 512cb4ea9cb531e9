package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/cwbudde/algo-reverb/host"
	"github.com/cwbudde/algo-reverb/internal/audio"
	"github.com/cwbudde/algo-reverb/internal/cli"
	"github.com/cwbudde/algo-reverb/internal/playback"
)

// PlayCmd plays a WAV file through the reverb on the default output device.
type PlayCmd struct {
	In        string  `arg:"" type:"existingfile" help:"Input WAV file (PCM, mono or stereo)."`
	Tail      float64 `default:"-1" placeholder:"S" help:"Seconds of tail played after the input. Negative uses twice the decay time."`
	BlockSize int     `name:"block-size" default:"512" help:"Frames per processing block."`

	ReverbFlags `embed:""`
}

// clipRenderer feeds a clip through the engine block by block.
type clipRenderer struct {
	engine *host.Engine
	clip   *audio.Stereo
	pos    int
}

func (r *clipRenderer) Render(left, right []float64) int {
	n := min(len(left), len(right), r.clip.Frames()-r.pos)
	if n <= 0 {
		return 0
	}

	copy(left[:n], r.clip.Left[r.pos:r.pos+n])
	copy(right[:n], r.clip.Right[r.pos:r.pos+n])
	r.engine.Process(left[:n], right[:n])
	r.pos += n

	return n
}

// Run plays until the clip and its tail end or the process is interrupted.
func (c *PlayCmd) Run(g *Globals) error {
	clip, err := audio.ReadFile(c.In)
	if err != nil {
		return err
	}

	e, err := newEngine(float64(clip.SampleRate), c.BlockSize, &c.ReverbFlags, g.Logger)
	if err != nil {
		return err
	}

	clip.AppendSilence(tailFrames(c.Tail, e, clip.SampleRate))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.PrintKeyValue(g.Out, "Playing", c.In)

	stream := playback.NewStream(&clipRenderer{engine: e, clip: clip}, e.Config().BlockSize)

	err = playback.Play(ctx, clip.SampleRate, stream, g.Logger)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
