package playback

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ebitengine/oto/v3"
)

const pollInterval = 50 * time.Millisecond

// Play opens the output device at sampleRate and plays src until it ends
// or ctx is cancelled. oto allows one device context per process, so Play
// must not be called concurrently.
func Play(ctx context.Context, sampleRate int, src io.Reader, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("playback: open device: %w", err)
	}

	<-ready

	player := otoCtx.NewPlayer(src)
	player.Play()

	logger.Debug("playback started", "sample_rate", sampleRate)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			logger.Debug("playback cancelled")

			if err := player.Close(); err != nil {
				return fmt.Errorf("playback: close: %w", err)
			}

			return ctx.Err()
		case <-ticker.C:
		}
	}

	if err := player.Err(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	logger.Debug("playback finished")

	return player.Close()
}
