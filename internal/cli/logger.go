package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// NewLogger returns a slog.Logger backed by a charmbracelet logger writing
// to w at the named level (debug, info, warn, error).
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "reverb",
	})

	return slog.New(handler), nil
}
