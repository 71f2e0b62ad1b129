package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. Format "json" writes raw events,
// anything else goes through the console writer.
func NewLogger(settings LogSettings) zerolog.Logger {
	return newLogger(os.Stdout, settings)
}

func newLogger(w io.Writer, settings LogSettings) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(settings.Level))
	if err != nil || settings.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if settings.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
