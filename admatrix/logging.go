package admatrix

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewConsoleLogger returns a human readable logger writing to out. Debug
// lowers the level from info to debug.
func NewConsoleLogger(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
