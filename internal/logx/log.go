// Package logx holds the process-wide logger used by the CLI and HTTP front
// end. Library packages accept a zerolog.Logger instead of importing this.
package logx

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Log is the shared logger.
var Log = New(os.Stderr, strings.EqualFold(os.Getenv("DEBUG"), "true"))

// New builds a console logger writing to out. debug lowers the level to
// zerolog.DebugLevel.
func New(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
}

// SetDebug switches the shared logger between info and debug level.
func SetDebug(debug bool) {
	if debug {
		Log = Log.Level(zerolog.DebugLevel)
		return
	}
	Log = Log.Level(zerolog.InfoLevel)
}
