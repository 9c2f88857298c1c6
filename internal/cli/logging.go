package cli

import (
	"io"

	"github.com/rs/zerolog"
)

// newLogger builds the invocation's logger. Logs go to stderr so they
// never mix with command output.
func newLogger(w io.Writer, level string, pretty bool) zerolog.Logger {
	var lvl zerolog.Level

	switch level {
	case "trace":
		lvl = zerolog.TraceLevel
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.WarnLevel
	}

	if pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}
