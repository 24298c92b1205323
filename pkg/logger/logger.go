// backend-go/pkg/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	// Log is the global logger instance
	Log zerolog.Logger

	out        io.Writer = os.Stdout
	jsonFormat bool
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	Log = build(consoleWriter(out), zerolog.InfoLevel)
}

func consoleWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

func build(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// SetLevel sets the log level
func SetLevel(levelStr string) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr)))
	if err != nil || levelStr == "" {
		Log.Warn().Str("level", levelStr).Msg("invalid log level, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
}

// SetFormat switches between colored console output and one JSON object per line.
// Batch runs piped into other tools should use "json".
func SetFormat(format string) {
	jsonFormat = strings.EqualFold(strings.TrimSpace(format), "json")
	rebuild()
}

// SetOutput redirects the global logger, keeping the current level and format.
// Tests use it with io.Discard or a buffer.
func SetOutput(w io.Writer) {
	out = w
	rebuild()
}

func rebuild() {
	w := out
	if !jsonFormat {
		w = consoleWriter(out)
	}
	Log = build(w, Log.GetLevel())
}
