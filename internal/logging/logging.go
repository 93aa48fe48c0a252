package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup initializes a zerolog.Logger based on the requested format.
// format can be "text" (human-friendly console) or "json" (structured).
// Every entry carries the command name under "cmd".
func Setup(format, command string) zerolog.Logger {
	var log zerolog.Logger
	if format == "text" {
		log = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	} else {
		log = zerolog.New(os.Stderr)
	}
	ctx := log.With().Timestamp()
	if command != "" {
		ctx = ctx.Str("cmd", command)
	}
	return ctx.Logger()
}
