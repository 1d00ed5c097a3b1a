package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the application logger. Development mode writes
// human-readable console output; production writes JSON lines.
// The logger is constructed once and injected, never held as a
// package-level singleton.
func New(isProduction bool) zerolog.Logger {
	if isProduction {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}
