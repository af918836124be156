// Package logger configures the process-wide zerolog logger.
//
// Go Pattern: Logging is configured once in main and then used through the
// global github.com/rs/zerolog/log package everywhere else, the same way the
// standard library's log package is used, but with levels and fields.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls level and output format.
type Config struct {
	Level   string    // "debug", "info", "warn", "error"
	Format  string    // "console" or "json"
	Output  io.Writer // defaults to os.Stdout
	Service string
}

// Setup installs the global logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006/01/02 15:04:05"}
	}

	l := zerolog.New(out).With().Timestamp().Str("service", cfg.Service).Logger()
	log.Logger = l
	return l
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
