// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package logging provides the process-wide zerolog logger for Lumiere.
//
// The server and the CLI call Init once at startup with values from the
// configuration layer. Packages that own long-lived components take a
// zerolog.Logger in their constructor and derive a child with a "component"
// field; request-scoped code uses Ctx(ctx) so request and correlation IDs
// travel with every line.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("addr", addr).Msg("server listening")
//	logging.Ctx(ctx).Warn().Str("tag", tag).Msg("tag could not be resolved")
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level, format and destination for the global logger.
// Zero values fall back to DefaultConfig.
type Config struct {
	Level     string // trace, debug, info, warn, error, fatal, panic or disabled
	Format    string // json or console
	Caller    bool   // add file:line to every line
	Timestamp bool
	Output    io.Writer // defaults to os.Stderr
}

// DefaultConfig is JSON at info level on stderr with timestamps.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"
	log = build(DefaultConfig())
}

// Init reconfigures the global logger. Safe to call more than once.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	defer mu.Unlock()
	log = l
}

func build(cfg Config) zerolog.Logger {
	defaults := DefaultConfig()
	if cfg.Output == nil {
		cfg.Output = defaults.Output
	}
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	out := cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.TimeOnly}
	}
	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

var errEmptyLevel = errors.New("empty log level")

// lookupLevel accepts zerolog's level names plus "warning".
func lookupLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		return zerolog.NoLevel, errEmptyLevel
	case "warning":
		return zerolog.WarnLevel, nil
	}
	return zerolog.ParseLevel(level)
}

// parseLevel returns the zerolog level for level, or info when unknown.
func parseLevel(level string) zerolog.Level {
	l, err := lookupLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// ValidLevel reports whether level names a known zerolog level.
func ValidLevel(level string) bool {
	_, err := lookupLevel(level)
	return err == nil
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Info starts a new message with info level.
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a new message with warning level.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts a new message with error level.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// Fatal starts a new message with fatal level; os.Exit(1) follows the write.
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}

// NewTestLogger creates a logger that writes JSON to w, for capturing
// output in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
