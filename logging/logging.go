// Package logging builds the zerolog loggers used across the game.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel  = "CUPCAKE_LOG_LEVEL"
	EnvLogPretty = "CUPCAKE_LOG_PRETTY"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config is the resolved logger setup.
type Config struct {
	Level     zerolog.Level
	Pretty    bool
	Timestamp bool
	Output    io.Writer
}

// DefaultConfig returns the profile's defaults before overrides.
func DefaultConfig(profile Profile) Config {
	switch profile {
	case ProfileTest:
		return Config{Level: zerolog.DebugLevel, Output: os.Stderr}
	default:
		return Config{Level: zerolog.InfoLevel, Timestamp: true, Output: os.Stderr}
	}
}

// Settings are the file-level options; empty values keep the profile
// default.
type Settings struct {
	Level  string
	Pretty bool
}

// New builds a logger for profile. Settings apply first, then the
// CUPCAKE_LOG_* environment variables.
func New(profile Profile, s Settings) zerolog.Logger {
	cfg := DefaultConfig(profile)
	if lvl, ok := ParseLevel(s.Level); ok {
		cfg.Level = lvl
	}
	if s.Pretty {
		cfg.Pretty = true
	}
	applyEnvOverrides(&cfg)
	return Build(cfg)
}

// Build creates a logger from a resolved Config.
func Build(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		cw := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
		if !cfg.Timestamp {
			cw.PartsExclude = []string{zerolog.TimestampFieldName}
		}
		out = cw
	}
	ctx := zerolog.New(out).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogPretty)); ok {
		cfg.Pretty = v
	}
}

// ParseLevel maps a level name to a zerolog level. It accepts the zerolog
// names plus "warning", "off" and "none". An empty or unknown name reports
// false.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
