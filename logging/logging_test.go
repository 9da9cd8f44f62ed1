package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{" WARN ", zerolog.WarnLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"verbose", zerolog.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseBool(t *testing.T) {
	if v, ok := parseBool("true"); !v || !ok {
		t.Error("parseBool(true)")
	}
	if _, ok := parseBool("maybe"); ok {
		t.Error("parseBool(maybe) should fail")
	}
	if _, ok := parseBool(" "); ok {
		t.Error("parseBool(blank) should fail")
	}
}

func TestDefaultConfigProfiles(t *testing.T) {
	rt := DefaultConfig(ProfileRuntime)
	if rt.Level != zerolog.InfoLevel || !rt.Timestamp {
		t.Errorf("runtime = %+v", rt)
	}
	tc := DefaultConfig(ProfileTest)
	if tc.Level != zerolog.DebugLevel || tc.Timestamp {
		t.Errorf("test = %+v", tc)
	}
}

func TestEnvOverridesSettings(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogPretty, "false")

	cfg := DefaultConfig(ProfileRuntime)
	cfg.Pretty = true
	applyEnvOverrides(&cfg)

	if cfg.Level != zerolog.ErrorLevel {
		t.Errorf("Level = %v, want error", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Pretty should be overridden to false")
	}
}

func TestNewUsesSettingsLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	l := New(ProfileRuntime, Settings{Level: "warn"})
	if l.GetLevel() != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn", l.GetLevel())
	}
}

func TestBuildJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Build(Config{Level: zerolog.InfoLevel, Output: &buf})
	l.Debug().Msg("hidden")
	l.Info().Str("component", "session").Msg("started")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, `"component":"session"`) || strings.Contains(out, `"time"`) {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestBuildPretty(t *testing.T) {
	var buf bytes.Buffer
	l := Build(Config{Level: zerolog.DebugLevel, Pretty: true, Output: &buf})
	l.Info().Msg("hello")
	out := buf.String()
	if strings.HasPrefix(out, "{") || !strings.Contains(out, "hello") {
		t.Errorf("expected console output, got %q", out)
	}
}
