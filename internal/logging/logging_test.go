package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/seenimoa/newsscan/internal/config"
)

func TestNewTextLogger(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "info", Format: "text"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer log.Sync()

	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug enabled at info level")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info disabled at info level")
	}
}

func TestNewJSONLogger(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer log.Sync()

	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug disabled at debug level")
	}
}

func TestLevelFromString(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		if got := levelFromString(tc.in); got != tc.want {
			t.Errorf("levelFromString(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
