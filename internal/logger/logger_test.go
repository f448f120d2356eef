package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"off", LevelOff},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Info("Reader", "skipped: rows=%d", 3)
	l.Warn("Reader", "malformed field: sheet=%d column=%s", 12, "WAGE_ST")

	out := buf.String()
	assert.NotContains(t, out, "skipped")
	assert.Contains(t, out, "[WARN] [Reader] malformed field: sheet=12 column=WAGE_ST")
}

func TestLoggerWithoutComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Error("", "boom")
	assert.Contains(t, buf.String(), "[ERROR] boom")
}

func TestDiscardAndNil(t *testing.T) {
	assert.False(t, Discard().Enabled(LevelError))

	var l *Logger
	assert.NotPanics(t, func() { l.Info("X", "nothing") })
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelError, &buf)
	l.Debug("X", "hidden")
	l.SetLogLevel(LevelDebug)
	l.Debug("X", "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Equal(t, "DEBUG", LevelDebug.String())
}
