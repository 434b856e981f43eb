package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"WARNING", LevelWarn, false},
		{"warn", LevelWarn, false},
		{"Error", LevelError, false},
		{"CRITICAL", LevelCritical, false},
		{" INFO ", LevelInfo, false},
		{"TRACE", LevelInfo, true},
		{"", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "WARNING", LevelWarn.String())
	assert.Equal(t, "CRITICAL", LevelCritical.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestInitForCLI_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Debug("Test", "debug message")
	Info("Test", "info message")
	Warn("Test", "warn message %d", 1)
	Error("Test", errors.New("boom"), "error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message 1")
	assert.Contains(t, out, "subsystem=Test")
	assert.Contains(t, out, "error=boom")
	assert.Equal(t, LevelWarn, Level())
}

func TestCriticalLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelCritical, &buf)

	Error("Test", nil, "hidden")
	Critical("Test", errors.New("fatal"), "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "level=CRITICAL")
}

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	logger := StdLogger("Bridge", LevelError)
	logger.Println("transport failure")

	out := buf.String()
	assert.Contains(t, out, "transport failure")
	assert.Contains(t, out, "subsystem=Bridge")
	assert.Contains(t, out, "level=ERROR")
}
