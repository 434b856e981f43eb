package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults", func(*Config) {}, nil},
		{"http url", func(c *Config) { c.BaseURL = "http://localhost:7071" }, nil},
		{"bad scheme", func(c *Config) { c.BaseURL = "localhost:7071" }, ErrInvalidBaseURL},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, ErrInvalidMaxRetries},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }, nil},
		{"negative delay", func(c *Config) { c.RetryDelay = -0.1 }, ErrInvalidRetryDelay},
		{"bad level", func(c *Config) { c.LogLevel = "TRACE" }, ErrInvalidLogLevel},
		{"bad transport", func(c *Config) { c.Transport.Mode = "websocket" }, ErrInvalidTransport},
		{"bad sse port", func(c *Config) { c.Transport.Mode = TransportSSE; c.Transport.Port = 70000 }, ErrInvalidPort},
		{"port ignored for stdio", func(c *Config) { c.Transport.Port = 0 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.BaseURL = " https://example.net/// "
	cfg.LogLevel = "warning"
	cfg.Transport.Mode = "SSE"
	cfg.normalize()

	assert.Equal(t, "https://example.net", cfg.BaseURL)
	assert.Equal(t, "WARNING", cfg.LogLevel)
	assert.Equal(t, TransportSSE, cfg.Transport.Mode)
}

func TestDurations(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Timeout = 3
	cfg.RetryDelay = 0.25
	assert.Equal(t, 3*time.Second, cfg.TimeoutDuration())
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelayDuration())
}
