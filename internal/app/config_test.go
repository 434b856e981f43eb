package app

import (
	"testing"

	"vaults-mcp/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(true, "/tmp/vaults.yaml")

	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/vaults.yaml", cfg.ConfigPath)
	assert.Nil(t, cfg.Settings)
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		expect func(*testing.T, config.Config)
	}{
		{
			name: "no overrides keep loaded settings",
			cfg:  Config{},
			expect: func(t *testing.T, s config.Config) {
				assert.Equal(t, config.TransportStdio, s.Transport.Mode)
				assert.Equal(t, config.DefaultSSEHost, s.Transport.Host)
				assert.Equal(t, config.DefaultSSEPort, s.Transport.Port)
				assert.Equal(t, config.DefaultLogLevel, s.LogLevel)
			},
		},
		{
			name: "transport flags",
			cfg:  Config{Transport: " SSE ", Host: "0.0.0.0", Port: 9000},
			expect: func(t *testing.T, s config.Config) {
				assert.Equal(t, config.TransportSSE, s.Transport.Mode)
				assert.Equal(t, "0.0.0.0", s.Transport.Host)
				assert.Equal(t, 9000, s.Transport.Port)
			},
		},
		{
			name: "debug forces debug level",
			cfg:  Config{Debug: true},
			expect: func(t *testing.T, s config.Config) {
				assert.Equal(t, "DEBUG", s.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.GetDefaultConfig()
			tt.cfg.applyOverrides(&settings)
			tt.expect(t, settings)
		})
	}
}
