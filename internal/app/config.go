package app

import (
	"strings"

	"vaults-mcp/internal/config"
	"vaults-mcp/pkg/logging"
)

// Config holds the application configuration
type Config struct {
	// Debug forces DEBUG logging regardless of the configured level
	Debug bool

	// ConfigPath replaces the layered user and project files with one explicit file
	ConfigPath string

	// Transport overrides, zero values keep the loaded settings
	Transport string
	Host      string
	Port      int

	// Settings is filled in by NewApplication
	Settings *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}

// applyOverrides copies the command line overrides onto settings.
func (c *Config) applyOverrides(settings *config.Config) {
	if c.Transport != "" {
		settings.Transport.Mode = strings.ToLower(strings.TrimSpace(c.Transport))
	}
	if c.Host != "" {
		settings.Transport.Host = c.Host
	}
	if c.Port != 0 {
		settings.Transport.Port = c.Port
	}
	if c.Debug {
		settings.LogLevel = logging.LevelDebug.String()
	}
}
