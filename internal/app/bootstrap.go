package app

import (
	"fmt"
	"io"
	"os"

	"vaults-mcp/internal/client"
	"vaults-mcp/internal/config"
	"vaults-mcp/internal/server"
	"vaults-mcp/internal/tools"
	"vaults-mcp/pkg/logging"
)

// Application is the main application structure that bootstraps and runs vaults-mcp
type Application struct {
	config    *Config
	container *Container

	stdin  io.Reader
	stdout io.Writer
}

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config) (*Application, error) {
	// stdout carries MCP frames, so logs always go to stderr
	bootLevel := logging.LevelInfo
	if cfg.Debug {
		bootLevel = logging.LevelDebug
	}
	logging.InitForCLI(bootLevel, os.Stderr)

	settings, err := loadSettings(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Settings = &settings

	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.InitForCLI(level, os.Stderr)

	container, err := newContainer(settings)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logging.Info("Bootstrap", "Backend %s, transport %s", settings.BaseURL, settings.Transport.Mode)

	return &Application{
		config:    cfg,
		container: container,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}, nil
}

func loadSettings(cfg *Config) (config.Config, error) {
	var settings config.Config
	var err error

	if cfg.ConfigPath != "" {
		settings, err = config.LoadConfigFromPath(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from path: %s", cfg.ConfigPath)
			return config.Config{}, fmt.Errorf("failed to load configuration from path %s: %w", cfg.ConfigPath, err)
		}
		logging.Info("Bootstrap", "Loaded configuration from custom path: %s", cfg.ConfigPath)
	} else {
		settings, err = config.LoadConfig()
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration")
			return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
		}
		logging.Debug("Bootstrap", "Loaded configuration using layered approach")
	}

	cfg.applyOverrides(&settings)
	if err := settings.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid command line overrides: %w", err)
	}
	return settings, nil
}

// SetIO replaces the streams used by the stdio transport.
func (a *Application) SetIO(in io.Reader, out io.Writer) {
	a.stdin = in
	a.stdout = out
}

// Settings returns the effective configuration.
func (a *Application) Settings() config.Config {
	return *a.config.Settings
}

func (a *Application) Client() *client.Client {
	return a.container.Client()
}

func (a *Application) Registry() *tools.Registry {
	return a.container.Registry()
}

func (a *Application) Server() *server.Server {
	return a.container.Server()
}

// Close releases the backend client. It is safe to call more than once.
func (a *Application) Close() error {
	return a.container.Client().Close()
}
