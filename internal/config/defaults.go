package config

const (
	DefaultBaseURL       = "https://your-function-app.azurewebsites.net"
	DefaultTimeout       = 30
	DefaultMaxRetries    = 5
	DefaultRetryDelay    = 1.0
	DefaultLogLevel      = "INFO"
	DefaultServerName    = "vaults-mcp"
	DefaultServerVersion = "1.0.0"
	DefaultSSEHost       = "localhost"
	DefaultSSEPort       = 8080
)

// GetDefaultConfig returns the configuration used when no file or environment overrides it.
func GetDefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		MaxRetries:    DefaultMaxRetries,
		RetryDelay:    DefaultRetryDelay,
		LogLevel:      DefaultLogLevel,
		ServerName:    DefaultServerName,
		ServerVersion: DefaultServerVersion,
		Transport: TransportConfig{
			Mode: TransportStdio,
			Host: DefaultSSEHost,
			Port: DefaultSSEPort,
		},
	}
}
