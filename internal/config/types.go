package config

import "time"

const (
	// TransportStdio serves MCP over the process' stdin and stdout.
	TransportStdio = "stdio"
	// TransportSSE serves MCP over HTTP Server-Sent Events.
	TransportSSE = "sse"
)

// Config is the complete runtime configuration of the bridge.
type Config struct {
	BaseURL     string `yaml:"baseUrl"`               // Backend base URL, trailing slash removed
	FunctionKey string `yaml:"functionKey,omitempty"` // Sent as x-functions-key on authenticated routes

	Timeout    int     `yaml:"timeout"`    // Per-request timeout in seconds
	MaxRetries int     `yaml:"maxRetries"` // Total attempts per request
	RetryDelay float64 `yaml:"retryDelay"` // Backoff base delay in seconds

	LogLevel string `yaml:"logLevel"` // DEBUG, INFO, WARNING, ERROR or CRITICAL

	ServerName    string `yaml:"serverName"`
	ServerVersion string `yaml:"serverVersion"`

	Transport TransportConfig `yaml:"transport"`
}

// TransportConfig selects how the MCP server is exposed.
type TransportConfig struct {
	Mode string `yaml:"mode"`           // "stdio" or "sse"
	Host string `yaml:"host,omitempty"` // SSE bind host
	Port int    `yaml:"port,omitempty"` // SSE bind port
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// RetryDelayDuration returns RetryDelay as a time.Duration.
func (c Config) RetryDelayDuration() time.Duration {
	return time.Duration(c.RetryDelay * float64(time.Second))
}

// HasFunctionKey reports whether a function key is configured.
func (c Config) HasFunctionKey() bool {
	return c.FunctionKey != ""
}

// overlay is one configuration layer. Nil fields leave the lower layer untouched.
type overlay struct {
	BaseURL       *string  `yaml:"baseUrl"`
	FunctionKey   *string  `yaml:"functionKey"`
	Timeout       *int     `yaml:"timeout"`
	MaxRetries    *int     `yaml:"maxRetries"`
	RetryDelay    *float64 `yaml:"retryDelay"`
	LogLevel      *string  `yaml:"logLevel"`
	ServerName    *string  `yaml:"serverName"`
	ServerVersion *string  `yaml:"serverVersion"`

	Transport struct {
		Mode *string `yaml:"mode"`
		Host *string `yaml:"host"`
		Port *int    `yaml:"port"`
	} `yaml:"transport"`
}
