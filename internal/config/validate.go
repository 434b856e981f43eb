package config

import (
	"errors"
	"fmt"
	"strings"

	"vaults-mcp/pkg/logging"
)

var (
	ErrInvalidBaseURL    = errors.New("base_url must start with http:// or https://")
	ErrInvalidTimeout    = errors.New("timeout must be positive")
	ErrInvalidMaxRetries = errors.New("max_retries must be non-negative")
	ErrInvalidRetryDelay = errors.New("retry_delay must be non-negative")
	ErrInvalidLogLevel   = errors.New("log_level must be one of: DEBUG, INFO, WARNING, ERROR, CRITICAL")
	ErrInvalidTransport  = errors.New("transport must be one of: stdio, sse")
	ErrInvalidPort       = errors.New("sse port must be between 1 and 65535")
)

func (c *Config) normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	c.Transport.Mode = strings.ToLower(strings.TrimSpace(c.Transport.Mode))
}

// Validate reports every invalid field at once. The returned error matches the
// corresponding Err* sentinels with errors.Is.
func (c Config) Validate() error {
	var errs []error

	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("%w (got %q)", ErrInvalidBaseURL, c.BaseURL))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrInvalidTimeout, c.Timeout))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrInvalidMaxRetries, c.MaxRetries))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("%w (got %g)", ErrInvalidRetryDelay, c.RetryDelay))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w (got %q)", ErrInvalidLogLevel, c.LogLevel))
	}

	switch c.Transport.Mode {
	case TransportStdio:
	case TransportSSE:
		if c.Transport.Port <= 0 || c.Transport.Port > 65535 {
			errs = append(errs, fmt.Errorf("%w (got %d)", ErrInvalidPort, c.Transport.Port))
		}
	default:
		errs = append(errs, fmt.Errorf("%w (got %q)", ErrInvalidTransport, c.Transport.Mode))
	}

	return errors.Join(errs...)
}
