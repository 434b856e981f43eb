package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd
var osEnviron = os.Environ

const (
	userConfigDir    = ".config/vaults-mcp"
	projectConfigDir = ".vaults-mcp"
	configFileName   = "config.yaml"
	dotEnvFileName   = ".env"

	// EnvPrefix prefixes every environment variable read by the loader.
	EnvPrefix = "VAULTS_"
)

// LoadConfig builds the configuration by layering defaults, the user and project YAML files,
// the .env file and finally the process environment. The result is validated.
func LoadConfig() (Config, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		config, err = mergeFileIfExists(config, userConfigPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		config, err = mergeFileIfExists(config, projectConfigPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
	}

	return finishLoad(config)
}

// LoadConfigFromPath loads a single YAML file on top of the defaults, skipping the user and
// project layers. The .env file and the environment still apply.
func LoadConfigFromPath(path string) (Config, error) {
	fileOverlay, err := loadOverlayFromFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return finishLoad(mergeConfigs(GetDefaultConfig(), fileOverlay))
}

func finishLoad(config Config) (Config, error) {
	env, err := environment()
	if err != nil {
		return Config{}, err
	}

	envOverlay, err := overlayFromEnv(env)
	if err != nil {
		return Config{}, err
	}
	config = mergeConfigs(config, envOverlay)

	config.normalize()
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	dir, err := GetUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

var getDotEnvPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, dotEnvFileName), nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

func mergeFileIfExists(base Config, path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	fileOverlay, err := loadOverlayFromFile(path)
	if err != nil {
		return Config{}, err
	}
	return mergeConfigs(base, fileOverlay), nil
}

// loadOverlayFromFile reads one YAML layer.
func loadOverlayFromFile(filePath string) (overlay, error) {
	var layer overlay
	data, err := os.ReadFile(filePath)
	if err != nil {
		return overlay{}, err
	}
	if err := yaml.Unmarshal(data, &layer); err != nil {
		return overlay{}, err
	}
	return layer, nil
}

// environment returns the VAULTS_ variables from the .env file overlaid with the process
// environment. Keys are upper-cased so lookups are case-insensitive.
func environment() (map[string]string, error) {
	env := make(map[string]string)

	dotEnvPath, err := getDotEnvPath()
	if err == nil {
		if _, statErr := os.Stat(dotEnvPath); statErr == nil {
			values, readErr := godotenv.Read(dotEnvPath)
			if readErr != nil {
				return nil, fmt.Errorf("error reading %s: %w", dotEnvPath, readErr)
			}
			for k, v := range values {
				env[strings.ToUpper(k)] = v
			}
		}
	}

	for _, kv := range osEnviron() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[strings.ToUpper(k)] = v
	}
	return env, nil
}

func overlayFromEnv(env map[string]string) (overlay, error) {
	var layer overlay
	var errs []error

	str := func(name string) *string {
		v, ok := env[EnvPrefix+name]
		if !ok {
			return nil
		}
		return &v
	}
	integer := func(name string) *int {
		raw := str(name)
		if raw == nil {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s%s value %q: %w", EnvPrefix, name, *raw, err))
			return nil
		}
		return &n
	}
	float := func(name string) *float64 {
		raw := str(name)
		if raw == nil {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s%s value %q: %w", EnvPrefix, name, *raw, err))
			return nil
		}
		return &f
	}

	layer.BaseURL = str("BASE_URL")
	layer.FunctionKey = str("FUNCTION_KEY")
	layer.Timeout = integer("TIMEOUT")
	layer.MaxRetries = integer("MAX_RETRIES")
	layer.RetryDelay = float("RETRY_DELAY")
	layer.LogLevel = str("LOG_LEVEL")
	layer.ServerName = str("SERVER_NAME")
	layer.ServerVersion = str("SERVER_VERSION")
	layer.Transport.Mode = str("TRANSPORT")
	layer.Transport.Host = str("SSE_HOST")
	layer.Transport.Port = integer("SSE_PORT")

	return layer, errors.Join(errs...)
}

// mergeConfigs applies every non-nil field of the overlay on top of base.
func mergeConfigs(base Config, layer overlay) Config {
	merged := base

	if layer.BaseURL != nil {
		merged.BaseURL = *layer.BaseURL
	}
	if layer.FunctionKey != nil {
		merged.FunctionKey = *layer.FunctionKey
	}
	if layer.Timeout != nil {
		merged.Timeout = *layer.Timeout
	}
	if layer.MaxRetries != nil {
		merged.MaxRetries = *layer.MaxRetries
	}
	if layer.RetryDelay != nil {
		merged.RetryDelay = *layer.RetryDelay
	}
	if layer.LogLevel != nil {
		merged.LogLevel = *layer.LogLevel
	}
	if layer.ServerName != nil {
		merged.ServerName = *layer.ServerName
	}
	if layer.ServerVersion != nil {
		merged.ServerVersion = *layer.ServerVersion
	}
	if layer.Transport.Mode != nil {
		merged.Transport.Mode = *layer.Transport.Mode
	}
	if layer.Transport.Host != nil {
		merged.Transport.Host = *layer.Transport.Host
	}
	if layer.Transport.Port != nil {
		merged.Transport.Port = *layer.Transport.Port
	}

	return merged
}
