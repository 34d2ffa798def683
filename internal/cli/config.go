package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/ubnt/ucrm-plugin-sdk-go/pkg/ucrmapi"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.toml"

// Environment variables that override the config file.
const (
	EnvPrefix     = "ucrm"
	EnvPluginRoot = "UCRM_PLUGIN_ROOT"
	EnvLogLevel   = "UCRM_LOG_LEVEL"
)

type envOverrides struct {
	PluginRoot string `envconfig:"PLUGIN_ROOT"`
	LogLevel   string `envconfig:"LOG_LEVEL"`
}

// Config represents the configuration of the ucrm CLI.
// Every field is optional.
type Config struct {
	// PluginRoot is the plugin root used when --root is not given. Defaults to the working directory.
	PluginRoot string `toml:"plugin_root"`
	// Timeout bounds every API request, e.g. "30s". Empty means no timeout.
	Timeout string `toml:"timeout"`
	// VerifyTLS enables verification of the UCRM certificate.
	VerifyTLS bool `toml:"verify_tls"`
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level"`
}

var config = &Config{}

// GetDefaultConfigPath returns the default path for the config file
// It uses the OS-specific config directory (e.g., ~/.config/ucrm on Linux)
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "ucrm", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from file and applies environment overrides.
// If file is empty the default location is used, and a missing default file is not an error.
func LoadConfig(file string) (*Config, error) {
	optional := false
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return nil, err
		}
		optional = true
	}

	c := &Config{}
	content, err := os.ReadFile(file)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(content), c); err != nil {
			return nil, fmt.Errorf("unable to parse config file %s: %w", file, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

func (cfg *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("unable to read environment: %w", err)
	}
	if env.PluginRoot != "" {
		cfg.PluginRoot = env.PluginRoot
	}
	if env.LogLevel != "" {
		cfg.LogLevel = env.LogLevel
	}
	return nil
}

// ValidateConfig checks the values that need parsing.
func (cfg *Config) ValidateConfig() error {
	if cfg.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	if d < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// TimeoutDuration returns the parsed request timeout, zero if unset.
func (cfg *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(cfg.Timeout)
	return d
}

// GetPluginRoot returns the configured plugin root or the working directory.
func (cfg *Config) GetPluginRoot() (string, error) {
	if cfg.PluginRoot != "" {
		return cfg.PluginRoot, nil
	}
	return os.Getwd()
}

// ClientOptions converts the configuration into API client options.
func (cfg *Config) ClientOptions() []ucrmapi.Option {
	return []ucrmapi.Option{
		ucrmapi.WithTimeout(cfg.TimeoutDuration()),
		ucrmapi.WithTLSVerification(cfg.VerifyTLS),
	}
}

// newAPIClient creates an API client for the configured plugin root.
func newAPIClient() (*ucrmapi.Client, error) {
	root, err := GetConfig().GetPluginRoot()
	if err != nil {
		return nil, err
	}
	return ucrmapi.Create(root, GetConfig().ClientOptions()...)
}
