// Package config holds the nopkg configuration, loaded from ~/.nopkg.yaml
// with environment variable overrides via viper.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete nopkg configuration.
type Config struct {
	Python   PythonConfig   `yaml:"python" mapstructure:"python"`
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	Watch    WatchConfig    `yaml:"watch" mapstructure:"watch"`
}

// PythonConfig selects the interpreter whose site-packages receives
// installs.
type PythonConfig struct {
	Executable     string `yaml:"executable" mapstructure:"executable"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// RegistryConfig overrides where the installation registry lives.
type RegistryConfig struct {
	Location string `yaml:"location" mapstructure:"location"` // empty means ~/.nopkg/registry.txt
}

// WatchConfig tunes the dev-mode watch command.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Python: PythonConfig{
			Executable:     "python3",
			TimeoutSeconds: 30,
		},
		Registry: RegistryConfig{
			Location: "", // empty means use default ~/.nopkg/registry.txt
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}

// Load resolves the configuration from viper over the defaults. Viper must
// already have read its config file and environment.
func Load() (*Config, error) {
	cfg := Default()

	viper.SetDefault("python.executable", cfg.Python.Executable)
	viper.SetDefault("python.timeout_seconds", cfg.Python.TimeoutSeconds)
	viper.SetDefault("registry.location", cfg.Registry.Location)
	viper.SetDefault("watch.debounce_ms", cfg.Watch.DebounceMs)

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PythonTimeout returns the subprocess timeout as a duration.
func (c *Config) PythonTimeout() time.Duration {
	return time.Duration(c.Python.TimeoutSeconds) * time.Second
}

// WatchDebounce returns the watch debounce as a duration.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

// RegistryPath resolves the registry location, defaulting to
// ~/.nopkg/registry.txt.
func (c *Config) RegistryPath() (string, error) {
	if c.Registry.Location != "" {
		return c.Registry.Location, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nopkg", "registry.txt"), nil
}
