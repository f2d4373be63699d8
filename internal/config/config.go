package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	UI          UIConfig          `mapstructure:"ui"`
	History     HistoryConfig     `mapstructure:"history"`
	Secrets     SecretsConfig     `mapstructure:"secrets"`
	Performance PerformanceConfig `mapstructure:"performance"`
}

type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type SecretsConfig struct {
	UseKeyring bool `mapstructure:"use_keyring"`
}

type PerformanceConfig struct {
	PoolSize         int `mapstructure:"pool_size"`
	ConnectTimeoutMS int `mapstructure:"connect_timeout_ms"`
	QueryTimeoutMS   int `mapstructure:"query_timeout_ms"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme: "default",
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Secrets: SecretsConfig{
			UseKeyring: false,
		},
		Performance: PerformanceConfig{
			PoolSize:         5,
			ConnectTimeoutMS: 10000,
			QueryTimeoutMS:   30000,
		},
	}
}

// Load reads config.yaml from the user config directory or the working
// directory. A missing file is fine; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "dbgrip"))
	}
	v.AddConfigPath(".")

	v.SetDefault("ui.theme", "default")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")
	v.SetDefault("secrets.use_keyring", false)
	v.SetDefault("performance.pool_size", 5)
	v.SetDefault("performance.connect_timeout_ms", 10000)
	v.SetDefault("performance.query_timeout_ms", 30000)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// HistoryPath resolves the history database location, defaulting to
// history.db under the user config directory.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "dbgrip")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
