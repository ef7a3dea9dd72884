package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookctl", "config.yml")
}

// loadConfig reads path (or BOOKCTL_CONFIG, or DefaultPath) with BOOKCTL_*
// environment overrides. A missing file is not an error.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	v.SetDefault("api_url", "http://localhost:5191")
	v.SetDefault("timeout", "10s")

	v.SetEnvPrefix("BOOKCTL")
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("BOOKCTL_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("api_url is empty")
	}
	return &cfg, nil
}
