// Package config provides configuration management for mcpsync using Viper.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/mcpsync/mcpsync/internal/assistant"
	"github.com/mcpsync/mcpsync/internal/verify"
)

// AppName is the application name used for config file naming.
const AppName = "mcpsync"

// Config represents the top-level configuration structure.
type Config struct {
	Version           int                          `mapstructure:"version" yaml:"version"`
	DefaultAssistants []string                     `mapstructure:"default_assistants" yaml:"default_assistants"`
	VerifyTimeout     time.Duration                `mapstructure:"verify_timeout" yaml:"verify_timeout"`
	Assistants        map[string]AssistantOverride `mapstructure:"assistants" yaml:"assistants"`
}

// AssistantOverride contains configuration overrides for one assistant.
type AssistantOverride struct {
	// ConfigPath replaces the assistant's default config file location.
	ConfigPath string `mapstructure:"config_path" yaml:"config_path"`
}

// ConfigHome returns the directory searched for the config file.
func ConfigHome() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(ConfigHome())

	viper.SetEnvPrefix("MCPSYNC")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("default_assistants", assistant.Names())
	viper.SetDefault("verify_timeout", verify.DefaultTimeout)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// A path the user named must exist; the implicit search may not.
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
