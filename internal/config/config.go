// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists the console configuration. Precedence is
// flags > environment (PANELDIR_*) > config file > defaults, wired through
// viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the full console configuration.
type Config struct {
	Server   ServerConfig `mapstructure:"server" yaml:"server"`
	Language string       `mapstructure:"language" yaml:"language"`
	Debug    bool         `mapstructure:"debug" yaml:"debug"`
	LogFile  string       `mapstructure:"log_file" yaml:"log_file,omitempty"`
}

// ServerConfig describes how to reach the panel's directory API.
type ServerConfig struct {
	URL   string `mapstructure:"url" yaml:"url"`
	Token string `mapstructure:"token" yaml:"token,omitempty"`
}

// Defaults returns the settings used before any file, env or flag applies.
func Defaults() map[string]any {
	return map[string]any{
		"server.url": "http://127.0.0.1:8080",
		"language":   "en",
		"debug":      false,
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Paneldir")
		default:
			configDir = "/etc/paneldir"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "paneldir")
	}

	return filepath.Join(configDir, "paneldir.yaml"), nil
}

// Load resolves the configuration for cmd. An explicit config file path (from
// the --config flag) takes precedence over the standard search locations.
func Load(cmd *cobra.Command, explicitPath string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("paneldir")
	v.SetConfigType("yaml")

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine on first run; anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("paneldir")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// Write persists c to the user (or system) config location, creating the
// directory when needed. The file is 0600 because it may hold the API token.
func Write(c *Config, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0600)
}
