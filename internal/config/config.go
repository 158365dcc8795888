// Package config loads promptscope settings from the data directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings read from config.yaml plus environment
// overrides.
type Config struct {
	HomeDir string `yaml:"-"`

	// Model names the model whose context window the "% of window"
	// header is computed against.
	Model string `yaml:"model"`

	// ContextWindow overrides the per-model lookup when > 0.
	ContextWindow int `yaml:"context_window"`

	// WindowRows is the number of visible list rows in the overlay.
	WindowRows int `yaml:"window_rows"`

	// Encoding names the tiktoken encoding used for counting.
	Encoding string `yaml:"encoding"`

	LogLevel string `yaml:"log_level"`
}

// HomeDir returns the promptscope data directory: PROMPTSCOPE_HOME when
// set, otherwise ~/.promptscope.
func HomeDir() string {
	if override := os.Getenv("PROMPTSCOPE_HOME"); override != "" {
		return override
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".promptscope"
	}
	return filepath.Join(home, ".promptscope")
}

// ConfigPath returns the path to config.yaml within the given home
// directory.
func ConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}

func defaultConfig() Config {
	return Config{
		Model:      "claude-sonnet-4-5",
		WindowRows: 8,
		Encoding:   "cl100k_base",
		LogLevel:   "info",
	}
}

// Load reads config.yaml from the data directory, creating the
// directory when missing. A missing file yields the defaults.
func Load() (Config, error) {
	cfg := defaultConfig()
	cfg.HomeDir = HomeDir()

	if err := os.MkdirAll(cfg.HomeDir, 0o755); err != nil {
		return cfg, fmt.Errorf("create promptscope home: %w", err)
	}

	data, err := os.ReadFile(ConfigPath(cfg.HomeDir))
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config.yaml: %w", err)
		}
	} else if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config.yaml: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	normalize(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PROMPTSCOPE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PROMPTSCOPE_CONTEXT_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ContextWindow = n
		}
	}
	if v := os.Getenv("PROMPTSCOPE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func normalize(cfg *Config) {
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-5"
	}
	if cfg.ContextWindow < 0 {
		cfg.ContextWindow = 0
	}
	if cfg.WindowRows <= 0 {
		cfg.WindowRows = 8
	}
	if strings.TrimSpace(cfg.Encoding) == "" {
		cfg.Encoding = "cl100k_base"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
