// Package config loads the optional controls.yaml next to a markup file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "controls.yaml"

// Config represents the optional controls.yaml configuration.
type Config struct {
	Log LogConfig `yaml:"log"`
	TUI TUIConfig `yaml:"tui"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// TUIConfig controls the terminal session.
type TUIConfig struct {
	AltScreen *bool `yaml:"alt_screen,omitempty"`
	Mouse     *bool `yaml:"mouse,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root      string
	LogLevel  string
	LogFile   string
	AltScreen bool
	Mouse     bool
}

// LoadOptional reads controls.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads controls.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	level := strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if level != "" {
		if _, err := zapcore.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("invalid log level %q in %s", cfg.Log.Level, FileName)
		}
	}

	// Terminal sessions own stderr, so logs default to a file.
	logFile := strings.TrimSpace(cfg.Log.File)
	if logFile == "" {
		logFile = "controls.log"
	}
	if !filepath.IsAbs(logFile) {
		logFile = filepath.Join(dir, logFile)
	}

	return &Resolved{
		Root:      dir,
		LogLevel:  level,
		LogFile:   logFile,
		AltScreen: boolOr(cfg.TUI.AltScreen, true),
		Mouse:     boolOr(cfg.TUI.Mouse, true),
	}, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
