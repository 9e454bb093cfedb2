// Package config holds skillport configuration: conversion defaults,
// per-platform capability overrides, and logging controls. Loaded once
// at startup from YAML with environment overrides applied on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all skillport configuration.
type Config struct {
	// DefaultTarget is the platform used when --to is omitted.
	DefaultTarget string `yaml:"default_target"`

	// Platforms overrides per-platform capabilities.
	Platforms map[string]PlatformConfig `yaml:"platforms"`

	// History configures the conversion-run ledger.
	History HistoryConfig `yaml:"history"`

	// Logging controls category logging.
	Logging LoggingConfig `yaml:"logging"`
}

// PlatformConfig overrides one platform's documented capabilities.
type PlatformConfig struct {
	// WorkingSetLimit caps simultaneous file references;
	// 0 keeps the built-in default, -1 means unlimited.
	WorkingSetLimit int `yaml:"working_set_limit"`
}

// HistoryConfig configures the sqlite run ledger.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultTarget: "claude",
		Platforms:     map[string]PlatformConfig{},
		History: HistoryConfig{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "skillport_history.db"
	}
	return filepath.Join(home, ".config", "skillport", "history.db")
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "skillport.yaml"
	}
	return filepath.Join(home, ".config", "skillport", "config.yaml")
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides layers SKILLPORT_* environment variables over the
// file configuration.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SKILLPORT_DEFAULT_TARGET"); v != "" {
		c.DefaultTarget = v
	}
	if v := os.Getenv("SKILLPORT_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("SKILLPORT_HISTORY_DISABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.History.Enabled = false
		}
	}
	if v := os.Getenv("SKILLPORT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SKILLPORT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.Debug = b
		}
	}
}

// WorkingSetLimit resolves the effective limit for a platform:
// user override first, then the engine default supplied by the caller.
func (c *Config) WorkingSetLimit(platform string, builtin int) int {
	pc, ok := c.Platforms[platform]
	if !ok || pc.WorkingSetLimit == 0 {
		return builtin
	}
	if pc.WorkingSetLimit < 0 {
		return 0
	}
	return pc.WorkingSetLimit
}
