// Package config loads the optional secretdefs.yaml project file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jaspreet-dot-casa/secretdefs/pkg/defines"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/envfile"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/environ"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/logging"
)

// DefaultFileName is the project config file looked up in the working directory.
const DefaultFileName = "secretdefs.yaml"

// DefaultHeader is where `secretdefs header` writes by default.
const DefaultHeader = "include/secrets_gen.h"

// Environment variables that override file settings.
const (
	EnvEnvFile  = "SECRETDEFS_ENV_FILE"
	EnvLogLevel = "SECRETDEFS_LOG_LEVEL"
)

// Config represents the secretdefs project configuration.
type Config struct {
	EnvFile  string `yaml:"env_file"`  // Dotenv path, default .env
	Format   string `yaml:"format"`    // Default output of `defines`
	Header   string `yaml:"header"`    // Output path of `header`
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		EnvFile:  envfile.DefaultName,
		Format:   string(defines.FormatFlags),
		Header:   DefaultHeader,
		LogLevel: logging.DefaultLevel,
	}
}

// Load reads the config at path, fills defaults and applies overrides from
// env. A missing file yields the defaults.
func Load(path string, env *environ.Env) (*Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if v, ok := env.Lookup(EnvEnvFile); ok && v != "" {
		cfg.EnvFile = v
	}
	levelSource := path
	if v, ok := env.Lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
		levelSource = EnvLogLevel
	}

	cfg.fillDefaults()
	if _, err := defines.ParseFormat(cfg.Format); err != nil {
		return nil, fmt.Errorf("invalid format in %s: %w", path, err)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log level from %s: %w", levelSource, err)
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := NewConfig()
	if c.EnvFile == "" {
		c.EnvFile = d.EnvFile
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.Header == "" {
		c.Header = d.Header
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}
