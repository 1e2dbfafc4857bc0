package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/secretdefs/pkg/environ"
)

func TestLoad(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), DefaultFileName)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), DefaultFileName), environ.New())
		require.NoError(t, err)
		assert.Equal(t, NewConfig(), cfg)
		assert.Equal(t, ".env", cfg.EnvFile)
		assert.Equal(t, "flags", cfg.Format)
	})

	t.Run("reads values", func(t *testing.T) {
		path := writeConfig(t, `
env_file: secrets/lora.env
format: header
header: src/generated.h
log_level: debug
`)
		cfg, err := Load(path, environ.New())
		require.NoError(t, err)
		assert.Equal(t, "secrets/lora.env", cfg.EnvFile)
		assert.Equal(t, "header", cfg.Format)
		assert.Equal(t, "src/generated.h", cfg.Header)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, "format: json\n")
		cfg, err := Load(path, environ.New())
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, ".env", cfg.EnvFile)
		assert.Equal(t, DefaultHeader, cfg.Header)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "env_file: a.env\nlog_level: info\n")
		env := environ.FromList([]string{
			EnvEnvFile + "=b.env",
			EnvLogLevel + "=error",
		})
		cfg, err := Load(path, env)
		require.NoError(t, err)
		assert.Equal(t, "b.env", cfg.EnvFile)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("empty override is ignored", func(t *testing.T) {
		path := writeConfig(t, "env_file: a.env\n")
		cfg, err := Load(path, environ.FromList([]string{EnvEnvFile + "="}))
		require.NoError(t, err)
		assert.Equal(t, "a.env", cfg.EnvFile)
	})

	t.Run("unknown format", func(t *testing.T) {
		path := writeConfig(t, "format: toml\n")
		_, err := Load(path, environ.New())
		assert.ErrorContains(t, err, "unknown format")
	})

	t.Run("unknown log level", func(t *testing.T) {
		path := writeConfig(t, "log_level: chatty\n")
		_, err := Load(path, environ.New())
		assert.ErrorContains(t, err, "unknown log level")
	})

	t.Run("bad log level from environment names the variable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		_, err := Load(path, environ.FromList([]string{EnvLogLevel + "=loud"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvLogLevel)
		assert.NotContains(t, err.Error(), path)
	})

	t.Run("bad log level from file names the file", func(t *testing.T) {
		path := writeConfig(t, "log_level: loud\n")
		_, err := Load(path, environ.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
		assert.NotContains(t, err.Error(), EnvLogLevel)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "format: [unclosed\n")
		_, err := Load(path, environ.New())
		assert.ErrorContains(t, err, "failed to parse config file")
	})
}
