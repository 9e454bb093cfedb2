package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "claude", cfg.DefaultTarget)
	assert.True(t, cfg.History.Enabled)
	assert.NotEmpty(t, cfg.History.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().DefaultTarget, cfg.DefaultTarget)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `default_target: cursor
platforms:
  copilot:
    working_set_limit: 5
history:
  enabled: false
  path: /tmp/hist.db
logging:
  level: debug
  categories:
    detect: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cursor", cfg.DefaultTarget)
	assert.Equal(t, 5, cfg.Platforms["copilot"].WorkingSetLimit)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/hist.db", cfg.History.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_target: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("default target", func(t *testing.T) {
		t.Setenv("SKILLPORT_DEFAULT_TARGET", "copilot")
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "copilot", cfg.DefaultTarget)
	})

	t.Run("history disabled", func(t *testing.T) {
		t.Setenv("SKILLPORT_HISTORY_DISABLED", "true")
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.False(t, cfg.History.Enabled)
	})

	t.Run("history path", func(t *testing.T) {
		t.Setenv("SKILLPORT_HISTORY_PATH", "/tmp/custom.db")
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom.db", cfg.History.Path)
	})

	t.Run("env beats file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default_target: cursor\n"), 0o644))
		t.Setenv("SKILLPORT_DEFAULT_TARGET", "copilot")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "copilot", cfg.DefaultTarget)
	})

	t.Run("debug flag", func(t *testing.T) {
		t.Setenv("SKILLPORT_DEBUG", "1")
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.True(t, cfg.Logging.Debug)
	})
}

func TestWorkingSetLimit(t *testing.T) {
	cfg := Default()
	cfg.Platforms = map[string]PlatformConfig{
		"copilot": {WorkingSetLimit: 5},
		"cursor":  {WorkingSetLimit: -1},
	}

	assert.Equal(t, 5, cfg.WorkingSetLimit("copilot", 10), "override wins")
	assert.Equal(t, 0, cfg.WorkingSetLimit("cursor", 25), "-1 means unlimited")
	assert.Equal(t, 10, cfg.WorkingSetLimit("claude", 10), "unset keeps the builtin")
}

func TestLoggingCategories(t *testing.T) {
	lc := LoggingConfig{Level: "info"}
	assert.True(t, lc.IsCategoryEnabled("detect"), "categories default to enabled")

	lc.Categories = map[string]bool{"detect": false}
	assert.False(t, lc.IsCategoryEnabled("detect"))
	assert.True(t, lc.IsCategoryEnabled("convert"))
}
