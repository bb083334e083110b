package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultDirFromXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := New("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, AppName), cfg.Dir)
	assert.Equal(t, DefaultSettings(), cfg.Settings)
}

func TestNew_ExplicitDir(t *testing.T) {
	dir := t.TempDir()

	cfg, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, filepath.Join(dir, "token.json"), cfg.TokenPath())
	assert.Equal(t, filepath.Join(dir, "oauth_client.json"), cfg.OAuthClientPath())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.SettingsPath())
}

func TestLoadSettings_MissingFileKeepsDefaults(t *testing.T) {
	cfg, _ := New(t.TempDir())

	require.NoError(t, cfg.LoadSettings())
	assert.Equal(t, DefaultSettings(), cfg.Settings)
}

func TestLoadSettings_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := `ui:
  title: Groceries
  accent: "#00AA00"
export:
  list: " Shopping "
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte(yaml), 0600))

	cfg, _ := New(dir)
	require.NoError(t, cfg.LoadSettings())

	assert.Equal(t, "Groceries", cfg.Settings.UI.Title)
	assert.Equal(t, "#00AA00", cfg.Settings.UI.Accent)
	assert.Equal(t, DefaultPlaceholder, cfg.Settings.UI.Placeholder)
	assert.Equal(t, "Shopping", cfg.Settings.Export.List)
	assert.Equal(t, "debug", cfg.Settings.Log.Level)
}

func TestTokenHelpers(t *testing.T) {
	cfg, _ := New(filepath.Join(t.TempDir(), "nested"))

	assert.False(t, cfg.HasToken())
	require.NoError(t, cfg.EnsureDir())
	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600))
	assert.True(t, cfg.HasToken())

	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
}
