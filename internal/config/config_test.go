package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TOMATO_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 25*time.Minute, cfg.Timer.Focus)
	require.Equal(t, 5*time.Minute, cfg.Timer.Break)
	require.Equal(t, filepath.Join(home, ".local", "share", "tomato", "tomato.db"), cfg.Database.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.UI.TrackFocus)
	require.NotEmpty(t, cfg.UI.Colors.Focus)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[timer]
focus = "50m"
break = "10m"

[ui]
track_focus = false

[ui.colors]
paused = "#ffff00"
`), 0o644))
	t.Setenv("HOME", dir)
	t.Setenv("TOMATO_CONFIG", path)
	t.Setenv("TOMATO_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 50*time.Minute, cfg.Timer.Focus)
	require.Equal(t, 10*time.Minute, cfg.Timer.Break)
	require.False(t, cfg.UI.TrackFocus)
	require.Equal(t, "#ffff00", cfg.UI.Colors.Paused)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsZeroLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[timer]\nbreak = \"0s\"\n"), 0o644))
	t.Setenv("HOME", dir)
	t.Setenv("TOMATO_CONFIG", path)

	_, err := Load()
	require.ErrorContains(t, err, "timer.break")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	t.Setenv("HOME", dir)
	t.Setenv("TOMATO_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Timer.Focus = 45 * time.Minute
	cfg.UI.Colors.Focus = "#0000ff"
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, 45*time.Minute, again.Timer.Focus)
	require.Equal(t, "#0000ff", again.UI.Colors.Focus)
}
