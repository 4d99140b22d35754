package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/sparkline/internal/config"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "sparkline")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Defaults.Width)
	assert.Nil(t, cfg.Defaults.Format)
	assert.Nil(t, cfg.Theme.Green)
	assert.Empty(t, cfg.ChartAttributes())
}

func TestLoad_FullConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
width = 240
height = 48
scale = 2.0
format = "svg"
interval = "250ms"
capacity = 120

[chart]
type = "bar"
lineWidth = 2
capAbove = true
lineCol = "#336699"
data = [1, 2.5, -3]

[theme]
green = "#00ff00"
red = "#ff0000"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.Width)
	assert.Equal(t, 240, *cfg.Defaults.Width)
	require.NotNil(t, cfg.Defaults.Height)
	assert.Equal(t, 48, *cfg.Defaults.Height)
	require.NotNil(t, cfg.Defaults.Scale)
	assert.InDelta(t, 2.0, *cfg.Defaults.Scale, 1e-12)
	require.NotNil(t, cfg.Defaults.Format)
	assert.Equal(t, "svg", *cfg.Defaults.Format)
	require.NotNil(t, cfg.Defaults.Interval)
	assert.Equal(t, "250ms", *cfg.Defaults.Interval)
	require.NotNil(t, cfg.Defaults.Capacity)
	assert.Equal(t, 120, *cfg.Defaults.Capacity)

	attrs := cfg.ChartAttributes()
	assert.Equal(t, "bar", attrs["type"])
	assert.Equal(t, "2", attrs["lineWidth"])
	assert.Equal(t, "true", attrs["capAbove"])
	assert.Equal(t, "#336699", attrs["lineCol"])
	assert.Equal(t, "1,2.5,-3", attrs["data"])

	require.NotNil(t, cfg.Theme.Green)
	assert.Equal(t, "#00ff00", *cfg.Theme.Green)
	require.NotNil(t, cfg.Theme.Red)
	assert.Equal(t, "#ff0000", *cfg.Theme.Red)

	// Unset fields should remain nil.
	assert.Nil(t, cfg.Theme.Blue)
	assert.Nil(t, cfg.Theme.Bright)
}

func TestLoad_PartialConfig(t *testing.T) {
	writeConfig(t, `
[theme]
bright = "#ffffff"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	// Defaults section entirely absent.
	assert.Nil(t, cfg.Defaults.Width)
	assert.Nil(t, cfg.Defaults.Interval)

	require.NotNil(t, cfg.Theme.Bright)
	assert.Equal(t, "#ffffff", *cfg.Theme.Bright)
}

func TestLoad_InvalidTOML(t *testing.T) {
	writeConfig(t, "invalid [[[")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Chart)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/sparkline/config.toml", config.Path())
}

func TestParseSet(t *testing.T) {
	got, err := config.ParseSet([]string{"type=bar", " lineWidth = 3", "type=line", "data=1,2,3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"type":      "line",
		"lineWidth": " 3",
		"data":      "1,2,3",
	}, got)

	_, err = config.ParseSet([]string{"novalue"})
	require.Error(t, err)
	_, err = config.ParseSet([]string{"=x"})
	require.Error(t, err)
}

func TestMerge(t *testing.T) {
	got := config.Merge(
		map[string]string{"lineCol": "#000000", "type": "line"},
		map[string]string{"LINECOL": "#ffffff"},
	)
	assert.Equal(t, map[string]string{"linecol": "#ffffff", "type": "line"}, got)
}
