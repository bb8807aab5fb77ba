package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse("test", []byte(`
[loop]
tick_rate = "20ms"
max_frames = 300

[logging]
format = "json"

[scene]
paths = ["scenes/solar.yaml"]

[debug]
enabled = false
`))
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, cfg.Loop.TickRate)
	assert.Equal(t, uint64(300), cfg.Loop.MaxFrames)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level, "unset keys keep defaults")
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, []string{"scenes/solar.yaml"}, cfg.Scene.Paths)
	assert.False(t, cfg.Debug.Enabled)
	assert.Equal(t, 100, cfg.Debug.EntitiesPerPage)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "[loop", "parse config"},
		{"tick rate", "[loop]\ntick_rate = \"0s\"", "loop.tick_rate must be positive"},
		{"slow tick rate", "[loop]\ntick_rate = \"2s\"", "loop.tick_rate must be at most 1s"},
		{"window", "[window]\nwidth = -1", "window size must be positive"},
		{"format", "[logging]\nformat = \"xml\"", "logging.format must be json or console"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test", []byte(tt.data))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"demo\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPathFromEnv(t *testing.T) {
	assert.Equal(t, "config/viewer.toml", Path("config/viewer.toml"))

	t.Setenv(EnvPath, "/etc/stagecraft.toml")
	assert.Equal(t, "/etc/stagecraft.toml", Path("config/viewer.toml"))
}
