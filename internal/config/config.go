package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "STAGECRAFT_CONFIG"

type Config struct {
	Loop    LoopConfig    `toml:"loop"`
	Logging LoggingConfig `toml:"logging"`
	Window  WindowConfig  `toml:"window"`
	Scene   SceneConfig   `toml:"scene"`
	Debug   DebugConfig   `toml:"debug"`
}

type LoopConfig struct {
	TickRate  time.Duration `toml:"tick_rate"`
	MaxFrames uint64        `toml:"max_frames"` // 0 runs until closed
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type SceneConfig struct {
	Paths []string `toml:"paths"`
}

type DebugConfig struct {
	Enabled         bool `toml:"enabled"`
	EntitiesPerPage int  `toml:"entities_per_page"`
	HistoryFrames   int  `toml:"history_frames"`
}

// Path returns the config path from the environment, or fallback.
func Path(fallback string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return fallback
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes data over the defaults. name is only used in errors.
func Parse(name string, data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("loop.tick_rate must be positive, got %s", c.Loop.TickRate)
	}
	if c.Loop.TickRate > time.Second {
		return fmt.Errorf("loop.tick_rate must be at most 1s, got %s", c.Loop.TickRate)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Loop: LoopConfig{
			TickRate: time.Second / 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "stagecraft",
		},
		Debug: DebugConfig{
			Enabled:         true,
			EntitiesPerPage: 100,
			HistoryFrames:   120,
		},
	}
}
