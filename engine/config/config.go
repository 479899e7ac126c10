// Package config loads and saves the fireball TOML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-fireball/common"
	"github.com/Carmen-Shannon/oxy-fireball/engine/animator"
	"github.com/Carmen-Shannon/oxy-fireball/engine/logger"
	"github.com/Carmen-Shannon/oxy-fireball/engine/params"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file used when none is given on the command line.
const DefaultPath = "fireball.toml"

const (
	defaultTitle  = "oxy-fireball"
	defaultWidth  = 1280
	defaultHeight = 720
)

// Config is the full application configuration.
type Config struct {
	Window    WindowConfig    `toml:"window"`
	Engine    EngineConfig    `toml:"engine"`
	Log       logger.Config   `toml:"log"`
	Animation AnimationConfig `toml:"animation"`
	Controls  params.Controls `toml:"controls"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// EngineConfig holds frame loop settings.
type EngineConfig struct {
	Profiling    bool    `toml:"profiling"`
	FrameLimit   float64 `toml:"frame_limit"`
	SwapInterval int     `toml:"swap_interval"`
	Workers      int     `toml:"workers"`
	Seed         int64   `toml:"seed"`
}

// AnimationConfig holds the speed state machine timings, in frames, and the camera anchors.
type AnimationConfig struct {
	SpeedUpTimer      int        `toml:"speed_up_timer"`
	SpeedUpDuration   int        `toml:"speed_up_duration"`
	SpeedDownTimer    int        `toml:"speed_down_timer"`
	SpeedDownDuration int        `toml:"speed_down_duration"`
	SlowAnchor        [3]float32 `toml:"slow_anchor"`
	FastAnchor        [3]float32 `toml:"fast_anchor"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  defaultTitle,
			Width:  defaultWidth,
			Height: defaultHeight,
		},
		Engine: EngineConfig{
			FrameLimit:   0,
			SwapInterval: 1,
			Seed:         1,
		},
		Log: logger.Config{
			Environment: "development",
			Level:       "info",
			Encoding:    "console",
			ServiceName: "fireball",
		},
		Animation: AnimationConfig{
			SpeedUpTimer:      animator.DefaultSpeedUpTimer,
			SpeedUpDuration:   animator.DefaultSpeedUpDuration,
			SpeedDownTimer:    animator.DefaultSpeedDownTimer,
			SpeedDownDuration: animator.DefaultSpeedDownDuration,
			SlowAnchor:        [3]float32{0, 0, 6},
			FastAnchor:        [3]float32{0, 0, 4},
		},
		Controls: params.DefaultControls(),
	}
}

// Load reads the configuration at path on top of the defaults.
// A missing file is not an error and yields Default().
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file exists but cannot be read or parsed
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadControls reads only the controls section of the configuration at path.
// It satisfies params.LoadFunc.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - params.Controls: the controls
//   - error: error if the file cannot be read or parsed
func LoadControls(path string) (params.Controls, error) {
	cfg, err := Load(path)
	if err != nil {
		return params.Controls{}, err
	}
	return cfg.Controls, nil
}

// Decode reads TOML from r into cfg. Keys absent from the input keep the values already in cfg,
// and unknown keys are rejected.
//
// Parameters:
//   - r: the TOML source
//   - cfg: the configuration to decode into
//
// Returns:
//   - error: error if the input is malformed or carries unknown keys
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	cfg.fill()
	return nil
}

// Encode writes cfg as TOML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: error if encoding or writing fails
func (c Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}

// Save writes cfg to path, creating parent directories as needed.
//
// Parameters:
//   - path: the destination file
//
// Returns:
//   - error: error if the file cannot be written
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// fill replaces zero values that have no meaningful zero with their defaults.
func (c *Config) fill() {
	c.Window.Title = common.Coalesce(c.Window.Title, defaultTitle)
	c.Window.Width = common.Coalesce(c.Window.Width, defaultWidth)
	c.Window.Height = common.Coalesce(c.Window.Height, defaultHeight)
	c.Controls = c.Controls.Normalize()
}
