// Package config holds the TOML configuration of the sixel command.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/cam-per/sixel/sixel"
)

var (
	ErrCellSize   = errors.New("config: cell size must be positive")
	ErrWindowSize = errors.New("config: window size must be positive")
	ErrMaxPixels  = errors.New("config: decoder max_pixels must be positive")
	ErrLogLevel   = errors.New("config: unknown log level")
)

type Config struct {
	Cell    Cell    `toml:"cell"`
	Window  Window  `toml:"window"`
	Decoder Decoder `toml:"decoder"`
	Log     Log     `toml:"log"`
}

// Cell is the pixel size of one grid cell.
type Cell struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Decoder struct {
	MaxPixels int `toml:"max_pixels"`
}

type Log struct {
	Development bool   `toml:"development"`
	Level       string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Cell:    Cell{Width: 10, Height: 20},
		Window:  Window{Width: 800, Height: 600, Title: "sixel"},
		Decoder: Decoder{MaxPixels: sixel.DefaultMaxPixels},
		Log:     Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	defer f.Close()

	if err := cfg.Decode(f); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r into cfg. Keys absent from the input keep their
// current values; unknown keys are rejected.
func (cfg *Config) Decode(r io.Reader) error {
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (cfg *Config) Validate() error {
	if cfg.Cell.Width <= 0 || cfg.Cell.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrCellSize, cfg.Cell.Width, cfg.Cell.Height)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrWindowSize, cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Decoder.MaxPixels <= 0 {
		return fmt.Errorf("%w: %d", ErrMaxPixels, cfg.Decoder.MaxPixels)
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrLogLevel, cfg.Log.Level)
	}
	return nil
}

// Encode writes cfg as TOML.
func (cfg *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}
