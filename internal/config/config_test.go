package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cam-per/sixel/sixel"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sixel.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, Cell{Width: 10, Height: 20}, cfg.Cell)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, sixel.DefaultMaxPixels, cfg.Decoder.MaxPixels)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[cell]
width = 8
height = 16

[window]
title = "preview"

[log]
development = true
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Cell{Width: 8, Height: 16}, cfg.Cell)
	assert.Equal(t, "preview", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, sixel.DefaultMaxPixels, cfg.Decoder.MaxPixels)
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[cell\nwidth = 8")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, "[cell]\ndepth = 3\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"zero cell", func(c *Config) { c.Cell.Width = 0 }, ErrCellSize},
		{"negative window", func(c *Config) { c.Window.Height = -1 }, ErrWindowSize},
		{"zero max pixels", func(c *Config) { c.Decoder.MaxPixels = 0 }, ErrMaxPixels},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, ErrLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.err)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Cell.Height = 24

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	assert.True(t, strings.Contains(buf.String(), "max_pixels"))

	got := Default()
	require.NoError(t, got.Decode(&buf))
	assert.Equal(t, cfg, got)
}
