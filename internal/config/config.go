// Package config holds the run settings assembled from defaults, the
// environment (.env) and command line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

var (
	ErrInvalidSize   = errors.New("invalid frame size")
	ErrInvalidFPS    = errors.New("invalid frame rate")
	ErrInvalidRange  = errors.New("invalid time range")
	ErrInvalidFormat = errors.New("invalid output format")
	ErrUnknownPreset = errors.New("unknown preset")
)

type Config struct {
	OutputPath string
	OutputDir  string
	Format     string // mp4, avi or png
	Width      int
	Height     int
	FPS        int
	Workers    int // 0 picks a value from the host
	Preset     string

	VideoEncoder  string
	Quality       int
	AudioPath     string
	AudioDuration float64

	FontPath   string
	ScriptPath string // YAML timeline replacing the built-in one
	DumpScript string // write the active timeline here
	PlotPath   string
	Preview    bool
	QRContent  string

	From, To float64 // render only [From, To); To == 0 means the end

	ShowStats    bool
	Debug        bool // in-process clock overlay
	Timestamp    bool // ffmpeg drawtext clock, mp4 only
	LogFile      string
	LogLevel     string
	BuildVersion string
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		OutputDir: "output",
		Format:    "mp4",
		Width:     1280,
		Height:    720,
		FPS:       30,
	}
}

// presets map a name to a frame size.
var presets = map[string][2]int{
	"16:9":  {1280, 720},
	"9:16":  {720, 1280}, // Shorts/TikTok
	"4:5":   {1080, 1350},
	"1080p": {1920, 1080},
}

// ApplyPreset replaces the frame size with the named preset. An empty name
// keeps the current size.
func (c *Config) ApplyPreset(name string) error {
	if name == "" {
		return nil
	}
	size, ok := presets[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	c.Preset = name
	c.Width, c.Height = size[0], size[1]
	return nil
}

// Validate checks the settings before any work starts.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	// yuv420p needs even dimensions
	if c.Format == "mp4" && (c.Width%2 != 0 || c.Height%2 != 0) {
		return fmt.Errorf("%w: %dx%d must be even for mp4", ErrInvalidSize, c.Width, c.Height)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("%w: %d", ErrInvalidFPS, c.FPS)
	}
	if c.From < 0 || c.To < 0 || (c.To > 0 && c.To <= c.From) {
		return fmt.Errorf("%w: [%g, %g)", ErrInvalidRange, c.From, c.To)
	}
	switch c.Format {
	case "mp4", "avi", "png":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	return nil
}

// DefaultQuality is a sensible quality setting for an encoder.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // bitrate = Q*100 kbit/s
	case "h264_nvenc":
		return 28 // CRF equivalent for NVENC
	case "mjpeg":
		return 90
	default:
		return 23 // x264 CRF
	}
}

// OutputName builds a timestamped output path inside OutputDir. PNG output
// names a directory of frames.
func (c *Config) OutputName(now time.Time) string {
	name := "quantum_beats_" + now.Format("2006-01-02_15-04-05")
	if c.Format != "png" {
		name += "." + c.Format
	}
	return filepath.Join(c.OutputDir, name)
}
