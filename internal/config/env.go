package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvOutputDir = "QB_OUTPUT_DIR"
	EnvFPS       = "QB_FPS"
	EnvWidth     = "QB_WIDTH"
	EnvHeight    = "QB_HEIGHT"
	EnvWorkers   = "QB_WORKERS"
	EnvFont      = "QB_FONT"
	EnvLogLevel  = "QB_LOG_LEVEL"
)

// LoadEnv applies QB_* settings from the dotenv file at path and the process
// environment. Process variables win over the file; a missing file is not an
// error.
func (c *Config) LoadEnv(path string) error {
	vars := map[string]string{}
	if path != "" {
		file, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", path, err)
		}
		for k, v := range file {
			vars[k] = v
		}
	}
	for _, k := range []string{EnvOutputDir, EnvFPS, EnvWidth, EnvHeight, EnvWorkers, EnvFont, EnvLogLevel} {
		if v, ok := os.LookupEnv(k); ok {
			vars[k] = v
		}
	}
	return c.applyEnv(vars)
}

func (c *Config) applyEnv(vars map[string]string) error {
	if v := vars[EnvOutputDir]; v != "" {
		c.OutputDir = v
	}
	if v := vars[EnvFont]; v != "" {
		c.FontPath = v
	}
	if v := vars[EnvLogLevel]; v != "" {
		c.LogLevel = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvFPS, &c.FPS},
		{EnvWidth, &c.Width},
		{EnvHeight, &c.Height},
		{EnvWorkers, &c.Workers},
	}
	for _, it := range ints {
		v := vars[it.key]
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", it.key, v, err)
		}
		*it.dst = n
	}
	return nil
}
