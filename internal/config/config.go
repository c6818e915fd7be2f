// Package config loads the optional hms.yaml configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted when flags are not given.
const (
	EnvConfig  = "HMS_CONFIG"
	EnvDataDir = "HMS_DATA_DIR"
)

// Config is the contents of hms.yaml.
type Config struct {
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
	Seed     Seed   `yaml:"seed"`
}

// Seed lists the first-run import files.
type Seed struct {
	Staff       string `yaml:"staff"`
	Patients    string `yaml:"patients"`
	Medications string `yaml:"medications"`
}

// Load reads the config file at path. An empty path falls back to
// $HMS_CONFIG; a missing file yields the zero Config. Relative seed paths
// are resolved against the config file's directory.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for _, p := range []*string{&cfg.DataDir, &cfg.Seed.Staff, &cfg.Seed.Patients, &cfg.Seed.Medications} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return cfg, nil
}

// ResolveDataDir picks the data directory: flag, then $HMS_DATA_DIR, then
// the config file, then ~/.hms.
func (c *Config) ResolveDataDir(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return env
	}
	if c.DataDir != "" {
		return c.DataDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hms")
}

// Level parses LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
