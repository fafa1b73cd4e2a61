// Package config loads the user settings shared by the plugin and the
// offline renderer.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/justyntemme/handysynth/pkg/framework/debug"
)

// Config is the persisted user configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error or off.
	LogLevel string `json:"log_level"`
	// LogFile, when set, receives log output instead of stderr.
	LogFile string `json:"log_file"`
	// WatchSoundfont reloads the bound soundfont when its file changes.
	WatchSoundfont bool `json:"watch_soundfont"`
	// SoundfontDir is where relative soundfont paths are resolved.
	SoundfontDir string `json:"soundfont_dir"`
	// ProfileBlocks times every audio block and warns on overruns.
	ProfileBlocks bool `json:"profile_blocks"`
}

func Default() *Config {
	return &Config{
		LogLevel:       "info",
		WatchSoundfont: false,
		ProfileBlocks:  true,
	}
}

// Path returns the default config location under the OS config directory.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "handysynth", "config.json"), nil
}

// Load reads the config at path. A missing file yields Default. Fields
// absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	c := Default()
	bt, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(bt, c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating its directory.
func Save(path string, c *Config) error {
	if c == nil {
		return errors.New("nil config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	bt, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bt, 0o600)
}

// Validate checks the values that have a fixed vocabulary.
func (c *Config) Validate() error {
	_, err := debug.ParseLevel(c.LogLevel)
	return err
}

// ResolveSoundfont joins relative paths onto SoundfontDir. Absolute and
// empty paths are returned unchanged.
func (c *Config) ResolveSoundfont(path string) string {
	if path == "" || filepath.IsAbs(path) || c.SoundfontDir == "" {
		return path
	}
	return filepath.Join(c.SoundfontDir, path)
}

// NewLogger builds the root logger the config describes. The closer is
// non-nil only when a log file was opened.
func (c *Config) NewLogger(prefix string) (*debug.Logger, io.Closer, error) {
	level, err := debug.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var (
		log    *debug.Logger
		closer io.Closer
	)
	if c.LogFile != "" {
		log, closer, err = debug.NewFileLogger(c.LogFile, prefix, debug.DefaultFlags)
		if err != nil {
			return nil, nil, err
		}
	} else {
		log = debug.New(os.Stderr, prefix, debug.DefaultFlags)
	}
	log.SetLevel(level)
	return log, closer, nil
}
