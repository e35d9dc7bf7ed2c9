package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors the file-configurable part of Config, using strings
// for durations to make TOML friendly. Channel, baud rate and the file
// paths are positional arguments only and have no file counterpart.
type FileConfig struct {
	Bits       int      `toml:"bits"`
	All        *bool    `toml:"all"`
	TailLength *float64 `toml:"tail_length"`
	Watch      *bool    `toml:"watch"`
	Debounce   string   `toml:"debounce"`
	Verbose    *bool    `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.decode-serial/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".decode-serial", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt("bits", fc.Bits, &cfg.DataBits)
	s.setBool("all", fc.All, &cfg.AllFrames)
	s.setFloat("tail", fc.TailLength, &cfg.TailLength)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return s.setDuration("debounce", fc.Debounce, &cfg.Debounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
