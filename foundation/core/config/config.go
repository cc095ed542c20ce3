// File: config.go
// Title: gdsh Configuration
// Description: Loads and validates the gdsh configuration from TOML
//              files with discovery over well-known locations and
//              sensible defaults for every section.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial TOML configuration with discovery

package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	gdshlog "github.com/msto63/gdsh/foundation/core/log"
)

// Config is the root configuration for gdsh
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	Shell  ShellConfig  `toml:"shell"`
}

// StoreConfig selects and configures the graph store backend
type StoreConfig struct {
	// Driver is one of "memory", "sqlite" or "remote"
	Driver string `toml:"driver"`

	// Path is the database file for the sqlite driver
	Path string `toml:"path"`

	// Addr is the websocket endpoint for the remote driver
	Addr string `toml:"addr"`
}

// ServerConfig configures the websocket store server (gdsh serve)
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig configures the logging subsystem
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ShellConfig configures the interactive shell
type ShellConfig struct {
	Prompt    string `toml:"prompt"`
	AliasFile string `toml:"alias_file"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: "memory",
			Path:   "gdsh.db",
			Addr:   "ws://localhost:9470/ws",
		},
		Server: ServerConfig{
			Addr: ":9470",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Shell: ShellConfig{
			Prompt: "gdsh",
		},
	}
}

// Load reads the configuration from a TOML file, layered over defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, gdsherror.Wrapf(err, "failed to load config file %s", path).
			WithCode(gdsherror.CodeConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DiscoveryPaths returns the locations probed by Discover, in order
func DiscoveryPaths() []string {
	paths := []string{
		"gdsh.toml",
		filepath.Join("configs", "gdsh.toml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "gdsh", "config.toml"),
			filepath.Join(home, ".gdsh.toml"),
		)
	}
	return paths
}

// Discover loads the first configuration file found in the well-known
// locations, or the defaults if none exists
func Discover() (*Config, error) {
	for _, path := range DiscoveryPaths() {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return gdsherror.New("store.path is required for the sqlite driver").
				WithCode(gdsherror.CodeConfig)
		}
	case "remote":
		if c.Store.Addr == "" {
			return gdsherror.New("store.addr is required for the remote driver").
				WithCode(gdsherror.CodeConfig)
		}
	default:
		return gdsherror.Newf("unknown store driver %q (may be memory, sqlite, remote)", c.Store.Driver).
			WithCode(gdsherror.CodeConfig)
	}

	if _, err := gdshlog.ParseLevel(c.Log.Level); err != nil {
		return gdsherror.Wrap(err, "invalid log.level").WithCode(gdsherror.CodeConfig)
	}

	if _, err := gdshlog.ParseFormat(c.Log.Format); err != nil {
		return gdsherror.Wrap(err, "invalid log.format").WithCode(gdsherror.CodeConfig)
	}

	return nil
}

// NewLogger builds a logger from the log section
func (c *Config) NewLogger() *gdshlog.Logger {
	level, _ := gdshlog.ParseLevel(c.Log.Level)
	format, _ := gdshlog.ParseFormat(c.Log.Format)

	return gdshlog.NewWithConfig(gdshlog.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
		Name:   "gdsh",
	})
}
