// File: config_test.go
// Title: Configuration Tests
// Description: Tests for default values, TOML loading and validation.
// Version: v0.1.0
// Created: 2025-02-10

package config

import (
	"os"
	"path/filepath"
	"testing"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Store.Driver != "memory" {
		t.Errorf("Store.Driver = %q, want memory", cfg.Store.Driver)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gdsh.toml")

	content := `
[store]
driver = "sqlite"
path = "/tmp/test-graph.db"

[log]
level = "debug"
format = "json"

[shell]
prompt = "graph"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Store.Driver != "sqlite" {
		t.Errorf("Store.Driver = %q, want sqlite", cfg.Store.Driver)
	}
	if cfg.Store.Path != "/tmp/test-graph.db" {
		t.Errorf("Store.Path = %q, want /tmp/test-graph.db", cfg.Store.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Shell.Prompt != "graph" {
		t.Errorf("Shell.Prompt = %q, want graph", cfg.Shell.Prompt)
	}

	// Unset sections keep their defaults
	if cfg.Server.Addr != ":9470" {
		t.Errorf("Server.Addr = %q, want default :9470", cfg.Server.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
	if !gdsherror.HasCode(err, gdsherror.CodeConfig) {
		t.Errorf("error code = %v, want %v", gdsherror.GetCode(err), gdsherror.CodeConfig)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid memory driver",
			mutate: func(c *Config) { c.Store.Driver = "memory" },
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Store.Driver = "etcd" },
			wantErr: true,
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Store.Driver = "sqlite"
				c.Store.Path = ""
			},
			wantErr: true,
		},
		{
			name: "remote without addr",
			mutate: func(c *Config) {
				c.Store.Driver = "remote"
				c.Store.Addr = ""
			},
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverFallsBackToDefaults(t *testing.T) {
	// Run discovery from an empty directory so no config file is found
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(old)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	// Home-based paths may exist on a developer machine; skip if so
	for _, p := range DiscoveryPaths() {
		if _, err := os.Stat(p); err == nil {
			t.Skipf("config file %s exists, skipping fallback test", p)
		}
	}

	cfg, err := Discover()
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("Store.Driver = %q, want default memory", cfg.Store.Driver)
	}
}
