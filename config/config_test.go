package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NATS.URL == "" {
		t.Error("default NATS URL should not be empty")
	}
	if cfg.NATS.Stream != "ESTATE" {
		t.Errorf("default stream = %q, want ESTATE", cfg.NATS.Stream)
	}
	if !cfg.HTTP.Enabled {
		t.Error("HTTP should be enabled by default")
	}
	if !cfg.Storage.Enabled {
		t.Error("storage should be enabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing NATS URL",
			mutate:  func(c *Config) { c.NATS.URL = "" },
			wantErr: true,
		},
		{
			name:    "missing stream",
			mutate:  func(c *Config) { c.NATS.Stream = "" },
			wantErr: true,
		},
		{
			name: "http enabled without prefix",
			mutate: func(c *Config) {
				c.HTTP.Enabled = true
				c.HTTP.Prefix = ""
			},
			wantErr: true,
		},
		{
			name: "watch without path",
			mutate: func(c *Config) {
				c.Catalog.Watch = true
				c.Catalog.Path = ""
			},
			wantErr: true,
		},
		{
			name: "watch with path",
			mutate: func(c *Config) {
				c.Catalog.Watch = true
				c.Catalog.Path = "catalog.yaml"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faraid.yaml")

	content := `nats:
  url: nats://example:4222
catalog:
  path: /etc/faraid/catalog.yaml
  watch: true
http:
  enabled: true
  prefix: api/estate
storage:
  enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.NATS.URL != "nats://example:4222" {
		t.Errorf("nats.url = %q", cfg.NATS.URL)
	}
	// Unset fields keep their defaults.
	if cfg.NATS.Stream != "ESTATE" {
		t.Errorf("nats.stream = %q, want default ESTATE", cfg.NATS.Stream)
	}
	if cfg.Catalog.Path != "/etc/faraid/catalog.yaml" {
		t.Errorf("catalog.path = %q", cfg.Catalog.Path)
	}
	if !cfg.Catalog.Watch {
		t.Error("catalog.watch should be true")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()

	override := DefaultConfig()
	override.NATS.URL = "nats://override:4222"
	override.Catalog.Path = "rules.yaml"
	override.Catalog.Watch = true
	override.Storage.Enabled = false

	base.Merge(override)

	if base.NATS.URL != "nats://override:4222" {
		t.Errorf("nats.url = %q", base.NATS.URL)
	}
	if base.Catalog.Path != "rules.yaml" {
		t.Errorf("catalog.path = %q", base.Catalog.Path)
	}
	if !base.Catalog.Watch {
		t.Error("catalog.watch should carry over with the path")
	}
	if base.Storage.Enabled {
		t.Error("storage.enabled should be overridden to false")
	}
}

func TestMergeNil(t *testing.T) {
	base := DefaultConfig()
	base.Merge(nil)
	if err := base.Validate(); err != nil {
		t.Errorf("merge nil changed config validity: %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.NATS.URL = "nats://saved:4222"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.NATS.URL != "nats://saved:4222" {
		t.Errorf("nats.url = %q after reload", loaded.NATS.URL)
	}
}
