package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q, want :8080", cfg.Listen)
	}
	if cfg.ExtractTimeout != 10 {
		t.Errorf("ExtractTimeout = %d, want 10", cfg.ExtractTimeout)
	}
	if cfg.ProxyTimeout != 30 {
		t.Errorf("ProxyTimeout = %d, want 30", cfg.ProxyTimeout)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %d, want 0 (disabled)", cfg.CacheTTL)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Listen != Default().Listen {
		t.Errorf("Listen = %q, want default", cfg.Listen)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	content := `
listen = ":9090"
extract_timeout = 5
cache_ttl = 60
allowed_origins = ["https://example.com"]
`
	if err := os.MkdirAll(filepath.Join(dir, "streamgate"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "streamgate", "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Listen != ":9090" {
		t.Errorf("Listen = %q, want :9090", cfg.Listen)
	}
	if cfg.ExtractTimeout != 5 {
		t.Errorf("ExtractTimeout = %d, want 5", cfg.ExtractTimeout)
	}
	if cfg.CacheTTL != 60 {
		t.Errorf("CacheTTL = %d, want 60", cfg.CacheTTL)
	}
	// Untouched keys keep their defaults.
	if cfg.ProxyTimeout != 30 {
		t.Errorf("ProxyTimeout = %d, want default 30", cfg.ProxyTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty listen", func(c *Config) { c.Listen = "" }, true},
		{"empty user agent", func(c *Config) { c.UserAgent = "" }, true},
		{"zero extract timeout", func(c *Config) { c.ExtractTimeout = 0 }, true},
		{"negative proxy timeout", func(c *Config) { c.ProxyTimeout = -1 }, true},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -5 }, true},
		{"suffix without dot", func(c *Config) { c.OriginSuffixes = []string{"pages.dev"} }, true},
		{"cache enabled", func(c *Config) { c.CacheTTL = 120 }, false},
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
