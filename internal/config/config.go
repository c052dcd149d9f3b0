// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all service configuration. Timeouts are in seconds.
type Config struct {
	Listen         string   `toml:"listen"`
	UserAgent      string   `toml:"user_agent"`
	DefaultReferer string   `toml:"default_referer"`
	ExtractTimeout int      `toml:"extract_timeout"`
	ProxyTimeout   int      `toml:"proxy_timeout"`
	CacheTTL       int      `toml:"cache_ttl"`
	AllowedOrigins []string `toml:"allowed_origins"`
	OriginSuffixes []string `toml:"origin_suffixes"`
	Debug          bool     `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Listen:         ":8080",
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		DefaultReferer: "https://streamtape.com/",
		ExtractTimeout: 10,
		ProxyTimeout:   30,
		CacheTTL:       0,
		AllowedOrigins: []string{
			"https://unrulymovies.com",
			"https://www.unrulymovies.com",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		OriginSuffixes: []string{
			".pages.dev",
			".unrulymovies.com",
		},
		Debug: false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "streamgate"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "streamgate"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent cannot be empty")
	}
	if c.ExtractTimeout <= 0 {
		return fmt.Errorf("extract_timeout must be positive, got %d", c.ExtractTimeout)
	}
	if c.ProxyTimeout <= 0 {
		return fmt.Errorf("proxy_timeout must be positive, got %d", c.ProxyTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl cannot be negative, got %d", c.CacheTTL)
	}
	for _, suffix := range c.OriginSuffixes {
		if !strings.HasPrefix(suffix, ".") {
			return fmt.Errorf("origin suffix %q must start with a dot", suffix)
		}
	}
	return nil
}

// ExtractTimeoutDuration returns the extraction fetch deadline.
func (c *Config) ExtractTimeoutDuration() time.Duration {
	return time.Duration(c.ExtractTimeout) * time.Second
}

// ProxyTimeoutDuration returns the relay upstream header deadline.
func (c *Config) ProxyTimeoutDuration() time.Duration {
	return time.Duration(c.ProxyTimeout) * time.Second
}

// CacheTTLDuration returns the resolved-URL cache lifetime; zero disables
// the cache.
func (c *Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}
