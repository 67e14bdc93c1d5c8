// Package config loads deskctl configuration from a YAML file with
// environment-variable overrides, and can watch the file for changes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything deskctl needs to talk to a workdesk service.
type Config struct {
	// BaseURL is the service root, e.g. "https://deskd.example.com".
	BaseURL string `yaml:"base_url"`
	// Token is the bearer token used for API calls.
	Token string `yaml:"token"`
	// LiveEndpoint is the websocket event stream URL. Empty disables the
	// live subscriber.
	LiveEndpoint string `yaml:"live_endpoint"`

	// Timeout and the redis TTL are Go duration strings ("15s", "1h") in
	// YAML; parsed copies live in the *Duration fields.
	Timeout           string  `yaml:"timeout"`
	PageSize          int     `yaml:"page_size"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	Prefs PrefsConfig `yaml:"prefs"`

	TimeoutDuration time.Duration `yaml:"-"`
}

// PrefsConfig selects and configures the preference store backend.
type PrefsConfig struct {
	// Backend is "sqlite" or "redis". Empty means sqlite.
	Backend string `yaml:"backend"`
	// Path is the sqlite database file. Empty means a file under the
	// user config directory.
	Path string `yaml:"path"`

	RedisAddress  string `yaml:"redis_address"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisTTL      string `yaml:"redis_ttl"`

	RedisTTLDuration time.Duration `yaml:"-"`
}

// Default returns a Config with usable defaults for everything but
// BaseURL and Token.
func Default() Config {
	return Config{
		Timeout:           "15s",
		PageSize:          50,
		RequestsPerSecond: 10,
		Prefs:             PrefsConfig{Backend: "sqlite"},
	}
}

// DefaultPath returns the conventional config file location,
// e.g. ~/.config/workdesk/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "workdesk.yaml"
	}
	return filepath.Join(dir, "workdesk", "config.yaml")
}

// Load reads the YAML file at path, applies it over the defaults, then
// applies WORKDESK_* environment overrides. A missing file is not an
// error; env-only configuration is valid.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to env overrides.
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.finalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// finalize parses duration strings and checks for settings that would make
// the client unusable.
func (c *Config) finalize() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base_url is required (or set WORKDESK_BASE_URL)")
	}
	if c.PageSize < 0 {
		return fmt.Errorf("config: page_size must not be negative")
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("config: invalid timeout %q: %w", c.Timeout, err)
		}
		c.TimeoutDuration = d
	}

	switch c.Prefs.Backend {
	case "", "sqlite", "redis":
	default:
		return fmt.Errorf("config: unknown prefs backend %q", c.Prefs.Backend)
	}
	if c.Prefs.Backend == "redis" && c.Prefs.RedisAddress == "" {
		return fmt.Errorf("config: prefs backend redis requires redis_address")
	}
	if c.Prefs.RedisTTL != "" {
		d, err := time.ParseDuration(c.Prefs.RedisTTL)
		if err != nil {
			return fmt.Errorf("config: invalid redis_ttl %q: %w", c.Prefs.RedisTTL, err)
		}
		c.Prefs.RedisTTLDuration = d
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WORKDESK_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("WORKDESK_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("WORKDESK_LIVE_ENDPOINT"); v != "" {
		cfg.LiveEndpoint = v
	}
	if v := os.Getenv("WORKDESK_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
	if v := os.Getenv("WORKDESK_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
		}
	}
}
