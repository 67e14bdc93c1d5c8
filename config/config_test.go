package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "base_url: https://desk.example.com\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://desk.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.TimeoutDuration != 15*time.Second {
		t.Errorf("TimeoutDuration = %v, want default 15s", cfg.TimeoutDuration)
	}
	if cfg.PageSize != 50 {
		t.Errorf("PageSize = %d, want default 50", cfg.PageSize)
	}
	if cfg.Prefs.Backend != "sqlite" {
		t.Errorf("Prefs.Backend = %q, want sqlite", cfg.Prefs.Backend)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
base_url: https://desk.example.com
token: tok-abc
live_endpoint: wss://desk.example.com/api/v1/events
timeout: 5s
page_size: 25
prefs:
  backend: redis
  redis_address: localhost:6379
  redis_ttl: 1h
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "tok-abc" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.TimeoutDuration != 5*time.Second {
		t.Errorf("TimeoutDuration = %v", cfg.TimeoutDuration)
	}
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d", cfg.PageSize)
	}
	if cfg.Prefs.Backend != "redis" || cfg.Prefs.RedisAddress != "localhost:6379" {
		t.Errorf("Prefs = %+v", cfg.Prefs)
	}
	if cfg.Prefs.RedisTTLDuration != time.Hour {
		t.Errorf("RedisTTLDuration = %v", cfg.Prefs.RedisTTLDuration)
	}
}

func TestLoadMissingFileEnvOnly(t *testing.T) {
	t.Setenv("WORKDESK_BASE_URL", "https://env.example.com")
	t.Setenv("WORKDESK_TOKEN", "env-tok")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Token != "env-tok" {
		t.Errorf("Token = %q", cfg.Token)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "base_url: https://file.example.com\npage_size: 10\n")
	t.Setenv("WORKDESK_BASE_URL", "https://env.example.com")
	t.Setenv("WORKDESK_PAGE_SIZE", "99")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q, want env override", cfg.BaseURL)
	}
	if cfg.PageSize != 99 {
		t.Errorf("PageSize = %d, want env override", cfg.PageSize)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(writeConfig(t, ": not yaml [")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Load(writeConfig(t, "page_size: 1\n")); err == nil {
		t.Error("expected missing base_url error")
	}
	if _, err := Load(writeConfig(t, "base_url: x\nprefs:\n  backend: bolt\n")); err == nil {
		t.Error("expected unknown backend error")
	}
	if _, err := Load(writeConfig(t, "base_url: x\nprefs:\n  backend: redis\n")); err == nil {
		t.Error("expected missing redis_address error")
	}
	if _, err := Load(writeConfig(t, "base_url: x\ntimeout: soon\n")); err == nil {
		t.Error("expected invalid timeout error")
	}
}
