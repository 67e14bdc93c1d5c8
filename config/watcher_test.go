package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcherDetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: https://a.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var got []Config
	w := NewWatcher(path, func(cfg Config) {
		mu.Lock()
		got = append(got, cfg)
		mu.Unlock()
	}, WithDebounce(20*time.Millisecond))

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("base_url: https://b.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) == 0 {
		t.Fatal("onChange never fired")
	}
	if got[0].BaseURL != "https://b.example.com" {
		t.Errorf("BaseURL = %q", got[0].BaseURL)
	}
}

func TestWatcherIgnoresInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: https://a.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	fired := 0
	w := NewWatcher(path, func(Config) {
		mu.Lock()
		fired++
		mu.Unlock()
	}, WithDebounce(20*time.Millisecond))

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	// A write that no longer parses must not fire onChange.
	if err := os.WriteFile(path, []byte(": bad yaml ["), 0o600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if fired != 0 {
		t.Errorf("onChange fired %d times for invalid config", fired)
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: https://a.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(path, func(Config) {})
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("first Stop: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}
