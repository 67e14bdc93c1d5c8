package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout runs fn and returns everything it wrote to stdout.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fnErr := fn()
	w.Close()
	data, _ := io.ReadAll(r)
	return string(data), fnErr
}

func TestEmitJQ(t *testing.T) {
	input := map[string]any{
		"items": []any{
			map[string]any{"id": "a", "title": "first"},
			map[string]any{"id": "b", "title": "second"},
		},
	}

	out, err := captureStdout(t, func() error {
		return emitJQ(input, ".items[].id")
	})
	if err != nil {
		t.Fatalf("emitJQ: %v", err)
	}
	if out != "\"a\"\n\"b\"\n" {
		t.Errorf("output = %q", out)
	}
}

func TestEmitJQStructInput(t *testing.T) {
	type issue struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	out, err := captureStdout(t, func() error {
		return emitJQ([]issue{{ID: "i1", Title: "login broken"}}, ".[0].title")
	})
	if err != nil {
		t.Fatalf("emitJQ: %v", err)
	}
	if strings.TrimSpace(out) != `"login broken"` {
		t.Errorf("output = %q", out)
	}
}

func TestEmitJQInvalidExpression(t *testing.T) {
	if err := emitJQ(map[string]any{}, ".items[ bad"); err == nil {
		t.Error("expected parse error for malformed expression")
	}
}

func TestAppFlagsEmitJSON(t *testing.T) {
	app := &appFlags{jsonOut: true}
	out, err := captureStdout(t, func() error {
		handled, err := app.emit(map[string]string{"id": "x"})
		if !handled {
			t.Error("emit should handle -json output")
		}
		return err
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(out, `"id": "x"`) {
		t.Errorf("output = %q", out)
	}
}

func TestAppFlagsEmitDefaultUnhandled(t *testing.T) {
	app := &appFlags{}
	handled, err := app.emit(map[string]string{})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if handled {
		t.Error("emit should defer to table output when no format flag is set")
	}
}

func TestAppFlagsLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: https://desk.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	app := &appFlags{configPath: path}
	cfg, err := app.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.BaseURL != "https://desk.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}
