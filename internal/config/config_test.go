package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/svgmirror/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
	if !cfg.Cascade {
		t.Error("Cascade should default to true")
	}
	if !cfg.PositionalInsert {
		t.Error("PositionalInsert should default to true")
	}
	if cfg.Render.Indent != DefaultIndent {
		t.Errorf("Render.Indent = %q, want %q", cfg.Render.Indent, DefaultIndent)
	}
	if cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultMetricsNamespace)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "C001") {
		t.Errorf("Load on empty dir = %v, want C001", err)
	}

	configJSON := `{
  "host": "svg-view",
  "viewBox": "0 0 10 10",
  "width": 120,
  "cascade": false,
  "render": {"pretty": true}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Host != "svg-view" {
		t.Errorf("Host = %q, want %q", cfg.Host, "svg-view")
	}
	if cfg.ViewBox != "0 0 10 10" {
		t.Errorf("ViewBox = %q, want %q", cfg.ViewBox, "0 0 10 10")
	}
	if cfg.Width != 120 {
		t.Errorf("Width = %v, want 120", cfg.Width)
	}
	if cfg.Height != 0 {
		t.Errorf("Height = %v, want 0", cfg.Height)
	}
	if cfg.Cascade {
		t.Error("Cascade should be false as configured")
	}
	if !cfg.PositionalInsert {
		t.Error("PositionalInsert should keep its default when absent")
	}
	if !cfg.Render.Pretty {
		t.Error("Render.Pretty should be true")
	}
	if cfg.Render.Indent != DefaultIndent {
		t.Errorf("Render.Indent = %q, want default", cfg.Render.Indent)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "C002") {
		t.Fatalf("Load = %v, want C002", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative width", func(c *Config) { c.Width = -1 }, true},
		{"negative height", func(c *Config) { c.Height = -5 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"bad host", func(c *Config) { c.Host = "svg html" }, true},
		{"warn level", func(c *Config) { c.LogLevel = "WARN" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.HasCode(err, "C003") {
				t.Errorf("Validate() = %v, want C003", err)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := New()
	cfg.LogLevel = "debug"
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	cfg.LogLevel = "error"
	if cfg.SlogLevel() != slog.LevelError {
		t.Errorf("SlogLevel() = %v, want error", cfg.SlogLevel())
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.ViewBox = "0 0 1 1"
	cfg.Height = 64
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("saved config should end with a newline")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.ViewBox != "0 0 1 1" || loaded.Height != 64 {
		t.Errorf("reloaded = %+v", loaded)
	}

	loaded.Width = 32
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if err := New().Save(); err == nil {
		t.Error("Save without a path should fail")
	}
}

func TestFindConfigDir(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := New().SaveTo(filepath.Join(root, ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	dir, err := FindConfigDir(nested)
	if err != nil {
		t.Fatalf("FindConfigDir error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if dir != want {
		t.Errorf("FindConfigDir = %q, want %q", dir, want)
	}

	cfg, err := LoadFromDir(nested)
	if err != nil {
		t.Fatalf("LoadFromDir error: %v", err)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want default", cfg.Host)
	}
}
