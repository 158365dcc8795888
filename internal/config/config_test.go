package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PROMPTSCOPE_HOME", dir)
	t.Setenv("PROMPTSCOPE_MODEL", "")
	t.Setenv("PROMPTSCOPE_CONTEXT_WINDOW", "")
	t.Setenv("PROMPTSCOPE_LOG_LEVEL", "")
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	withHome(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "claude-sonnet-4-5" {
		t.Fatalf("model = %q", cfg.Model)
	}
	if cfg.WindowRows != 8 {
		t.Fatalf("window_rows = %d", cfg.WindowRows)
	}
	if cfg.Encoding != "cl100k_base" {
		t.Fatalf("encoding = %q", cfg.Encoding)
	}
	if cfg.ContextWindow != 0 {
		t.Fatalf("context_window = %d", cfg.ContextWindow)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log_level = %q", cfg.LogLevel)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	dir := withHome(t)
	yaml := "model: gpt-4o\ncontext_window: 50000\nwindow_rows: 12\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gpt-4o" || cfg.ContextWindow != 50000 || cfg.WindowRows != 12 || cfg.LogLevel != "debug" {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := withHome(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("model: gpt-4o\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROMPTSCOPE_MODEL", "gemini-2.5-flash")
	t.Setenv("PROMPTSCOPE_CONTEXT_WINDOW", "123456")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Fatalf("model = %q", cfg.Model)
	}
	if cfg.ContextWindow != 123456 {
		t.Fatalf("context_window = %d", cfg.ContextWindow)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := withHome(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":\n\t- broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNormalize_ClampsBadValues(t *testing.T) {
	cfg := Config{ContextWindow: -5, WindowRows: -1}
	normalize(&cfg)
	if cfg.ContextWindow != 0 || cfg.WindowRows != 8 {
		t.Fatalf("got %+v", cfg)
	}
}
