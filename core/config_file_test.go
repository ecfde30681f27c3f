package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pnguncrush.yaml")
	content := `
input_dir: /assets/crushed
watch: true
watch_interval_seconds: 12
max_concurrent: 16
thumbnails: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg := &Config{
		InputDir:      "from-env",
		OutputDir:     "keep-me",
		MaxConcurrent: 4,
		ThumbnailSize: 256,
	}
	if err := ApplyConfigFile(cfg, path); err != nil {
		t.Fatalf("ApplyConfigFile() error = %v", err)
	}

	if cfg.InputDir != "/assets/crushed" {
		t.Errorf("InputDir = %q, want overridden value", cfg.InputDir)
	}
	if !cfg.Watch {
		t.Error("Watch = false, want true")
	}
	if cfg.WatchInterval != 12*time.Second {
		t.Errorf("WatchInterval = %v, want 12s", cfg.WatchInterval)
	}
	if cfg.MaxConcurrent != 16 {
		t.Errorf("MaxConcurrent = %d, want 16", cfg.MaxConcurrent)
	}
	if !cfg.Thumbnails {
		t.Error("Thumbnails = false, want true")
	}
	// Values the file does not mention stay untouched.
	if cfg.OutputDir != "keep-me" {
		t.Errorf("OutputDir = %q, want keep-me", cfg.OutputDir)
	}
	if cfg.ThumbnailSize != 256 {
		t.Errorf("ThumbnailSize = %d, want 256", cfg.ThumbnailSize)
	}
}

func TestApplyConfigFileMissing(t *testing.T) {
	cfg := &Config{InputDir: "unchanged"}
	if err := ApplyConfigFile(cfg, filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("ApplyConfigFile() error = %v for a missing file", err)
	}
	if cfg.InputDir != "unchanged" {
		t.Errorf("InputDir = %q, want unchanged", cfg.InputDir)
	}
}

func TestApplyConfigFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("input_dir: [not: closed"), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	if err := ApplyConfigFile(&Config{}, path); err == nil {
		t.Error("ApplyConfigFile() accepted malformed YAML")
	}
}
