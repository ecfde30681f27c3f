package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PNGUNCRUSH_INPUT_DIR", "PNGUNCRUSH_OUTPUT_DIR", "PNGUNCRUSH_WATCH",
		"PNGUNCRUSH_WATCH_INTERVAL_SECONDS", "PNGUNCRUSH_MAX_CONCURRENT",
		"PNGUNCRUSH_MAX_FILE_SIZE", "PNGUNCRUSH_HISTORY", "PNGUNCRUSH_THUMBNAILS",
	} {
		os.Unsetenv(key)
	}

	cfg := LoadConfig()
	if cfg.MaxConcurrent != DefaultMaxConcurrent {
		t.Errorf("MaxConcurrent = %d, want %d", cfg.MaxConcurrent, DefaultMaxConcurrent)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("MaxFileSize = %d, want %d", cfg.MaxFileSize, DefaultMaxFileSize)
	}
	if cfg.WatchInterval != DefaultWatchIntervalSeconds*time.Second {
		t.Errorf("WatchInterval = %v, want %ds", cfg.WatchInterval, DefaultWatchIntervalSeconds)
	}
	if cfg.Watch || cfg.HistoryEnabled || cfg.Thumbnails {
		t.Error("optional features enabled by default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	setenv := func(key, value string) {
		t.Setenv(key, value)
	}
	setenv("PNGUNCRUSH_INPUT_DIR", "/tmp/in")
	setenv("PNGUNCRUSH_OUTPUT_DIR", "/tmp/out")
	setenv("PNGUNCRUSH_WATCH", "yes")
	setenv("PNGUNCRUSH_WATCH_INTERVAL_SECONDS", "30")
	setenv("PNGUNCRUSH_MAX_CONCURRENT", "8")
	setenv("PNGUNCRUSH_MAX_FILE_SIZE", "1024")
	setenv("PNGUNCRUSH_HISTORY", "on")

	cfg := LoadConfig()
	if cfg.InputDir != "/tmp/in" || cfg.OutputDir != "/tmp/out" {
		t.Errorf("dirs = %q, %q", cfg.InputDir, cfg.OutputDir)
	}
	if !cfg.Watch {
		t.Error("Watch = false, want true")
	}
	if cfg.WatchInterval != 30*time.Second {
		t.Errorf("WatchInterval = %v, want 30s", cfg.WatchInterval)
	}
	if cfg.MaxConcurrent != 8 {
		t.Errorf("MaxConcurrent = %d, want 8", cfg.MaxConcurrent)
	}
	if cfg.MaxFileSize != 1024 {
		t.Errorf("MaxFileSize = %d, want 1024", cfg.MaxFileSize)
	}
	if !cfg.HistoryEnabled {
		t.Error("HistoryEnabled = false, want true")
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue bool
		want         bool
	}{
		{value: "true", want: true},
		{value: "1", want: true},
		{value: "YES", want: true},
		{value: " on ", want: true},
		{value: "false", defaultValue: true, want: false},
		{value: "0", defaultValue: true, want: false},
		{value: "nonsense", defaultValue: true, want: true},
		{value: "", defaultValue: true, want: true},
		{value: "", defaultValue: false, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("PNGUNCRUSH_TEST_BOOL", tt.value)
			if got := parseBoolEnv("PNGUNCRUSH_TEST_BOOL", tt.defaultValue); got != tt.want {
				t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	inputDir := t.TempDir()

	base := func() *Config {
		return &Config{
			InputDir:      inputDir,
			MaxConcurrent: 2,
			MaxFileSize:   1 << 20,
			WatchInterval: 5 * time.Second,
			ThumbnailSize: 128,
			DatabasePath:  "x.db",
		}
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{name: "valid", mutate: func(c *Config) {}, wantCode: ""},
		{name: "missing input", mutate: func(c *Config) { c.InputDir = "" }, wantCode: ErrCodeMissingInput},
		{name: "input not a dir", mutate: func(c *Config) { c.InputDir = filepath.Join(inputDir, "nope") }, wantCode: ErrCodeBadInput},
		{name: "zero workers", mutate: func(c *Config) { c.MaxConcurrent = 0 }, wantCode: ErrCodeInvalidSetting},
		{name: "negative file size", mutate: func(c *Config) { c.MaxFileSize = -1 }, wantCode: ErrCodeInvalidSetting},
		{name: "sub-second watch interval", mutate: func(c *Config) {
			c.Watch = true
			c.WatchInterval = 100 * time.Millisecond
		}, wantCode: ErrCodeInvalidSetting},
		{name: "tiny thumbnails", mutate: func(c *Config) {
			c.Thumbnails = true
			c.ThumbnailSize = 4
		}, wantCode: ErrCodeInvalidSetting},
		{name: "history without db path", mutate: func(c *Config) {
			c.HistoryEnabled = true
			c.DatabasePath = ""
		}, wantCode: ErrCodeInvalidSetting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			ce, ok := AsConfigError(err)
			if !ok {
				t.Fatalf("Validate() error = %v, want *ConfigError", err)
			}
			if ce.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", ce.Code, tt.wantCode)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		source string
		want   string
	}{
		{
			name:   "suffix next to source",
			cfg:    Config{},
			source: filepath.Join("assets", "icon.png"),
			want:   filepath.Join("assets", "icon-normalized.png"),
		},
		{
			name:   "mirrored under output dir",
			cfg:    Config{InputDir: "in", OutputDir: "out"},
			source: filepath.Join("in", "sub", "icon.png"),
			want:   filepath.Join("out", "sub", "icon.png"),
		},
		{
			name:   "unrelated source falls back to base name",
			cfg:    Config{InputDir: filepath.Join(string(filepath.Separator), "a"), OutputDir: "out"},
			source: "icon.png",
			want:   filepath.Join("out", "icon.png"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.OutputPath(tt.source); got != tt.want {
				t.Errorf("OutputPath(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}
