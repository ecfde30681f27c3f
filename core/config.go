// Package core holds shared configuration, errors, and small utility atoms
// used across the converter.
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration for the converter.
type Config struct {
	// InputDir is the directory scanned for crushed PNGs.
	InputDir string
	// OutputDir receives converted files, mirroring the input layout.
	// Empty means outputs are written next to their sources with a
	// "-normalized" suffix.
	OutputDir string

	// Watch enables the polling directory monitor instead of a one-shot
	// batch run.
	Watch         bool
	WatchInterval time.Duration

	// MaxConcurrent bounds how many files are converted in parallel.
	// Each conversion is independent; only the file count is bounded.
	MaxConcurrent int
	// MaxFileSize rejects inputs larger than this many bytes.
	MaxFileSize int64

	// HistoryEnabled turns on the SQLite conversion-history store.
	HistoryEnabled bool
	DatabasePath   string

	// Thumbnails turns on preview generation for converted files.
	Thumbnails    bool
	ThumbnailSize int

	LogFilePath string
	DevMode     bool
}

// Defaults for optional configuration values.
const (
	DefaultWatchIntervalSeconds = 5
	DefaultMaxConcurrent        = 4
	DefaultMaxFileSize          = 64 << 20 // 64 MiB
	DefaultThumbnailSize        = 256
	DefaultDatabasePath         = "pnguncrush.db"
	DefaultLogFilePath          = "pnguncrush.log"
)

// LoadConfig reads configuration from environment variables. Call
// godotenv.Load first if a .env file should participate.
func LoadConfig() *Config {
	return &Config{
		InputDir:       getEnvOrDefault("PNGUNCRUSH_INPUT_DIR", ""),
		OutputDir:      getEnvOrDefault("PNGUNCRUSH_OUTPUT_DIR", ""),
		Watch:          parseBoolEnv("PNGUNCRUSH_WATCH", false),
		WatchInterval:  parseDurationEnv("PNGUNCRUSH_WATCH_INTERVAL_SECONDS", DefaultWatchIntervalSeconds),
		MaxConcurrent:  parseIntEnv("PNGUNCRUSH_MAX_CONCURRENT", DefaultMaxConcurrent),
		MaxFileSize:    parseInt64Env("PNGUNCRUSH_MAX_FILE_SIZE", DefaultMaxFileSize),
		HistoryEnabled: parseBoolEnv("PNGUNCRUSH_HISTORY", false),
		DatabasePath:   getEnvOrDefault("PNGUNCRUSH_DATABASE_PATH", DefaultDatabasePath),
		Thumbnails:     parseBoolEnv("PNGUNCRUSH_THUMBNAILS", false),
		ThumbnailSize:  parseIntEnv("PNGUNCRUSH_THUMBNAIL_SIZE", DefaultThumbnailSize),
		LogFilePath:    getEnvOrDefault("PNGUNCRUSH_LOG_FILE", DefaultLogFilePath),
		DevMode:        parseBoolEnv("PNGUNCRUSH_DEV_MODE", false),
	}
}

// Validate checks the configuration for values that would make a run fail
// later, returning actionable ConfigErrors.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return ErrMissingInput()
	}
	info, err := os.Stat(c.InputDir)
	if err != nil || !info.IsDir() {
		return ErrInputNotADirectory(c.InputDir)
	}
	if c.MaxConcurrent < 1 {
		return ErrInvalidSetting("PNGUNCRUSH_MAX_CONCURRENT", fmt.Sprintf("%d", c.MaxConcurrent), "a positive integer")
	}
	if c.MaxFileSize < 1 {
		return ErrInvalidSetting("PNGUNCRUSH_MAX_FILE_SIZE", fmt.Sprintf("%d", c.MaxFileSize), "a positive byte count")
	}
	if c.Watch && c.WatchInterval < time.Second {
		return ErrInvalidSetting("PNGUNCRUSH_WATCH_INTERVAL_SECONDS", c.WatchInterval.String(), "at least one second")
	}
	if c.Thumbnails && c.ThumbnailSize < 16 {
		return ErrInvalidSetting("PNGUNCRUSH_THUMBNAIL_SIZE", fmt.Sprintf("%d", c.ThumbnailSize), "at least 16 pixels")
	}
	if c.HistoryEnabled && c.DatabasePath == "" {
		return ErrInvalidSetting("PNGUNCRUSH_DATABASE_PATH", "", "a writable file path")
	}
	if c.OutputDir != "" {
		if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
			return ErrInvalidSetting("PNGUNCRUSH_OUTPUT_DIR", c.OutputDir, "a creatable directory")
		}
	}
	return nil
}

// OutputPath maps a source file to its destination. With an output
// directory configured the input layout is mirrored; otherwise the output
// lands beside the source with a suffix so repeated runs never clobber
// originals.
func (c *Config) OutputPath(sourcePath string) string {
	if c.OutputDir == "" {
		ext := filepath.Ext(sourcePath)
		return strings.TrimSuffix(sourcePath, ext) + "-normalized" + ext
	}
	rel, err := filepath.Rel(c.InputDir, sourcePath)
	if err != nil {
		rel = filepath.Base(sourcePath)
	}
	return filepath.Join(c.OutputDir, rel)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func parseInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func parseDurationEnv(key string, defaultSeconds int) time.Duration {
	return time.Duration(parseIntEnv(key, defaultSeconds)) * time.Second
}
