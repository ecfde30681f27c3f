package core

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for the optional YAML config file. Pointer
// fields distinguish "absent" from zero values so the file only overrides
// what it sets.
type fileConfig struct {
	InputDir             *string `yaml:"input_dir"`
	OutputDir            *string `yaml:"output_dir"`
	Watch                *bool   `yaml:"watch"`
	WatchIntervalSeconds *int    `yaml:"watch_interval_seconds"`
	MaxConcurrent        *int    `yaml:"max_concurrent"`
	MaxFileSize          *int64  `yaml:"max_file_size"`
	History              *bool   `yaml:"history"`
	DatabasePath         *string `yaml:"database_path"`
	Thumbnails           *bool   `yaml:"thumbnails"`
	ThumbnailSize        *int    `yaml:"thumbnail_size"`
	LogFile              *string `yaml:"log_file"`
	DevMode              *bool   `yaml:"dev_mode"`
}

// ApplyConfigFile overlays settings from a YAML file onto c. A missing file
// is not an error; env and flags keep their values for anything the file
// leaves out.
func ApplyConfigFile(c *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.InputDir != nil {
		c.InputDir = *fc.InputDir
	}
	if fc.OutputDir != nil {
		c.OutputDir = *fc.OutputDir
	}
	if fc.Watch != nil {
		c.Watch = *fc.Watch
	}
	if fc.WatchIntervalSeconds != nil {
		c.WatchInterval = time.Duration(*fc.WatchIntervalSeconds) * time.Second
	}
	if fc.MaxConcurrent != nil {
		c.MaxConcurrent = *fc.MaxConcurrent
	}
	if fc.MaxFileSize != nil {
		c.MaxFileSize = *fc.MaxFileSize
	}
	if fc.History != nil {
		c.HistoryEnabled = *fc.History
	}
	if fc.DatabasePath != nil {
		c.DatabasePath = *fc.DatabasePath
	}
	if fc.Thumbnails != nil {
		c.Thumbnails = *fc.Thumbnails
	}
	if fc.ThumbnailSize != nil {
		c.ThumbnailSize = *fc.ThumbnailSize
	}
	if fc.LogFile != nil {
		c.LogFilePath = *fc.LogFile
	}
	if fc.DevMode != nil {
		c.DevMode = *fc.DevMode
	}
	return nil
}
