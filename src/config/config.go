package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fn-peaks/src/helpers"
	"fn-peaks/src/models"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Defaults applied to fields left empty in the config file.
const (
	DefaultMaxSpanDays     = 60
	DefaultWorkers         = 1
	DefaultUnit            = "%"
	DefaultTimeLayout      = "01/02/2006 15:04:05"
	DefaultTimezone        = "UTC"
	DefaultRetentionDays   = 30
	DefaultMemoryRuns      = 100
	DefaultRefreshInterval = 300
	DefaultRefreshSpanDays = 1

	// AutoWorkers sizes the pool from CPU and memory.
	AutoWorkers = -1
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig loads a YAML or TOML file depending on its extension.
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Decode into the models struct
	var modelConfig models.MConfig
	if isTOML(configPath) {
		if _, err := toml.Decode(string(data), &modelConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config from TOML: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &modelConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
		}
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "none"
	}
	if c.Storage.RetentionDays == 0 {
		c.Storage.RetentionDays = DefaultRetentionDays
	}
	if c.Storage.MemoryRuns == 0 {
		c.Storage.MemoryRuns = DefaultMemoryRuns
	}

	agg := &c.Aggregation
	if agg.MaxSpanDays == 0 {
		agg.MaxSpanDays = DefaultMaxSpanDays
	}
	if agg.Workers == 0 {
		agg.Workers = DefaultWorkers
	}
	if agg.Workers == AutoWorkers {
		agg.Workers = helpers.RecommendedWorkers()
	}
	if agg.Unit == "" {
		agg.Unit = DefaultUnit
	}
	if agg.TimeLayout == "" {
		agg.TimeLayout = DefaultTimeLayout
	}
	if agg.Timezone == "" {
		agg.Timezone = DefaultTimezone
	}

	for i := range c.Channels {
		if c.Channels[i].Label == "" {
			c.Channels[i].Label = c.Channels[i].Name
		}
	}

	if c.Refresh.IntervalSeconds == 0 {
		c.Refresh.IntervalSeconds = DefaultRefreshInterval
	}
	if c.Refresh.SpanDays == 0 {
		c.Refresh.SpanDays = DefaultRefreshSpanDays
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Server
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort != 0 && (c.GrpcPort <= 1024 || c.GrpcPort > 65535) {
		return fmt.Errorf("invalid grpc port number: %d (must be between 1025 and 65535)", c.GrpcPort)
	}

	// Storage
	switch c.Storage.DBType {
	case "none", "memory":
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("database connection string cannot be empty for postgres")
		}
	default:
		return fmt.Errorf("unknown database type: %s", c.Storage.DBType)
	}
	if c.Storage.RetentionDays < 0 {
		return fmt.Errorf("retention days cannot be negative")
	}

	// Aggregation
	if c.Aggregation.MaxSpanDays < 1 {
		return fmt.Errorf("max span days must be at least 1")
	}
	if c.Aggregation.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if _, err := time.LoadLocation(c.Aggregation.Timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Aggregation.Timezone, err)
	}

	// Channels
	if len(c.Channels) != 2 {
		return fmt.Errorf("exactly two channels must be configured, got %d", len(c.Channels))
	}
	seen := make(map[string]struct{}, len(c.Channels))
	for i, ch := range c.Channels {
		if ch.Name == "" {
			return fmt.Errorf("channel %d must have a name", i)
		}
		if ch.Root == "" {
			return fmt.Errorf("channel '%s' must have a root path", ch.Name)
		}
		if _, dup := seen[ch.Name]; dup {
			return fmt.Errorf("duplicate channel name '%s'", ch.Name)
		}
		seen[ch.Name] = struct{}{}
	}

	// Refresh
	if c.Refresh.Enabled {
		if c.Refresh.IntervalSeconds <= 0 {
			return fmt.Errorf("refresh interval must be greater than 0")
		}
		if c.Refresh.SpanDays < 1 || c.Refresh.SpanDays > c.Aggregation.MaxSpanDays {
			return fmt.Errorf("refresh span days must be between 1 and %d", c.Aggregation.MaxSpanDays)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Location returns the timezone day directories are computed in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Aggregation.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// -----------------------------------------------------------------------------

// Save persists the current configuration, in TOML when the path ends in .toml
func (c *Config) Save(configPath string) error {
	var data []byte
	if isTOML(configPath) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c.MConfig); err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		data = buf.Bytes()
	} else {
		out, err := yaml.Marshal(c.MConfig)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		data = out
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
