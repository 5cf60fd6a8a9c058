package models

// MConfig Structure
type MConfig struct {
	Name        string             `yaml:"name" toml:"name" json:"name"`
	Host        string             `yaml:"host" toml:"host" json:"host"`
	Port        int                `yaml:"port" toml:"port" json:"port"`
	LogLevel    string             `yaml:"log_level" toml:"log_level" json:"log_level"`
	GrpcHost    string             `yaml:"grpc_host" toml:"grpc_host" json:"grpc_host"`
	GrpcPort    int                `yaml:"grpc_port" toml:"grpc_port" json:"grpc_port"`
	Storage     MStorageConfig     `yaml:"storage" toml:"storage" json:"storage"`
	Aggregation MAggregationConfig `yaml:"aggregation" toml:"aggregation" json:"aggregation"`
	Channels    []MChannelConfig   `yaml:"channels" toml:"channels" json:"channels"`
	Refresh     MRefreshConfig     `yaml:"refresh" toml:"refresh" json:"refresh"`
	Calendar    MCalendarConfig    `yaml:"calendar" toml:"calendar" json:"calendar"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type" toml:"db_type" json:"db_type"` // none, memory, sqlite, postgres
	DBPath             string `yaml:"db_path" toml:"db_path" json:"db_path"`
	DBConnectionString string `yaml:"db_connection_string" toml:"db_connection_string" json:"-"`
	RetentionDays      int    `yaml:"retention_days" toml:"retention_days" json:"retention_days"`
	MemoryRuns         int    `yaml:"memory_runs" toml:"memory_runs" json:"memory_runs"`
}

type MAggregationConfig struct {
	MaxSpanDays int    `yaml:"max_span_days" toml:"max_span_days" json:"max_span_days"`
	Workers     int    `yaml:"workers" toml:"workers" json:"workers"`
	Unit        string `yaml:"unit" toml:"unit" json:"unit"`
	TimeLayout  string `yaml:"time_layout" toml:"time_layout" json:"time_layout"`
	Timezone    string `yaml:"timezone" toml:"timezone" json:"timezone"`
}

// MChannelConfig describes one measurement channel. The first configured
// channel is authoritative for the merged key set.
type MChannelConfig struct {
	Name  string `yaml:"name" toml:"name" json:"name"`
	Label string `yaml:"label" toml:"label" json:"label"`
	Root  string `yaml:"root" toml:"root" json:"root"`
}

type MRefreshConfig struct {
	Enabled         bool `yaml:"enabled" toml:"enabled" json:"enabled"`
	IntervalSeconds int  `yaml:"interval_seconds" toml:"interval_seconds" json:"interval_seconds"`
	SpanDays        int  `yaml:"span_days" toml:"span_days" json:"span_days"`
}

type MCalendarConfig struct {
	MIC string `yaml:"mic" toml:"mic" json:"mic"` // Optional, e.g. "xnys"
}
