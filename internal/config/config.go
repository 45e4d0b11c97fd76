// Package config loads runtime configuration for a civicgraph invocation.
package config

import "github.com/spf13/viper"

// Config holds all runtime configuration. Values are populated from
// .civicgraph.yaml, CIVICGRAPH_* env vars, and CLI flags.
type Config struct {
	DataDir      string `mapstructure:"data_dir"`
	Store        string `mapstructure:"store"` // "jsonl" or "sqlite"
	RegistryPath string `mapstructure:"registry_path"`
	AuditLog     string `mapstructure:"audit_log"`
	ServePort    int    `mapstructure:"serve_port"`
	Verbose      bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("data_dir", ".civicgraph")
	viper.SetDefault("store", "jsonl")
	viper.SetDefault("registry_path", "")
	viper.SetDefault("audit_log", "")
	viper.SetDefault("serve_port", 8377)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
