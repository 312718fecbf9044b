// Package config handles configuration loading for newsscan.
// It supports YAML config files with environment variable overrides, and
// carries the built-in feed source and query tables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Scanner ScannerConfig `mapstructure:"scanner" yaml:"scanner"`
	GDELT   GDELTConfig   `mapstructure:"gdelt"   yaml:"gdelt"`
	RSS     RSSConfig     `mapstructure:"rss"     yaml:"rss"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ScannerConfig holds pipeline-level settings.
type ScannerConfig struct {
	Categories     []string `mapstructure:"categories"       yaml:"categories"`
	OutputDir      string   `mapstructure:"output_dir"       yaml:"output_dir"`
	RequestTimeout int      `mapstructure:"request_timeout"  yaml:"request_timeout"` // seconds
	RequestDelayMS int      `mapstructure:"request_delay_ms" yaml:"request_delay_ms"`
	CacheTTL       int      `mapstructure:"cache_ttl"        yaml:"cache_ttl"` // seconds
}

// GDELTConfig holds GDELT DOC 2.0 API settings.
type GDELTConfig struct {
	BaseURL    string `mapstructure:"base_url"    yaml:"base_url"`
	MaxRecords int    `mapstructure:"max_records" yaml:"max_records"` // capped at 250 by the API
	Timespan   string `mapstructure:"timespan"    yaml:"timespan"`    // e.g. "7d", "24h"
	Language   string `mapstructure:"language"    yaml:"language"`
}

// RSSConfig holds RSS/Atom feed settings.
type RSSConfig struct {
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	Append     bool   `mapstructure:"append"      yaml:"append"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.newsscan/config.yaml (home directory)
//  3. /etc/newsscan/config.yaml (system)
//
// Environment variables override config file values.
// Format: NEWSSCAN_<SECTION>_<KEY>, e.g., NEWSSCAN_GDELT_TIMESPAN
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".newsscan"))
	v.AddConfigPath("/etc/newsscan")

	v.SetEnvPrefix("NEWSSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("NEWSSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Scanner defaults
	v.SetDefault("scanner.categories", []string{"finance", "tech", "politics", "gov", "ai", "intel"})
	v.SetDefault("scanner.output_dir", "./output")
	v.SetDefault("scanner.request_timeout", 15) // seconds
	v.SetDefault("scanner.request_delay_ms", 500)
	v.SetDefault("scanner.cache_ttl", 300) // 5 minutes

	// GDELT defaults
	v.SetDefault("gdelt.base_url", "https://api.gdeltproject.org")
	v.SetDefault("gdelt.max_records", 20)
	v.SetDefault("gdelt.timespan", "7d")
	v.SetDefault("gdelt.language", "english")

	// Storage defaults
	v.SetDefault("storage.sqlite_path", "")
	v.SetDefault("storage.append", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
