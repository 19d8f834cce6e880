package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the configuration for the chat client.
// All values are fixed at startup.
type Config struct {
	Endpoint           string        `toml:"endpoint" mapstructure:"endpoint"`                       // Remote reply endpoint (POST)
	RequestTimeout     time.Duration `toml:"request_timeout" mapstructure:"request_timeout"`         // Remote call timeout
	MaxMessageLength   int           `toml:"max_message_length" mapstructure:"max_message_length"`   // Characters
	LocalCommandDelay  time.Duration `toml:"local_command_delay" mapstructure:"local_command_delay"` // Simulated latency for local commands
	HistoryCap         int           `toml:"history_cap" mapstructure:"history_cap"`                 // Maximum retained messages
	RestoreCount       int           `toml:"restore_count" mapstructure:"restore_count"`             // Messages replayed at startup
	HistoryKey         string        `toml:"history_key" mapstructure:"history_key"`
	ThemeKey           string        `toml:"theme_key" mapstructure:"theme_key"`
	StorageBackend     string        `toml:"storage_backend" mapstructure:"storage_backend"` // "file" or "sqlite"
	DataDir            string        `toml:"data_dir" mapstructure:"data_dir"`
	RateLimitPerMinute int           `toml:"rate_limit_per_minute" mapstructure:"rate_limit_per_minute"` // 0 = disabled
	Offline            bool          `toml:"offline" mapstructure:"offline"`
}

// fileConfig is the on-disk form written by 'chatc init'. Durations are kept
// as strings so the file stays readable ("30s" rather than nanoseconds).
type fileConfig struct {
	Endpoint           string `toml:"endpoint"`
	RequestTimeout     string `toml:"request_timeout"`
	MaxMessageLength   int    `toml:"max_message_length"`
	LocalCommandDelay  string `toml:"local_command_delay"`
	HistoryCap         int    `toml:"history_cap"`
	RestoreCount       int    `toml:"restore_count"`
	HistoryKey         string `toml:"history_key"`
	ThemeKey           string `toml:"theme_key"`
	StorageBackend     string `toml:"storage_backend"`
	DataDir            string `toml:"data_dir"`
	RateLimitPerMinute int    `toml:"rate_limit_per_minute"`
	Offline            bool   `toml:"offline"`
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig(dataDir string) *Config {
	return &Config{
		Endpoint:           "http://localhost:5000/get_response",
		RequestTimeout:     30 * time.Second,
		MaxMessageLength:   5000,
		LocalCommandDelay:  300 * time.Millisecond,
		HistoryCap:         100,
		RestoreCount:       10,
		HistoryKey:         "chatbot_history",
		ThemeKey:           "chatbot_theme",
		StorageBackend:     BackendFile,
		DataDir:            dataDir,
		RateLimitPerMinute: 30,
		Offline:            false,
	}
}

// SetDefaults registers every default value with viper
func SetDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("endpoint", defaults.Endpoint)
	v.SetDefault("request_timeout", defaults.RequestTimeout)
	v.SetDefault("max_message_length", defaults.MaxMessageLength)
	v.SetDefault("local_command_delay", defaults.LocalCommandDelay)
	v.SetDefault("history_cap", defaults.HistoryCap)
	v.SetDefault("restore_count", defaults.RestoreCount)
	v.SetDefault("history_key", defaults.HistoryKey)
	v.SetDefault("theme_key", defaults.ThemeKey)
	v.SetDefault("storage_backend", defaults.StorageBackend)
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("rate_limit_per_minute", defaults.RateLimitPerMinute)
	v.SetDefault("offline", defaults.Offline)
}

// FileDocument returns the config in the form written to config.toml
func (c *Config) FileDocument() any {
	return fileConfig{
		Endpoint:           c.Endpoint,
		RequestTimeout:     c.RequestTimeout.String(),
		MaxMessageLength:   c.MaxMessageLength,
		LocalCommandDelay:  c.LocalCommandDelay.String(),
		HistoryCap:         c.HistoryCap,
		RestoreCount:       c.RestoreCount,
		HistoryKey:         c.HistoryKey,
		ThemeKey:           c.ThemeKey,
		StorageBackend:     c.StorageBackend,
		DataDir:            c.DataDir,
		RateLimitPerMinute: c.RateLimitPerMinute,
		Offline:            c.Offline,
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid endpoint %q: must be an http or https URL", c.Endpoint)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %s)", c.RequestTimeout)
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("max_message_length must be > 0 (got %d)", c.MaxMessageLength)
	}
	if c.LocalCommandDelay < 0 {
		return fmt.Errorf("local_command_delay cannot be negative (got %s)", c.LocalCommandDelay)
	}
	if c.HistoryCap <= 0 {
		return fmt.Errorf("history_cap must be > 0 (got %d)", c.HistoryCap)
	}
	if c.RestoreCount < 0 {
		return fmt.Errorf("restore_count cannot be negative (got %d)", c.RestoreCount)
	}
	if c.HistoryKey == "" || c.ThemeKey == "" {
		return fmt.Errorf("history_key and theme_key cannot be empty")
	}
	if c.HistoryKey == c.ThemeKey {
		return fmt.Errorf("history_key and theme_key must differ (both %q)", c.HistoryKey)
	}
	switch c.StorageBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unsupported storage backend: %s (expected %s or %s)", c.StorageBackend, BackendFile, BackendSQLite)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate_limit_per_minute cannot be negative (got %d)", c.RateLimitPerMinute)
	}
	return nil
}

// LoadConfig loads configuration from viper
func LoadConfig(v *viper.Viper) (*Config, error) {
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	dataDir, err := ResolvePath(v, config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error resolving data directory path '%s': %w", config.DataDir, err)
	}
	config.DataDir = dataDir

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
