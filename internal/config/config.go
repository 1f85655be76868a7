// Package config loads and validates the application configuration for the
// provisio binaries. Library embedders configure everything through options
// and never touch this package.
package config

import (
	"encoding/base64"
	"fmt"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Store  StoreConfig  `mapstructure:"store" yaml:"store"`
	Azure  AzureConfig  `mapstructure:"azure" yaml:"azure"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr    string `mapstructure:"addr" yaml:"addr"`
	Metrics bool   `mapstructure:"metrics" yaml:"metrics"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// StoreConfig selects and configures session persistence.
type StoreConfig struct {
	// Backend is "memory" or "redis".
	Backend string      `mapstructure:"backend" yaml:"backend"`
	Redis   RedisConfig `mapstructure:"redis" yaml:"redis"`

	// EncryptionKey enables at-rest field encryption when set.
	// Base64-encoded, must decode to 32 bytes (AES-256).
	EncryptionKey string `mapstructure:"encryption_key" yaml:"encryption_key"`

	// RedactSecrets masks provisioner secrets before sessions are persisted.
	RedactSecrets bool `mapstructure:"redact_secrets" yaml:"redact_secrets"`
}

// RedisConfig configures the Redis session store and locker.
type RedisConfig struct {
	Address  string        `mapstructure:"address" yaml:"address"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// AzureConfig holds provisioning context shared by all sessions.
type AzureConfig struct {
	// DefaultSubscription is used when a user answers "default" at the
	// subscription prompt.
	DefaultSubscription string `mapstructure:"default_subscription" yaml:"default_subscription"`
}

// ValidLogLevels are the accepted log.level values.
var ValidLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// ValidLogFormats are the accepted log.format values.
var ValidLogFormats = map[string]bool{
	"json": true,
	"text": true,
}

// ValidStoreBackends are the accepted store.backend values.
var ValidStoreBackends = map[string]bool{
	"memory": true,
	"redis":  true,
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:    ":8000",
			Metrics: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Backend:       "memory",
			RedactSecrets: true,
			Redis: RedisConfig{
				Address: "localhost:6379",
				Prefix:  "provisio:session:",
				TTL:     time.Hour,
			},
		},
	}
}

// Validate checks the configuration and returns a detailed error if
// validation fails.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if !ValidLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if !ValidLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format %q: must be json or text", c.Log.Format)
	}

	if !ValidStoreBackends[c.Store.Backend] {
		return fmt.Errorf("invalid store backend %q: must be memory or redis", c.Store.Backend)
	}
	if c.Store.Backend == "redis" {
		if c.Store.Redis.Address == "" {
			return fmt.Errorf("store.redis.address is required for the redis backend")
		}
		if c.Store.Redis.TTL < 0 {
			return fmt.Errorf("store.redis.ttl must not be negative")
		}
	}

	if _, err := c.Store.DecodeEncryptionKey(); err != nil {
		return err
	}

	return nil
}

// DecodeEncryptionKey returns the decoded at-rest encryption key, or nil
// when encryption is disabled.
func (s StoreConfig) DecodeEncryptionKey() ([]byte, error) {
	if s.EncryptionKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("store.encryption_key is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("store.encryption_key must decode to 32 bytes (AES-256), got %d", len(key))
	}
	return key, nil
}
