package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/toxpacket"
	"github.com/opd-ai/toxpacket/crypto"
)

// Config is the optional YAML configuration file.
type Config struct {
	// SecretKey is the hex encoded identity. Empty means a fresh identity
	// per invocation.
	SecretKey string `yaml:"secret_key"`

	// KeyCacheSize bounds the shared key cache.
	KeyCacheSize int `yaml:"key_cache_size"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used without a file.
func DefaultConfig() Config {
	return Config{
		KeyCacheSize: crypto.DefaultKeyCacheSize,
		LogLevel:     "warn",
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values that can be checked without side effects.
func (c Config) Validate() error {
	if c.KeyCacheSize < 0 {
		return fmt.Errorf("key_cache_size must not be negative, got %d", c.KeyCacheSize)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.SecretKey != "" {
		if _, err := crypto.ParseSecretKey(c.SecretKey); err != nil {
			return fmt.Errorf("secret_key: %w", err)
		}
	}
	return nil
}

// endpointOptions converts the configuration for toxpacket.NewEndpoint.
func (c Config) endpointOptions() (*toxpacket.Options, error) {
	opts := toxpacket.NewOptions()
	opts.KeyCacheSize = c.KeyCacheSize
	if c.SecretKey != "" {
		sk, err := crypto.ParseSecretKey(c.SecretKey)
		if err != nil {
			return nil, fmt.Errorf("secret_key: %w", err)
		}
		opts.SecretKey = &sk
	}
	return opts, nil
}
