package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Backend selection values.
const (
	BackendArena = "arena"
	BackendBlob  = "blob"
)

// Config represents the credstore configuration.
type Config struct {
	Backend string      `yaml:"backend" env:"CREDSTORE_BACKEND"`
	Arena   ArenaConfig `yaml:"arena"`
	Blob    BlobConfig  `yaml:"blob"`
	Port    int         `yaml:"port" env:"CREDSTORE_PORT"`
	Bind    string      `yaml:"bind" env:"CREDSTORE_BIND"`
	APIKey  string      `yaml:"api_key" env:"CREDSTORE_API_KEY"`
	Logging Logging     `yaml:"logging"`
}

// ArenaConfig configures the linear-region backend.
type ArenaConfig struct {
	// Path of the region file.
	Path string `yaml:"path" env:"CREDSTORE_ARENA_PATH"`
	// Offset is the base byte offset of the container header inside the
	// region.
	Offset int `yaml:"offset" env:"CREDSTORE_ARENA_OFFSET"`
}

// BlobConfig configures the blob backend.
type BlobConfig struct {
	// Path of the pebble database directory.
	Path string `yaml:"path" env:"CREDSTORE_BLOB_PATH"`
	// Key the serialized credential pool is stored under.
	Key string `yaml:"key" env:"CREDSTORE_BLOB_KEY"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level" env:"CREDSTORE_LOG_LEVEL"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendArena,
		Arena: ArenaConfig{
			Path:   "./data/credentials.bin",
			Offset: 0,
		},
		Blob: BlobConfig{
			Path: "./data/credstore",
			Key:  "credentials",
		},
		Port: 8080,
		Bind: "127.0.0.1",
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path and applies
// environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// FromEnv returns the default configuration with environment overrides
// applied, for running without a config file.
func FromEnv() (*Config, error) {
	config := DefaultConfig()
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configurations no backend can be built from.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendArena:
		if c.Arena.Path == "" {
			return fmt.Errorf("arena backend requires arena.path")
		}
		if c.Arena.Offset < 0 {
			return fmt.Errorf("arena.offset must not be negative")
		}
	case BackendBlob:
		if c.Blob.Path == "" {
			return fmt.Errorf("blob backend requires blob.path")
		}
		if c.Blob.Key == "" {
			return fmt.Errorf("blob backend requires blob.key")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendArena, BackendBlob)
	}
	return nil
}

// SaveConfig saves the configuration to the specified path with secure
// permissions.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateSecureKey generates a cryptographically secure random key.
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key and
// writes it to configPath.
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.Arena.Path = filepath.Join(dataDir, "credentials.bin")
		config.Blob.Path = filepath.Join(dataDir, "credstore")
	}

	apiKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}
	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./credstore.yaml"
	}
	configDir := filepath.Join(homeDir, ".config", "credstore")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
