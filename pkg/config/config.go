package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents sentibay configuration
type Config struct {
	// Class labels the classifier distinguishes
	Classes []string `yaml:"classes"`

	// Model persistence settings
	Model ModelConfig `yaml:"model"`

	// Tokenizer settings for the preprocess pipeline
	Tokenizer TokenizerConfig `yaml:"tokenizer"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig selects and parameterizes the model store backend
type ModelConfig struct {
	Backend string      `yaml:"backend"` // file or redis
	Path    string      `yaml:"path"`    // model file path for the file backend
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig contains Redis model store settings
type RedisConfig struct {
	RedisURL    string `yaml:"redis_url"`
	KeyPrefix   string `yaml:"key_prefix"`
	DatabaseNum int    `yaml:"database_num"`
}

// TokenizerConfig contains preprocessing settings
type TokenizerConfig struct {
	Lowercase bool `yaml:"lowercase"`
	Stemming  bool `yaml:"stemming"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // log file path, empty = stderr
}

// DefaultConfig returns sentibay default configuration
func DefaultConfig() *Config {
	return &Config{
		Classes: []string{"neg", "pos"},
		Model: ModelConfig{
			Backend: "file",
			Path:    "sentiment-model.txt",
			Redis: RedisConfig{
				RedisURL:    "redis://localhost:6379",
				KeyPrefix:   "sentibay:model",
				DatabaseNum: 0,
			},
		},
		Tokenizer: TokenizerConfig{
			Lowercase: true,
			Stemming:  false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "",
		},
	}
}

// LoadConfig loads configuration from file
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// If no config file specified, return defaults
	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}

	return config, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	err = os.WriteFile(configPath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Classes) < 2 {
		return fmt.Errorf("at least two classes are required, got %d", len(c.Classes))
	}
	seen := make(map[string]bool, len(c.Classes))
	for _, class := range c.Classes {
		if class == "" {
			return fmt.Errorf("class labels must be non-empty")
		}
		if seen[class] {
			return fmt.Errorf("duplicate class label: %s", class)
		}
		seen[class] = true
	}

	switch c.Model.Backend {
	case "file":
		if c.Model.Path == "" {
			return fmt.Errorf("model.path is required for the file backend")
		}
	case "redis":
		if c.Model.Redis.RedisURL == "" {
			return fmt.Errorf("model.redis.redis_url is required for the redis backend")
		}
		if c.Model.Redis.KeyPrefix == "" {
			return fmt.Errorf("model.redis.key_prefix is required for the redis backend")
		}
	default:
		return fmt.Errorf("model.backend must be 'file' or 'redis', got %q", c.Model.Backend)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error")
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console")
	}

	return nil
}
