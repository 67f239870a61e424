package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills in defaults for anything the file left unset.
func (cfg *AppConfig) ApplyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Transform.URL == "" {
		cfg.Transform.URL = "http://localhost:11434"
	}
	if cfg.Transform.Model == "" {
		cfg.Transform.Model = "llama3"
	}
	if cfg.Transform.Style == "" {
		cfg.Transform.Style = "safe"
	}
	if cfg.Transform.AttemptBudget == 0 {
		cfg.Transform.AttemptBudget = 30 * time.Second
	}
	if cfg.Transform.RetryCount == 0 {
		cfg.Transform.RetryCount = 1
	}
	if cfg.Transform.RetryDelay == 0 {
		cfg.Transform.RetryDelay = 100 * time.Millisecond
	}
	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = 4
	}
}

// Default returns a configuration with all defaults applied, for
// running without a config file.
func Default() *AppConfig {
	var cfg AppConfig
	cfg.ApplyDefaults()
	return &cfg
}
