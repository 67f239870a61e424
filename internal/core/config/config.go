package config

import (
	"time"

	redisclient "github.com/resuforge/rewriter/internal/infra/redis"
	"github.com/resuforge/rewriter/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server    ServerConfig       `yaml:"server"`
	Transform TransformConfig    `yaml:"transform"`
	Batch     BatchConfig        `yaml:"batch"`
	Redis     redisclient.Config `yaml:"redis"`
	Logging   LoggingConfig      `yaml:"logging"`
	Database  postgres.Config    `yaml:"database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// TransformConfig holds settings for the external rewrite backend.
type TransformConfig struct {
	URL           string        `yaml:"url"`
	Model         string        `yaml:"model"`
	Style         string        `yaml:"style"` // safe, bold, creative
	AttemptBudget time.Duration `yaml:"attempt_budget"`
	RetryCount    int           `yaml:"retry_count"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
}

// BatchConfig holds batch processing settings.
type BatchConfig struct {
	Workers          int           `yaml:"workers"`
	FailFast         bool          `yaml:"fail_fast"`
	HistoryRetention time.Duration `yaml:"history_retention"` // 0 = infinite
}
