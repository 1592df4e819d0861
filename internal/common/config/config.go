// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	API           APIConfig          `mapstructure:"api"`
	Redis         RedisConfig        `mapstructure:"redis"`
	Files         FilesConfig        `mapstructure:"files"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig points the fetch layer at the remote business API.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// GetTimeout returns the request timeout as a duration.
func (a APIConfig) GetTimeout() time.Duration {
	if a.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.Timeout) * time.Millisecond
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds; snapshot cache expiry
}

// GetTTL returns the snapshot cache TTL as a duration.
func (r RedisConfig) GetTTL() time.Duration {
	if r.TTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(r.TTL) * time.Second
}

// FilesConfig bounds what the upload boundary accepts.
type FilesConfig struct {
	MaxSizeMB    int      `mapstructure:"max_size_mb"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// NotificationConfig holds settings for outbound alerting. Budgets
// maps expense categories to their spending limits; the budget watcher
// alerts when a category exceeds its entry.
type NotificationConfig struct {
	Enabled     bool               `mapstructure:"enabled"`
	AWSRegion   string             `mapstructure:"aws_region"`
	SNSTopicARN string             `mapstructure:"sns_topic_arn"`
	EmailFrom   string             `mapstructure:"email_from"`
	EmailTo     string             `mapstructure:"email_to"`
	Budgets     map[string]float64 `mapstructure:"budgets"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.Files.MaxSizeMB < 0 {
		return fmt.Errorf("files.max_size_mb must not be negative")
	}
	if cfg.Notifications.Enabled && cfg.Notifications.AWSRegion == "" {
		return fmt.Errorf("notifications.aws_region is required when notifications are enabled")
	}
	return nil
}
