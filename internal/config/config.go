// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port int `env:"PORT, default=8080" json:"port"`

	// Google Drive credentials. Either a service account key file or the
	// client id / client secret / refresh token trio must be set for the
	// Drive backend; the file takes precedence when both are present.
	ServiceAccountFile string `env:"GOOGLE_SERVICE_ACCOUNT_FILE" json:"service_account_file,omitempty"`
	ClientID           string `env:"GOOGLE_CLIENT_ID" json:"client_id,omitempty"`
	ClientSecret       string `env:"GOOGLE_CLIENT_SECRET" json:"-"` // Masked in JSON
	RefreshToken       string `env:"GOOGLE_REFRESH_TOKEN" json:"-"` // Masked in JSON

	// Upload settings
	TempDir        string `env:"TEMP_DIR" json:"temp_dir"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES, default=20971520" json:"max_upload_bytes"`
	UploadWorkers  int    `env:"UPLOAD_WORKERS, default=4" json:"upload_workers"`

	// Optional S3 settings. When both bucket and region are set the service
	// uploads to S3 instead of Google Drive.
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.TempDir == "" {
		cfg.TempDir = filepath.Join(os.TempDir(), "drivepdf")
	}
	if cfg.UploadWorkers < 1 {
		cfg.UploadWorkers = 1
	}

	return cfg, nil
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// DriveConfigured returns true if at least one Drive credential source is
// fully configured. Credential resolution itself happens per upload; this is
// only used to warn at startup.
func (c *Config) DriveConfigured() bool {
	if c.ServiceAccountFile != "" {
		return true
	}
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %d, ServiceAccountFile: %s, ClientID: %s, TempDir: %s, MaxUploadBytes: %d, UploadWorkers: %d, S3Bucket: %s, S3Region: %s, LogFormat: %s, LogLevel: %s}",
		c.Port,
		c.ServiceAccountFile,
		c.ClientID,
		c.TempDir,
		c.MaxUploadBytes,
		c.UploadWorkers,
		c.S3Bucket,
		c.S3Region,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
