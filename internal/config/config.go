package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvAPIKey     = "OCTAV_API_KEY"
	EnvBaseURL    = "OCTAV_BASE_URL"
	EnvLogLevel   = "OCTAV_LOG_LEVEL"
	EnvConfigPath = "OCTAV_CONFIG"
)

// ErrMissingAPIKey is returned by Validate when no credential is configured.
var ErrMissingAPIKey = errors.New(EnvAPIKey + " environment variable is required")

// Config holds the overall configuration for the application.
type Config struct {
	Octav   OctavConfig   `yaml:"octav"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
}

// OctavConfig holds the configuration for the Octav API client.
type OctavConfig struct {
	APIKey               string `yaml:"apiKey"`
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// ServerConfig holds the HTTP transport configuration.
type ServerConfig struct {
	Port         string   `yaml:"port"`
	ReadTimeout  int      `yaml:"readTimeout"`
	WriteTimeout int      `yaml:"writeTimeout"`
	IdleTimeout  int      `yaml:"idleTimeout"`
	RateLimit    float64  `yaml:"rateLimit"` // requests per second across all clients
	BurstLimit   int      `yaml:"burstLimit"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// TracingConfig controls span export. Spans are still created when disabled,
// they are just not exported anywhere.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"` // host:port of an OTLP/HTTP collector
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"serviceName"`
}

// LoadConfig loads configuration from an optional YAML file, then applies
// environment overrides and defaults. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		logrus.Infof("Loading configuration from path: %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			logrus.Errorf("Failed to read config file %s: %v", path, err)
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		cfg.Octav.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.Octav.BaseURL = v
		logrus.Infof("Octav.BaseURL overridden by %s: %s", EnvBaseURL, v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}

	applyDefaults(&cfg)

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Octav.BaseURL == "" {
		cfg.Octav.BaseURL = "https://api.octav.fi/v1"
		logrus.Infof("Octav.BaseURL not set, defaulting to %s", cfg.Octav.BaseURL)
	}
	if cfg.Octav.RequestTimeoutMillis == 0 {
		cfg.Octav.RequestTimeoutMillis = 30000
		logrus.Infof("Octav.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Octav.RequestTimeoutMillis)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 10
		logrus.Infof("Server.RateLimit not set, defaulting to %.0f requests/s", cfg.Server.RateLimit)
	}
	if cfg.Server.BurstLimit == 0 {
		cfg.Server.BurstLimit = 20
	}
	if len(cfg.Server.AllowOrigins) == 0 {
		cfg.Server.AllowOrigins = []string{"*"}
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "octav-mcp"
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = "localhost:4318"
		logrus.Warnf("Tracing enabled without endpoint, defaulting to %s", cfg.Tracing.Endpoint)
	}
}

// Validate checks what every tool call depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Octav.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}
