// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Database  DatabaseConfig  `koanf:"database"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	Notifier  NotifierConfig  `koanf:"notifier"`
	Auth      AuthConfig      `koanf:"auth"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DatabaseConfig selects and configures the persistence backend. The
// memory driver needs no DSN and is intended for the local profile.
type DatabaseConfig struct {
	Driver string `koanf:"driver"` // "memory" or "postgres"
	DSN    string `koanf:"dsn"`
}

// KafkaConfig holds event publication settings. When disabled, events are
// published to an in-process broker that only logs.
type KafkaConfig struct {
	Enabled bool     `koanf:"enabled"`
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
}

// NotifierConfig selects and configures the notification channel.
type NotifierConfig struct {
	Kind    string        `koanf:"kind"` // "smtp", "webhook", or "none"
	SMTP    SMTPConfig    `koanf:"smtp"`
	Webhook WebhookConfig `koanf:"webhook"`
}

// SMTPConfig holds mail relay settings. The username doubles as the
// sender address.
type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// WebhookConfig holds settings for posting notifications to an HTTP
// endpoint.
type WebhookConfig struct {
	URL    string       `koanf:"url"`
	Client ClientConfig `koanf:"client"`
}

// ClientConfig holds downstream HTTP client settings.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RateLimitConfig holds outbound request rate limiting settings. A zero
// RequestsPerSecond disables rate limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	Secret         string        `koanf:"secret"`
	Issuer         string        `koanf:"issuer"`
	AccessTokenTTL time.Duration `koanf:"access_token_ttl"`
	BcryptCost     int           `koanf:"bcrypt_cost"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
