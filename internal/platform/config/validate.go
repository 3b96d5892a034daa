package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Database.validate(),
		c.Kafka.validate(),
		c.Notifier.validate(),
		c.Auth.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (d *DatabaseConfig) validate() error {
	var errs []error

	switch d.Driver {
	case "memory":
		// No DSN required.
	case "postgres":
		if d.DSN == "" {
			errs = append(errs, errors.New("database.dsn must not be empty when driver is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver must be one of: memory, postgres; got %q", d.Driver))
	}

	return errors.Join(errs...)
}

func (k *KafkaConfig) validate() error {
	if !k.Enabled {
		return nil
	}

	var errs []error

	if len(k.Brokers) == 0 {
		errs = append(errs, errors.New("kafka.brokers must not be empty when kafka is enabled"))
	}
	if k.Topic == "" {
		errs = append(errs, errors.New("kafka.topic must not be empty when kafka is enabled"))
	}

	return errors.Join(errs...)
}

func (n *NotifierConfig) validate() error {
	var errs []error

	switch n.Kind {
	case "smtp":
		if n.SMTP.Host == "" {
			errs = append(errs, errors.New("notifier.smtp.host must not be empty"))
		}
		if n.SMTP.Port < 1 || n.SMTP.Port > 65535 {
			errs = append(errs, fmt.Errorf("notifier.smtp.port must be between 1 and 65535, got %d", n.SMTP.Port))
		}
	case "webhook":
		if n.Webhook.URL == "" {
			errs = append(errs, errors.New("notifier.webhook.url must not be empty"))
		}
		errs = append(errs, n.Webhook.Client.validate())
	case "none":
		// Notifications disabled.
	default:
		errs = append(errs, fmt.Errorf("notifier.kind must be one of: smtp, webhook, none; got %q", n.Kind))
	}

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("client.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("client.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("client.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}

	return errors.Join(errs...)
}

func (a *AuthConfig) validate() error {
	var errs []error

	if a.Secret == "" {
		errs = append(errs, errors.New("auth.secret must not be empty"))
	}
	if a.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("auth.access_token_ttl must be positive"))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
