// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "tasklane/internal/adapters/http"
	"tasklane/internal/adapters/http/handlers"
	"tasklane/internal/adapters/http/middleware"
	"tasklane/internal/adapters/kafka"
	"tasklane/internal/adapters/memory"
	"tasklane/internal/adapters/postgres"
	"tasklane/internal/adapters/security"
	"tasklane/internal/adapters/smtp"
	"tasklane/internal/adapters/webhook"
	"tasklane/internal/app"
	"tasklane/internal/mediator"
	"tasklane/internal/platform/config"
	"tasklane/internal/platform/health"
	"tasklane/internal/platform/httpclient"
	"tasklane/internal/platform/logging"
	"tasklane/internal/platform/telemetry"
	"tasklane/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	bootstrapTimeout      = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Connect the broker before accepting traffic.
	bootCtx, bootCancel := context.WithTimeout(ctx, bootstrapTimeout)
	broker, err := do.Invoke[ports.MessageBroker](injector)
	if err != nil {
		bootCancel()
		return fmt.Errorf("resolving broker: %w", err)
	}
	if err := broker.Start(bootCtx); err != nil {
		bootCancel()
		return fmt.Errorf("starting broker: %w", err)
	}
	bootCancel()

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registerHealthCheckers(injector, cfg)

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush the broker and close the database pool.
	if err := broker.Stop(); err != nil {
		logger.Error("broker shutdown error", slog.Any("error", err))
	}
	if cfg.Database.Driver == "postgres" {
		db := do.MustInvoke[*sql.DB](injector)
		if err := db.Close(); err != nil {
			logger.Error("database shutdown error", slog.Any("error", err))
		}
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	// Persistence. The *sql.DB provider is only invoked when the postgres
	// driver is configured; the memory driver never opens a pool.
	do.Provide(injector, func(_ do.Injector) (*sql.DB, error) {
		ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
		defer cancel()
		return postgres.Open(ctx, cfg.Database.DSN)
	})

	do.Provide(injector, func(i do.Injector) (ports.UserRepository, error) {
		if cfg.Database.Driver == "postgres" {
			db := do.MustInvoke[*sql.DB](i)
			return postgres.NewUserRepository(db), nil
		}
		return memory.NewUserRepository(), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskRepository, error) {
		if cfg.Database.Driver == "postgres" {
			db := do.MustInvoke[*sql.DB](i)
			return postgres.NewTaskRepository(db), nil
		}
		return memory.NewTaskRepository(), nil
	})

	// Event publication.
	do.Provide(injector, func(_ do.Injector) (ports.MessageBroker, error) {
		if cfg.Kafka.Enabled {
			return kafka.NewProducer(cfg.Kafka.Brokers), nil
		}
		return memory.NewBroker(), nil
	})

	// Outbound HTTP client for the webhook notifier.
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Notifier.Webhook.Client, cfg.Notifier.Webhook.URL,
			"notify-webhook", metrics, logger), nil
	})

	// Notifications.
	do.Provide(injector, func(i do.Injector) (ports.Notifier, error) {
		switch cfg.Notifier.Kind {
		case "smtp":
			return smtp.NewNotifier(
				cfg.Notifier.SMTP.Host,
				cfg.Notifier.SMTP.Port,
				cfg.Notifier.SMTP.Username,
				cfg.Notifier.SMTP.Password,
			), nil
		case "webhook":
			client := do.MustInvoke[*httpclient.Client](i)
			return webhook.NewNotifier(client), nil
		default:
			return memory.NewNotifier(), nil
		}
	})

	// Security.
	do.Provide(injector, func(_ do.Injector) (ports.PasswordHasher, error) {
		return security.NewBcryptHasher(cfg.Auth.BcryptCost), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.TokenCodec, error) {
		return security.NewJWTCodec(cfg.Auth.Secret, cfg.Auth.Issuer), nil
	})

	// The sealed mediator carries every command, query, and event handler.
	do.Provide(injector, func(i do.Injector) (*mediator.Mediator, error) {
		return app.NewMediator(app.Dependencies{
			Users:       do.MustInvoke[ports.UserRepository](i),
			Tasks:       do.MustInvoke[ports.TaskRepository](i),
			Hasher:      do.MustInvoke[ports.PasswordHasher](i),
			Tokens:      do.MustInvoke[ports.TokenCodec](i),
			Broker:      do.MustInvoke[ports.MessageBroker](i),
			Notifier:    do.MustInvoke[ports.Notifier](i),
			BrokerTopic: cfg.Kafka.Topic,
			Logger:      logger,
		}), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.UserHandler, error) {
		m := do.MustInvoke[*mediator.Mediator](i)
		return handlers.NewUserHandler(m), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.AuthHandler, error) {
		m := do.MustInvoke[*mediator.Mediator](i)
		return handlers.NewAuthHandler(m, cfg.Auth.AccessTokenTTL), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TaskHandler, error) {
		m := do.MustInvoke[*mediator.Mediator](i)
		return handlers.NewTaskHandler(m), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		userH := do.MustInvoke[*handlers.UserHandler](i)
		authH := do.MustInvoke[*handlers.AuthHandler](i)
		taskH := do.MustInvoke[*handlers.TaskHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		m := do.MustInvoke[*mediator.Mediator](i)

		return adapthttp.NewRouter(userH, authH, taskH, healthH,
			middleware.Auth(m),
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// registerHealthCheckers attaches a checker per wired infrastructure
// dependency: the database pool, the Kafka producer, and the webhook client.
func registerHealthCheckers(injector *do.RootScope, cfg *config.Config) {
	registry := do.MustInvoke[ports.HealthRegistry](injector)

	if cfg.Database.Driver == "postgres" {
		db := do.MustInvoke[*sql.DB](injector)
		registry.Register(postgres.NewHealthChecker(db))
	}
	if cfg.Kafka.Enabled {
		if p, ok := do.MustInvoke[ports.MessageBroker](injector).(*kafka.Producer); ok {
			registry.Register(p)
		}
	}
	if cfg.Notifier.Kind == "webhook" {
		registry.Register(do.MustInvoke[*httpclient.Client](injector))
	}
}
