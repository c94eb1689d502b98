// Package cli consolidates process initialization shared by cmd/dashboard
// and cmd/financectl: logging, env loading, config and ledger setup.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/backend"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/config"
	applog "github.com/FerasMahmoud/firas-finance-dashboard/internal/log"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/notify"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/services"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(component string) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: component,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenLedger builds the configured storage backend. Returns the ledger with
// its cleanup function, or exits the process on failure.
func OpenLedger(ctx context.Context, logger *applog.Logger, cfg *config.Config) *backend.Result {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger.Logger).CreateLedger(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	return result
}

// ConnectNotifier dials AMQP when configured. A missing URL or a failed
// connection yields nil, which downstream code treats as eventing disabled.
func ConnectNotifier(logger *applog.Logger, cfg *config.Config) *notify.Client {
	if cfg.AMQPURL == "" {
		return nil
	}

	client, err := notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, continuing without change notices",
			applog.FieldError, err)
		return nil
	}
	logger.Info("Connected to AMQP",
		"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return client
}

// NewService wires the ledger and optional notifier into the write service.
// The nil check matters: wrapping a nil *notify.Client directly would hand
// the service a non-nil interface holding a nil pointer.
func NewService(result *backend.Result, client *notify.Client) *services.LedgerService {
	var notifier services.Notifier
	if client != nil {
		notifier = client
	}
	return services.NewLedgerService(result.Ledger, notifier)
}
