package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/cli"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/httpapi"
	applog "github.com/FerasMahmoud/firas-finance-dashboard/internal/log"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/notify"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)

	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := cli.OpenLedger(ctx, logger, cfg)
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Failed to close ledger", applog.FieldError, err)
		}
	}()

	amqpClient := cli.ConnectNotifier(logger, cfg)
	defer amqpClient.Close()

	service := cli.NewService(result, amqpClient)

	srv := httpapi.NewServer(":"+cfg.Port, result.Ledger, service, httpapi.Options{
		CacheTTL:     cfg.CacheTTL,
		CacheMaxSize: cfg.CacheMaxSize,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Other processes (the CLI, mainly) announce their writes over AMQP.
	// Drop cached responses and, for the file backend, re-read the data
	// files so the next request sees the change.
	if amqpClient != nil {
		go func() {
			err := amqpClient.ConsumeLedgerChanged(ctx, func(msg *notify.LedgerChangedMessage) error {
				srv.InvalidateCaches()
				if fs, ok := result.Ledger.(*store.FileStore); ok {
					return fs.Reload(ctx)
				}
				return nil
			})
			if err != nil && err != context.Canceled {
				logger.Error("Change notice consumer stopped", applog.FieldError, err)
			}
		}()
	}

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting dashboard server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"eventing", amqpClient != nil)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
