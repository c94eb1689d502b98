// financectl is the command line companion to the dashboard server. It
// writes to the same ledger (transactions, balances) and runs reports and
// integrity checks without going through the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/cli"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/config"
	applog "github.com/FerasMahmoud/firas-finance-dashboard/internal/log"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/services"
)

var (
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "financectl",
		Short: "Personal finance ledger from the command line",
		Long: `financectl manages the transaction ledger behind the finance dashboard:
add transactions, update bank balances, run reports and audit data quality.

Configuration comes from the same environment variables the server reads
(DATA_BACKEND, DATA_DIR, SQLITE_DB_PATH, AMQP_URL), overridable with
FINANCE_-prefixed variables or the global flags below.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().String("backend", "", "data backend (json, sqlite)")
	rootCmd.PersistentFlags().String("data-dir", "", "data directory for the json backend")
	rootCmd.PersistentFlags().String("db-path", "", "database path for the sqlite backend")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db-path"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	cli.LoadEnvFile()

	viper.SetEnvPrefix("FINANCE")
	viper.AutomaticEnv()

	level := slog.LevelWarn
	switch viper.GetString("log_level") {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", viper.GetString("log_level"))
	}

	logger := applog.New(applog.Config{Level: level, Component: applog.ComponentCLI})
	applog.SetDefault(logger)
	return nil
}

// loadConfig merges the server's env configuration with CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if v := viper.GetString("backend"); v != "" {
		cfg.DataBackend = v
	}
	if v := viper.GetString("data_dir"); v != "" {
		cfg.DataDir = v
	}
	if v := viper.GetString("db_path"); v != "" {
		cfg.SQLiteDBPath = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withService opens the ledger and the optional notifier, runs fn and tears
// everything down afterwards. Every subcommand goes through here.
func withService(ctx context.Context, fn func(ctx context.Context, svc *services.LedgerService) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := applog.New(applog.Config{Level: slog.LevelWarn, Component: applog.ComponentCLI})
	result := cli.OpenLedger(ctx, logger, cfg)
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Failed to close ledger", applog.FieldError, err)
		}
	}()

	amqpClient := cli.ConnectNotifier(logger, cfg)
	defer amqpClient.Close()

	return fn(ctx, cli.NewService(result, amqpClient))
}

// printJSON writes v to stdout as indented JSON, the output format of every
// read-style subcommand.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the financectl version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("financectl %s\n", version)
		},
	}
}
