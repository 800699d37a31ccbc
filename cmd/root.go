package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/uniconnect/ama-service/config"
	"github.com/uniconnect/ama-service/internal/postgres"
	"github.com/uniconnect/ama-service/pkg/httputil"
	"github.com/uniconnect/ama-service/pkg/logger"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "ama-service",
	Short:         "AMA sessions backend: REST API, realtime chat, AI helpers",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// без подкоманды запускаем сервер
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// bootstrap: конфиг + логгер, общие для всех подкоманд.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	env := logger.ParseEnv(cfg.Logging.Env)
	log := logger.Init(logger.Config{
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Env:       env,
		Level:     logger.ParseLevel(cfg.Logging.Level),
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	httputil.ExposeErrorDetails(env == logger.EnvDev)
	return cfg, log, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*postgres.DB, error) {
	db, err := postgres.New(ctx, postgres.PoolConfig{
		DSN:               cfg.Postgres.DSN,
		MaxConns:          cfg.Postgres.MaxConns,
		MinConns:          cfg.Postgres.MinConns,
		MaxConnLifetime:   cfg.MaxConnLifetime(),
		HealthCheckPeriod: cfg.HealthCheckPeriod(),
		ApplicationName:   cfg.Logging.Service,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return db, nil
}
