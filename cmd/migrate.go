package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/uniconnect/ama-service/internal/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(cmd.Context(), db.Pool); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Apply migrations and load demo hosts, sessions and chat",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(cmd.Context(), db.Pool); err != nil {
			return err
		}
		if err := postgres.Seed(cmd.Context(), db.Pool, time.Now().UTC()); err != nil {
			return err
		}
		log.Info("demo data seeded")
		return nil
	},
}
