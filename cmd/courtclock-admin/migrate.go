package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"courtclock/internal/platform/config"
	"courtclock/internal/platform/logger"
	"courtclock/internal/platform/store"
	"courtclock/internal/platform/store/migrate"
)

// migrate hooks are seams for tests
var (
	migrateUp     = migrate.Up
	migrateDown   = migrate.Down
	migrateStatus = migrate.Current
)

func newMigrateCmd(cfg config.Conf) *cobra.Command {
	var dbURL string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded schema migrations",
	}
	cmd.PersistentFlags().StringVar(&dbURL, "db", "", "postgres url; default from SERVICE_PGSQL_URL")
	url := func() string {
		if dbURL != "" {
			return dbURL
		}
		return store.ConfigFromEnv("courtclock-admin", cfg).PG.URL
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := migrateUp(url()); err != nil {
				return err
			}
			logger.Named("migrate").Info().Msg("schema up to date")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := migrateDown(url(), steps); err != nil {
				return err
			}
			logger.Named("migrate").Info().Int("steps", steps).Msg("migrations rolled back")
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	status := &cobra.Command{
		Use:   "status",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			st, err := migrateStatus(url())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(c.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		},
	}

	cmd.AddCommand(up, down, status)
	return cmd
}
