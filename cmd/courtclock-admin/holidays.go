package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"courtclock/internal/modkit/repokit"
	"courtclock/internal/platform/config"
	"courtclock/internal/platform/logger"
	"courtclock/internal/platform/store"
	"courtclock/internal/services/api/holidays/domain"
	holidaysrepo "courtclock/internal/services/api/holidays/repo"
	holidayssvc "courtclock/internal/services/api/holidays/service"
)

// holidayStore is what the holidays commands need from the service
type holidayStore interface {
	Seed(ctx context.Context, in domain.SeedInput) (domain.SeedResult, error)
	Import(ctx context.Context, in domain.ImportInput) (domain.ImportResult, error)
}

// openHolidays opens postgres and returns the service plus a closer; a seam for tests
var openHolidays = func(ctx context.Context, cfg config.Conf) (holidayStore, func(), error) {
	st, err := store.Open(ctx, store.ConfigFromEnv("courtclock-admin", cfg), store.WithLogger(*logger.Get()))
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := st.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close store")
		}
	}
	if err := st.Guard(ctx); err != nil {
		closer()
		return nil, nil, err
	}
	timeout := cfg.Prefix("DEADLINES_").MayDuration("HOLIDAY_WRITE_TIMEOUT", 10*time.Second)
	var db repokit.TxRunner = st.PG
	return holidayssvc.New(db, holidaysrepo.NewPG(), timeout), closer, nil
}

func newHolidaysCmd(cfg config.Conf) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Maintain the holiday catalog",
	}

	now := time.Now().UTC().Year()
	var from, to int
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Store generated federal holidays for a range of years",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			svc, closer, err := openHolidays(c.Context(), cfg)
			if err != nil {
				return err
			}
			defer closer()
			res, err := svc.Seed(c.Context(), domain.SeedInput{From: from, To: to})
			if err != nil {
				return err
			}
			return printJSON(c, res)
		},
	}
	seed.Flags().IntVar(&from, "from", now, "first year to seed")
	seed.Flags().IntVar(&to, "to", now+5, "last year to seed")

	var file string
	imp := &cobra.Command{
		Use:   "import",
		Short: "Import jurisdictions and holidays from a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			in, err := readImport(file)
			if err != nil {
				return err
			}
			svc, closer, err := openHolidays(c.Context(), cfg)
			if err != nil {
				return err
			}
			defer closer()
			res, err := svc.Import(c.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(c, res)
		},
	}
	imp.Flags().StringVar(&file, "file", "", "path to the import document")
	_ = imp.MarkFlagRequired("file")

	cmd.AddCommand(seed, imp)
	return cmd
}

func readImport(path string) (domain.ImportInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.ImportInput{}, err
	}
	defer func() { _ = f.Close() }()
	return holidayssvc.DecodeImport(f)
}

func printJSON(c *cobra.Command, v any) error {
	enc := json.NewEncoder(c.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
