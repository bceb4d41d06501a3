//go:build integration_pg

package migrate_test

import (
	"context"
	"testing"

	"courtclock/internal/platform/store"
	"courtclock/internal/platform/store/migrate"
	"courtclock/internal/platform/store/pgtest"
)

func TestUpDownUp_Integration(t *testing.T) {
	dsn := pgtest.Start(t)

	st, err := migrate.Current(dsn)
	if err != nil || st.Version != 0 {
		t.Fatalf("fresh db status = %+v, %v", st, err)
	}
	if err := migrate.Up(dsn); err != nil {
		t.Fatalf("up: %v", err)
	}
	// idempotent
	if err := migrate.Up(dsn); err != nil {
		t.Fatalf("second up: %v", err)
	}
	if st, _ := migrate.Current(dsn); st.Version != 1 || st.Dirty {
		t.Fatalf("after up status = %+v", st)
	}

	s, err := store.Open(context.Background(), store.Config{PG: store.PGConfig{Enabled: true, URL: dsn}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	n, err := store.Scalar[int](context.Background(), s.PG, "select count(*) from holidays")
	if err != nil || n != 0 {
		t.Fatalf("holidays table not ready: %d %v", n, err)
	}

	if err := migrate.Down(dsn, 1); err != nil {
		t.Fatalf("down: %v", err)
	}
	if err := migrate.Up(dsn); err != nil {
		t.Fatalf("re-up: %v", err)
	}
}
