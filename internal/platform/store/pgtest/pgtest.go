//go:build integration_pg

// Package pgtest starts a throwaway postgres container for integration tests
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"courtclock/internal/platform/store"
	"courtclock/internal/platform/store/migrate"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Start runs postgres:16-alpine and returns its DSN; the container stops on test cleanup
func Start(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "courtclock",
				"POSTGRES_PASSWORD": "courtclock",
				"POSTGRES_DB":       "courtclock",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://courtclock:courtclock@%s:%s/courtclock?sslmode=disable", host, port.Port())
}

// Migrated starts postgres, applies every migration and opens a Store on it
func Migrated(t *testing.T) (*store.Store, string) {
	t.Helper()
	dsn := Start(t)
	if err := migrate.Up(dsn); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	s, err := store.Open(context.Background(), store.Config{
		AppName: "courtclock-test",
		PG:      store.PGConfig{Enabled: true, URL: dsn, ConnectRetries: 10, TxRetries: 2},
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, dsn
}
