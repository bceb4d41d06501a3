package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"courtclock/internal/platform/config"
	perr "courtclock/internal/platform/errors"
	"courtclock/internal/platform/logger"
	kit "courtclock/internal/platform/testkit"
)

// fakeRows yields one []any per row
type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Next() bool { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     {}
func (r *fakeRows) Scan(dst ...any) error {
	row := r.data[r.i-1]
	for k := range dst {
		switch p := dst[k].(type) {
		case *string:
			*p = row[k].(string)
		case *int:
			*p = row[k].(int)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type fakeTag int64

func (t fakeTag) String() string      { return "INSERT 0" }
func (t fakeTag) RowsAffected() int64 { return int64(t) }

type fakeQ struct {
	rows     *fakeRows
	affected int64
	err      error
}

func (f fakeQ) Exec(context.Context, string, ...any) (CommandTag, error) {
	return fakeTag(f.affected), f.err
}
func (f fakeQ) Query(context.Context, string, ...any) (Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
func (f fakeQ) QueryRow(context.Context, string, ...any) Row { return rowOf{f.rows} }

type rowOf struct{ r *fakeRows }

func (x rowOf) Scan(dst ...any) error {
	if !x.r.Next() {
		return errors.New("no rows")
	}
	return x.r.Scan(dst...)
}

func scanName(r Row) (string, error) {
	var s string
	return s, r.Scan(&s)
}

func TestExecOne(t *testing.T) {
	ctx := context.Background()
	if err := ExecOne(ctx, fakeQ{affected: 1}, "insert"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := ExecOne(ctx, fakeQ{affected: 0}, "insert"); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	boom := errors.New("boom")
	if err := ExecOne(ctx, fakeQ{err: boom}, "insert"); !errors.Is(err, boom) {
		t.Fatalf("exec error lost: %v", err)
	}
}

func TestScalar(t *testing.T) {
	n, err := Scalar[int](context.Background(), fakeQ{rows: &fakeRows{data: [][]any{{42}}}}, "select")
	if err != nil || n != 42 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}
}

func TestOne(t *testing.T) {
	ctx := context.Background()

	got, err := One(ctx, fakeQ{rows: &fakeRows{data: [][]any{{"ca-superior"}}}}, scanName, "select")
	if err != nil || got != "ca-superior" {
		t.Fatalf("One = %q, %v", got, err)
	}
	if _, err := One(ctx, fakeQ{rows: &fakeRows{}}, scanName, "select"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := One(ctx, fakeQ{rows: &fakeRows{data: [][]any{{"a"}, {"b"}}}}, scanName, "select"); err == nil {
		t.Fatalf("expected error for multiple rows")
	}
}

func TestMany(t *testing.T) {
	ctx := context.Background()

	got, err := Many(ctx, fakeQ{rows: &fakeRows{data: [][]any{{"a"}, {"b"}}}}, scanName, "select")
	if err != nil || strings.Join(got, ",") != "a,b" {
		t.Fatalf("Many = %v, %v", got, err)
	}
	empty, err := Many(ctx, fakeQ{rows: &fakeRows{}}, scanName, "select")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty result should be non-nil empty slice, got %#v %v", empty, err)
	}
	iterErr := errors.New("iter")
	if _, err := Many(ctx, fakeQ{rows: &fakeRows{err: iterErr}}, scanName, "select"); !errors.Is(err, iterErr) {
		t.Fatalf("rows.Err lost: %v", err)
	}
}

type pingQ struct {
	fakeQ
	err    error
	closed bool
}

func (p *pingQ) Ping(context.Context) error { return p.err }
func (p *pingQ) Close() error               { p.closed = true; return nil }
func (p *pingQ) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return fn(p.fakeQ)
}

func TestGuardAndClose(t *testing.T) {
	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatalf("nil store should fail guard")
	}

	p := &pingQ{err: errors.New("down")}
	s := &Store{PG: p}
	if err := s.Guard(context.Background()); err == nil || !strings.Contains(err.Error(), "pg: down") {
		t.Fatalf("guard error = %v", err)
	}
	p.err = nil
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("healthy guard failed: %v", err)
	}
	if err := s.Close(); err != nil || !p.closed {
		t.Fatalf("close not forwarded")
	}
	if err := (&Store{}).Close(); err != nil {
		t.Fatalf("empty store close: %v", err)
	}
}

func TestOpen_DisabledPG(t *testing.T) {
	s, err := Open(context.Background(), Config{AppName: "courtclock"}, WithLogger(*logger.Get()))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if s.PG != nil {
		t.Fatalf("PG should stay nil when disabled")
	}
}

// a pool that never answers gives up after ConnectRetries pings
func TestOpen_PingRetriesExhausted(t *testing.T) {
	kit.Serial(t)
	var naps int
	kit.Swap(t, &sleep, func(time.Duration) { naps++ })

	_, err := Open(context.Background(), Config{PG: PGConfig{
		Enabled:        true,
		URL:            "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1",
		ConnectRetries: 2,
		PingTimeout:    time.Second,
	}})
	if err == nil || !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("expected retry exhaustion, got %v", err)
	}
	if naps != 2 {
		t.Fatalf("expected 2 backoff sleeps, got %d", naps)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_URL", "postgres://x@db/courtclock")
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "4")
	t.Setenv("SERVICE_PGSQL_LOG_SQL", "true")

	c := ConfigFromEnv("courtclock-api", config.New())
	if c.AppName != "courtclock-api" || c.PG.URL != "postgres://x@db/courtclock" || c.PG.MaxConns != 4 || !c.PG.LogSQL {
		t.Fatalf("unexpected config %+v", c)
	}
	if !c.PG.Enabled || c.PG.TxRetries != 3 {
		t.Fatalf("defaults not applied: %+v", c.PG)
	}
}
