package store

import (
	"context"
	"errors"
	"time"

	perr "courtclock/internal/platform/errors"
	"courtclock/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgAdapter wraps pg.PG and implements TxRunner, tracing every statement when a tracer is set
type pgAdapter struct {
	p         *pg.PG
	txRetries int
}

func newPGAdapter(p *pg.PG, txRetries int) *pgAdapter {
	return &pgAdapter{p: p, txRetries: max(txRetries, 0)}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := a.p.Pool.Exec(ctx, sql, args...)
	emit(ctx, a.p.Tracer, a.p.SlowMs, sql, args, start, err)
	return tag{ct}, err
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.p.Pool.Query(ctx, sql, args...)
	emit(ctx, a.p.Tracer, a.p.SlowMs, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.p.Pool.QueryRow(ctx, sql, args...)
	return row{r: r, after: func(scanErr error) {
		emit(ctx, a.p.Tracer, a.p.SlowMs, sql, args, start, scanErr)
	}}
}

// Tx runs fn in a transaction, retrying the whole function on serialization failures
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	var err error
	for attempt := 0; attempt <= a.txRetries; attempt++ {
		err = a.txOnce(ctx, fn)
		if err == nil || !perr.IsRetryable(err) {
			return err
		}
	}
	return err
}

func (a *pgAdapter) txOnce(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(txQuerier{tx: tx, tracer: a.p.Tracer, slowMs: a.p.SlowMs}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func emit(ctx context.Context, tracer pg.QueryTracer, slowMs int, sql string, args []any, start time.Time, err error) {
	if tracer == nil {
		return
	}
	elapsed := time.Since(start)
	tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsed.Microseconds(),
		Err:       err,
		Slow:      slowMs >= 0 && elapsed >= time.Duration(slowMs)*time.Millisecond,
	})
}

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type tag struct{ t pgconn.CommandTag }

func (t tag) String() string      { return t.t.String() }
func (t tag) RowsAffected() int64 { return t.t.RowsAffected() }

// txQuerier satisfies RowQuerier inside a Tx with the same tracing as pgAdapter
type txQuerier struct {
	tx     pgx.Tx
	tracer pg.QueryTracer
	slowMs int
}

func (t txQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.tx.Exec(ctx, sql, args...)
	emit(ctx, t.tracer, t.slowMs, sql, args, start, err)
	return tag{ct}, err
}

func (t txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.tx.Query(ctx, sql, args...)
	emit(ctx, t.tracer, t.slowMs, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (t txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := t.tx.QueryRow(ctx, sql, args...)
	return row{r: r, after: func(scanErr error) {
		emit(ctx, t.tracer, t.slowMs, sql, args, start, scanErr)
	}}
}
