package repokit

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"courtclock/internal/platform/store"
)

type recQ struct {
	sqls []string
}

func (r *recQ) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	r.sqls = append(r.sqls, sql)
	return nil, nil
}

func (r *recQ) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	r.sqls = append(r.sqls, sql)
	return nil, nil
}

func (r *recQ) QueryRow(_ context.Context, sql string, _ ...any) store.Row {
	r.sqls = append(r.sqls, sql)
	return nil
}

type recTx struct {
	recQ
	txs int
}

func (r *recTx) Tx(ctx context.Context, fn func(Queryer) error) error {
	r.txs++
	return fn(&r.recQ)
}

func TestWithBeginHooks_RunBeforeFn(t *testing.T) {
	t.Parallel()
	inner := &recTx{}
	tx := WithBeginHooks(inner, StatementTimeout(1500*time.Millisecond))

	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "insert into holidays")
		return err
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{"set local statement_timeout = 1500", "insert into holidays"}
	if !slices.Equal(inner.sqls, want) || inner.txs != 1 {
		t.Fatalf("sqls = %v txs = %d", inner.sqls, inner.txs)
	}

	_, _ = tx.Exec(context.Background(), "select 1")
	if inner.sqls[len(inner.sqls)-1] != "select 1" {
		t.Fatal("non-tx calls should pass straight through")
	}
}

func TestWithBeginHooks_HookErrorStopsFn(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	called := false
	tx := WithBeginHooks(&recTx{}, func(context.Context, Queryer) error { return boom })
	err := tx.Tx(context.Background(), func(Queryer) error { called = true; return nil })
	if !errors.Is(err, boom) || called {
		t.Fatalf("err = %v called = %v", err, called)
	}
}

type named struct{ q Queryer }

func TestMustBind(t *testing.T) {
	t.Parallel()
	b := BindFunc[named](func(q Queryer) named { return named{q: q} })
	q := &recQ{}
	if got := MustBind[named](b, q); got.q != q {
		t.Fatal("binder should receive the queryer")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("nil queryer should panic")
		}
	}()
	MustBind[named](b, nil)
}

type fakeGuard struct{ err error }

func (f fakeGuard) Guard(context.Context) error { return f.err }

func TestMustGuard(t *testing.T) {
	t.Parallel()
	MustGuard(context.Background(), fakeGuard{})
	defer func() {
		if recover() == nil {
			t.Fatal("failing guard should panic")
		}
	}()
	MustGuard(context.Background(), fakeGuard{err: errors.New("down")})
}
