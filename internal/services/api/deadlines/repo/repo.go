// Package repo provides postgres access for calculation audits
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"courtclock/internal/modkit/repokit"
	perr "courtclock/internal/platform/errors"
	pstrings "courtclock/internal/platform/strings"
)

// Repo defines the repository contract for calculation audits
type Repo interface {
	InsertAudit(ctx context.Context, a AuditRow) (RowAudit, error)
}

// AuditRow is one immutable snapshot; Input and Result are JSON documents
type AuditRow struct {
	CaseID string
	RuleID string
	Input  []byte
	Result []byte
}

// RowAudit is the stored identity of an audit row
type RowAudit struct {
	ID        string
	CreatedAt time.Time
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// InsertAudit writes a new row every call; there is no idempotency key
func (r *queries) InsertAudit(ctx context.Context, a AuditRow) (RowAudit, error) {
	const sql = `
insert into calculation_audits (id, case_id, rule_id, input, result)
values ($1, $2, $3, $4::jsonb, $5::jsonb)
returning id::text, created_at
`
	var out RowAudit
	err := r.q.QueryRow(ctx, sql, uuid.NewString(), pstrings.SQLNull(a.CaseID), pstrings.SQLNull(a.RuleID), string(a.Input), string(a.Result)).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return RowAudit{}, perr.FromPostgres(err, "insert calculation audit")
	}
	return out, nil
}
