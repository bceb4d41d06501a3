// Package repo provides postgres access for holidays and jurisdictions
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"courtclock/internal/core/deadline"
	"courtclock/internal/modkit/repokit"
	perr "courtclock/internal/platform/errors"
	"courtclock/internal/platform/store"
	ptime "courtclock/internal/platform/time"
)

// Repo defines the repository contract for holidays
type Repo interface {
	ActiveHolidays(ctx context.Context, jurisdictionID string) ([]deadline.Holiday, error)
	ListYear(ctx context.Context, jurisdictionID string, year int) ([]deadline.Holiday, error)
	InsertHoliday(ctx context.Context, h deadline.Holiday) (bool, error)
	UpsertJurisdiction(ctx context.Context, j RowJurisdiction) error
	Jurisdiction(ctx context.Context, id string) (RowJurisdiction, error)
}

// RowJurisdiction is a jurisdictions row; the jsonb columns travel as raw JSON text
type RowJurisdiction struct {
	ID            string
	Name          string
	TimeZone      string
	BusinessHours string
	Settings      string
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

const holidayCols = `id::text, date, name, type::text, jurisdictions, affects_courts, is_active`

func scanHoliday(r store.Row) (deadline.Holiday, error) {
	var (
		h   deadline.Holiday
		typ string
		d   time.Time
	)
	if err := r.Scan(&h.ID, &d, &h.Name, &typ, &h.Jurisdictions, &h.AffectsCourts, &h.IsActive); err != nil {
		return h, err
	}
	h.Date = ptime.Day(d)
	h.Type = deadline.HolidayType(typ)
	return h, nil
}

func (r *queries) ActiveHolidays(ctx context.Context, jurisdictionID string) ([]deadline.Holiday, error) {
	const sql = `
select ` + holidayCols + `
from holidays
where is_active
and (type = 'FEDERAL' or $1 = any(jurisdictions))
order by date, name
`
	out, err := store.Many(ctx, r.q, scanHoliday, sql, jurisdictionID)
	return out, perr.FromPostgresf(err, "active holidays for %q", jurisdictionID)
}

func (r *queries) ListYear(ctx context.Context, jurisdictionID string, year int) ([]deadline.Holiday, error) {
	const sql = `
select ` + holidayCols + `
from holidays
where is_active
and (type = 'FEDERAL' or $1 = any(jurisdictions))
and date >= make_date($2, 1, 1) and date < make_date($2 + 1, 1, 1)
order by date, name
`
	out, err := store.Many(ctx, r.q, scanHoliday, sql, jurisdictionID, year)
	return out, perr.FromPostgresf(err, "holidays for %q in %d", jurisdictionID, year)
}

func (r *queries) InsertHoliday(ctx context.Context, h deadline.Holiday) (bool, error) {
	const sql = `
insert into holidays (id, date, name, type, jurisdictions, affects_courts, is_active)
values ($1, $2::date, $3, $4::holiday_type, $5, $6, $7)
on conflict (date, name, type) do nothing
`
	id := h.ID
	if id == "" {
		id = uuid.NewString()
	}
	jur := h.Jurisdictions
	if jur == nil {
		jur = []string{}
	}
	tag, err := r.q.Exec(ctx, sql, id, ptime.FormatDate(h.Date), h.Name, string(h.Type), jur, h.AffectsCourts, h.IsActive)
	if err != nil {
		return false, perr.FromPostgresf(err, "insert holiday %q on %s", h.Name, ptime.FormatDate(h.Date))
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) UpsertJurisdiction(ctx context.Context, j RowJurisdiction) error {
	const sql = `
insert into jurisdictions (id, name, time_zone, business_hours, settings)
values ($1, $2, $3, $4::jsonb, $5::jsonb)
on conflict (id) do update
set name = excluded.name,
    time_zone = excluded.time_zone,
    business_hours = excluded.business_hours,
    settings = excluded.settings
`
	_, err := r.q.Exec(ctx, sql, j.ID, j.Name, j.TimeZone, j.BusinessHours, j.Settings)
	return perr.FromPostgresf(err, "upsert jurisdiction %q", j.ID)
}

func (r *queries) Jurisdiction(ctx context.Context, id string) (RowJurisdiction, error) {
	const sql = `
select id, name, time_zone, business_hours::text, settings::text
from jurisdictions
where id = $1
`
	j, err := store.One(ctx, r.q, func(row store.Row) (RowJurisdiction, error) {
		var j RowJurisdiction
		err := row.Scan(&j.ID, &j.Name, &j.TimeZone, &j.BusinessHours, &j.Settings)
		return j, err
	}, sql, id)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return j, perr.NotFoundf("jurisdiction %q not found", id)
	}
	return j, perr.FromPostgresf(err, "jurisdiction %q", id)
}
