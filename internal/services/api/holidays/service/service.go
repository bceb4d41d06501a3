// Package service contains holiday catalog workflows
package service

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"courtclock/internal/core/deadline"
	"courtclock/internal/modkit/repokit"
	perr "courtclock/internal/platform/errors"
	"courtclock/internal/platform/logger"
	"courtclock/internal/platform/net/http/bind"
	ptime "courtclock/internal/platform/time"
	"courtclock/internal/services/api/holidays/domain"
	"courtclock/internal/services/api/holidays/repo"
)

// Service defines the service contract for holidays
type Service interface {
	domain.ServicePort
	deadline.HolidaySource
	domain.ZonePort
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	// writeTimeout bounds each statement of a seed or import transaction
	writeTimeout time.Duration
}

// New creates a new holidays service; a nil db yields a service whose storage calls are Unavailable
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], writeTimeout time.Duration) *Svc {
	if binder == nil {
		panic("holidays.Service requires a non nil Repo binder")
	}
	s := &Svc{binder: binder, db: db, writeTimeout: writeTimeout}
	if db != nil {
		s.Repo = binder.Bind(db)
	}
	return s
}

func (s *Svc) ready() error {
	if s.db == nil {
		return perr.Unavailablef("holiday store is not configured")
	}
	return nil
}

// ActiveHolidays implements deadline.HolidaySource
func (s *Svc) ActiveHolidays(ctx context.Context, jurisdictionID string) ([]deadline.Holiday, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repo.ActiveHolidays(ctx, jurisdictionID)
}

// TimeZone returns the jurisdiction's time zone; unknown ids are NotFound
func (s *Svc) TimeZone(ctx context.Context, jurisdictionID string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	j, err := s.Repo.Jurisdiction(ctx, jurisdictionID)
	if err != nil {
		return "", err
	}
	return j.TimeZone, nil
}

// List returns the active holidays a jurisdiction observes in a year, federal included
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Holiday, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.Repo.ListYear(ctx, in.JurisdictionID, in.Year)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Holiday, 0, len(rows))
	for _, h := range rows {
		out = append(out, toWire(h))
	}
	return out, nil
}

// Federal previews the generated federal holidays of a year
func (s *Svc) Federal(_ context.Context, in domain.YearInput) ([]domain.FederalHoliday, error) {
	hs := deadline.FederalHolidays(in.Year)
	out := make([]domain.FederalHoliday, 0, len(hs))
	for _, h := range hs {
		out = append(out, domain.FederalHoliday{Name: h.Name, Date: ptime.FormatDate(h.Date)})
	}
	return out, nil
}

// Seed stores the generated federal holidays for every year in the range
// Existing rows are left untouched, so seeding is repeatable
func (s *Svc) Seed(ctx context.Context, in domain.SeedInput) (domain.SeedResult, error) {
	if err := s.ready(); err != nil {
		return domain.SeedResult{}, err
	}
	if err := bind.Validate(in); err != nil {
		return domain.SeedResult{}, err
	}
	var res domain.SeedResult
	err := s.tx(ctx, func(r repo.Repo) error {
		res = domain.SeedResult{}
		for _, h := range deadline.FederalCatalogHolidays(in.From, in.To) {
			if err := insertCounting(ctx, r, h, &res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.SeedResult{}, err
	}
	logger.C(ctx).Info().Int("from", in.From).Int("to", in.To).
		Int("inserted", res.Inserted).Int("skipped", res.Skipped).Msg("federal holidays seeded")
	return res, nil
}

// Import upserts jurisdictions and inserts holidays in one transaction
func (s *Svc) Import(ctx context.Context, in domain.ImportInput) (domain.ImportResult, error) {
	if err := s.ready(); err != nil {
		return domain.ImportResult{}, err
	}
	hs, err := ImportHolidays(in)
	if err != nil {
		return domain.ImportResult{}, err
	}
	rows := make([]repo.RowJurisdiction, 0, len(in.Jurisdictions))
	for _, j := range in.Jurisdictions {
		row, err := jurisdictionRow(j)
		if err != nil {
			return domain.ImportResult{}, err
		}
		rows = append(rows, row)
	}

	var res domain.ImportResult
	err = s.tx(ctx, func(r repo.Repo) error {
		res = domain.ImportResult{}
		for _, j := range rows {
			if err := r.UpsertJurisdiction(ctx, j); err != nil {
				return err
			}
			res.Jurisdictions++
		}
		for _, h := range hs {
			if err := insertCounting(ctx, r, h, &res.SeedResult); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.ImportResult{}, err
	}
	logger.C(ctx).Info().Int("jurisdictions", res.Jurisdictions).
		Int("inserted", res.Inserted).Int("skipped", res.Skipped).Msg("holidays imported")
	return res, nil
}

func (s *Svc) tx(ctx context.Context, fn func(repo.Repo) error) error {
	runner := s.db
	if s.writeTimeout > 0 {
		runner = repokit.WithBeginHooks(s.db, repokit.StatementTimeout(s.writeTimeout))
	}
	return repokit.WithTx(ctx, runner, func(q repokit.Queryer) error {
		return fn(repokit.MustBind(s.binder, q))
	})
}

func insertCounting(ctx context.Context, r repo.Repo, h deadline.Holiday, res *domain.SeedResult) error {
	ok, err := r.InsertHoliday(ctx, h)
	if err != nil {
		return err
	}
	if ok {
		res.Inserted++
	} else {
		res.Skipped++
	}
	return nil
}

// ImportHolidays validates an import batch and converts its holidays to catalog records
// Federal holidays apply everywhere and must not name jurisdictions; all others must
// Names are stored in NFC so composed and decomposed spellings collide on (date, name, type)
func ImportHolidays(in domain.ImportInput) ([]deadline.Holiday, error) {
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	out := make([]deadline.Holiday, 0, len(in.Holidays))
	for i, h := range in.Holidays {
		d, err := ptime.ParseDate("date", h.Date)
		if err != nil {
			return nil, perr.WithField(err, fieldAt(i, "date"))
		}
		typ := deadline.HolidayType(h.Type)
		switch {
		case typ == deadline.HolidayFederal && len(h.Jurisdictions) > 0:
			return nil, perr.Validationf(fieldAt(i, "jurisdictions"), "federal holiday %q must not name jurisdictions", h.Name)
		case typ != deadline.HolidayFederal && len(h.Jurisdictions) == 0:
			return nil, perr.Validationf(fieldAt(i, "jurisdictions"), "%s holiday %q needs at least one jurisdiction", typ, h.Name)
		}
		out = append(out, deadline.Holiday{
			Date:          d,
			Name:          norm.NFC.String(h.Name),
			Type:          typ,
			Jurisdictions: h.Jurisdictions,
			AffectsCourts: boolOr(h.AffectsCourts, true),
			IsActive:      boolOr(h.IsActive, true),
		})
	}
	return out, nil
}

// DecodeImport reads an import document; YAML is a superset of JSON so both are accepted
func DecodeImport(r io.Reader) (domain.ImportInput, error) {
	var in domain.ImportInput
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		if err == io.EOF {
			return in, perr.JSONErrf("empty import document")
		}
		return in, perr.JSONErrf("invalid import document: %v", err)
	}
	return in, nil
}

func jurisdictionRow(j domain.Jurisdiction) (repo.RowJurisdiction, error) {
	hours, err := jsonText(j.BusinessHours)
	if err != nil {
		return repo.RowJurisdiction{}, perr.Validationf("business_hours", "jurisdiction %q business_hours: %v", j.ID, err)
	}
	settings, err := jsonText(j.Settings)
	if err != nil {
		return repo.RowJurisdiction{}, perr.Validationf("settings", "jurisdiction %q settings: %v", j.ID, err)
	}
	tz := j.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	return repo.RowJurisdiction{ID: j.ID, Name: j.Name, TimeZone: tz, BusinessHours: hours, Settings: settings}, nil
}

func jsonText[T any](v map[string]T) (string, error) {
	if len(v) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func toWire(h deadline.Holiday) domain.Holiday {
	jur := h.Jurisdictions
	if jur == nil {
		jur = []string{}
	}
	return domain.Holiday{
		ID:            h.ID,
		Date:          ptime.FormatDate(h.Date),
		Name:          h.Name,
		Type:          string(h.Type),
		Jurisdictions: jur,
		AffectsCourts: h.AffectsCourts,
		IsActive:      h.IsActive,
	}
}

func fieldAt(i int, name string) string { return "holidays[" + strconv.Itoa(i) + "]." + name }

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
