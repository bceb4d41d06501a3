// Package service runs deadline calculations, batches, audits and calendar exports
package service

import (
	"context"
	"encoding/json"
	"time"

	"courtclock/internal/core/deadline"
	"courtclock/internal/modkit/repokit"
	perr "courtclock/internal/platform/errors"
	"courtclock/internal/platform/logger"
	"courtclock/internal/platform/metrics"
	"courtclock/internal/platform/net/http/bind"
	"courtclock/internal/services/api/deadlines/domain"
	"courtclock/internal/services/api/deadlines/repo"
)

// Service defines the service contract for deadlines
type Service interface {
	domain.ServicePort
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	holidays deadline.HolidaySource
	zones    domain.ZoneLookup
	cfg      Config
}

// New creates a deadlines service
// A nil db disables audits; a nil holiday source makes every catalog Failed
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], holidays deadline.HolidaySource, zones domain.ZoneLookup, cfg Config) *Svc {
	if binder == nil {
		panic("deadlines.Service requires a non nil Repo binder")
	}
	s := &Svc{binder: binder, db: db, holidays: holidays, zones: zones, cfg: cfg}
	if db != nil {
		s.Repo = binder.Bind(db)
	}
	return s
}

func (s *Svc) engine(cal deadline.Calendar) *deadline.Engine {
	return deadline.NewEngine(cal, deadline.WithMaxSkipRun(s.cfg.MaxSkipRun))
}

// catalog loads holidays only for methods that consult them
func (s *Svc) catalog(ctx context.Context, in deadline.Input) *deadline.Catalog {
	if !in.CalculationMethod.UsesHolidays() {
		return deadline.NewCatalog(in.JurisdictionID, nil)
	}
	c := deadline.LoadCatalog(ctx, s.holidays, in.JurisdictionID, s.cfg.HolidayTimeout)
	observeCatalog(ctx, c)
	return c
}

func observeCatalog(ctx context.Context, c *deadline.Catalog) {
	metrics.HolidayCatalogLoads.WithLabelValues(c.Status().String()).Inc()
	if c.Status() == deadline.CatalogFailed {
		logger.C(ctx).Warn().Err(c.Err()).Str("jurisdiction_id", c.JurisdictionID()).Msg("holiday catalog unavailable")
	}
}

// Calculate runs one calculation and persists an audit when asked
func (s *Svc) Calculate(ctx context.Context, in domain.CalculateRequest) (domain.CalculateResponse, error) {
	if err := bind.Validate(in); err != nil {
		return domain.CalculateResponse{}, err
	}
	res, err := s.calculate(ctx, in.CalculateInput)
	if err != nil {
		return domain.CalculateResponse{}, err
	}

	out := domain.CalculateResponse{Result: domain.FromResult(res)}
	if !in.Save {
		return out, nil
	}
	rec, err := s.Save(ctx, domain.SaveInput{Input: in.CalculateInput, Result: out.Result, CaseID: in.CaseID, RuleID: in.RuleID})
	if err != nil {
		return domain.CalculateResponse{}, err
	}
	out.AuditID = rec.ID
	return out, nil
}

func (s *Svc) calculate(ctx context.Context, in domain.CalculateInput) (deadline.Result, error) {
	ein, err := in.ToEngine()
	if err != nil {
		return deadline.Result{}, err
	}
	ctx = logger.WithJurisdiction(ctx, ein.JurisdictionID)
	c := s.catalog(ctx, ein)
	return s.run(ctx, s.engine(deadline.Catalogs{ein.JurisdictionID: c}), ein)
}

func (s *Svc) run(ctx context.Context, e *deadline.Engine, in deadline.Input) (deadline.Result, error) {
	method := string(in.CalculationMethod)
	start := time.Now()
	res, err := e.Calculate(in)
	took := time.Since(start)
	metrics.CalculationDuration.WithLabelValues(method).Observe(took.Seconds())
	metrics.CalculationsTotal.WithLabelValues(method, outcome(res, err)).Inc()
	if s.cfg.SlowCalculation > 0 && took > s.cfg.SlowCalculation {
		logger.C(ctx).Warn().Str("method", method).Dur("took", took).Msg("slow calculation")
	}
	return res, err
}

func outcome(res deadline.Result, err error) string {
	switch {
	case err != nil || res.Failed():
		return "error"
	case len(res.Warnings) > 0:
		return "warning"
	default:
		return "ok"
	}
}

// Bulk runs an ordered batch; invalid or failing items are reported in place
func (s *Svc) Bulk(ctx context.Context, in domain.BulkInput) (domain.BulkResponse, error) {
	if err := bind.Validate(in); err != nil {
		return domain.BulkResponse{}, err
	}
	if s.cfg.BulkMax > 0 && len(in.Items) > s.cfg.BulkMax {
		return domain.BulkResponse{}, perr.Validationf("items", "items must be at most %d", s.cfg.BulkMax)
	}

	items := make([]domain.BulkItem, len(in.Items))
	var (
		valid []deadline.Input
		at    []int
		ids   []string
	)
	for i, raw := range in.Items {
		items[i] = domain.BulkItem{Index: i, Input: raw}
		ein, err := itemInput(raw)
		if err != nil {
			items[i].Error = errText(err)
			metrics.CalculationsTotal.WithLabelValues(methodLabel(raw.CalculationMethod), "error").Inc()
			continue
		}
		valid = append(valid, ein)
		at = append(at, i)
		if ein.CalculationMethod.UsesHolidays() {
			ids = append(ids, ein.JurisdictionID)
		}
	}

	cats := deadline.LoadCatalogs(ctx, s.holidays, ids, s.cfg.HolidayTimeout)
	for _, c := range cats {
		observeCatalog(ctx, c)
	}
	e := s.engine(cats)
	results := deadline.NewCoordinator(e, s.cfg.BulkParallelism).CalculateBulk(ctx, valid)

	for k, res := range results {
		i := at[k]
		metrics.CalculationsTotal.WithLabelValues(string(valid[k].CalculationMethod), outcome(res, nil)).Inc()
		if res.Failed() {
			msg := res.FailureMessage()
			items[i].Error = &msg
			continue
		}
		wire := domain.FromResult(res)
		items[i].Result = &wire
	}

	sum := domain.BulkSummary{Total: len(items)}
	for _, it := range items {
		if it.Error != nil {
			sum.Failed++
			metrics.BulkItemsTotal.WithLabelValues("error").Inc()
			logger.C(ctx).Warn().Int("index", it.Index).Str("error", *it.Error).Msg("bulk item failed")
			continue
		}
		sum.Successful++
		metrics.BulkItemsTotal.WithLabelValues("ok").Inc()
	}

	if in.Save && sum.Successful > 0 {
		if err := s.saveBulk(ctx, in.CaseID, items); err != nil {
			return domain.BulkResponse{}, err
		}
	}
	return domain.BulkResponse{Items: items, Summary: sum}, nil
}

// methodLabel keeps metric cardinality bounded for rejected inputs
func methodLabel(m string) string {
	if deadline.Method(m).Valid() {
		return m
	}
	return "unknown"
}

func itemInput(in domain.CalculateInput) (deadline.Input, error) {
	if err := bind.Validate(in); err != nil {
		return deadline.Input{}, err
	}
	ein, err := in.ToEngine()
	if err != nil {
		return deadline.Input{}, err
	}
	if err := ein.Validate(); err != nil {
		return deadline.Input{}, err
	}
	return ein, nil
}

func errText(err error) *string {
	msg := err.Error()
	if e, ok := perr.As(err); ok {
		msg = e.Message()
	}
	return &msg
}

// saveBulk writes successful items in input order inside one transaction
func (s *Svc) saveBulk(ctx context.Context, caseID string, items []domain.BulkItem) error {
	if s.db == nil {
		return perr.Unavailablef("audit store is not configured")
	}
	rows := make([]repo.AuditRow, 0, len(items))
	owners := make([]int, 0, len(items))
	for i, it := range items {
		if it.Result == nil {
			continue
		}
		row, err := auditRow(domain.SaveInput{Input: it.Input, Result: *it.Result, CaseID: caseID})
		if err != nil {
			return err
		}
		rows = append(rows, row)
		owners = append(owners, i)
	}
	return repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		for k, row := range rows {
			rec, err := r.InsertAudit(ctx, row)
			if err != nil {
				return err
			}
			items[owners[k]].AuditID = rec.ID
			metrics.AuditRecordsTotal.Inc()
		}
		logger.C(ctx).Debug().Int("records", len(rows)).Str("case_id", caseID).Msg("bulk audits written")
		return nil
	})
}

// Save persists an immutable snapshot of an input and its result
func (s *Svc) Save(ctx context.Context, in domain.SaveInput) (domain.AuditRecord, error) {
	if s.db == nil {
		return domain.AuditRecord{}, perr.Unavailablef("audit store is not configured")
	}
	if err := bind.Validate(in); err != nil {
		return domain.AuditRecord{}, err
	}
	row, err := auditRow(in)
	if err != nil {
		return domain.AuditRecord{}, err
	}
	rec, err := s.Repo.InsertAudit(ctx, row)
	if err != nil {
		return domain.AuditRecord{}, err
	}
	metrics.AuditRecordsTotal.Inc()
	logger.C(ctx).Debug().Str("audit_id", rec.ID).Str("case_id", in.CaseID).Msg("calculation audit written")
	return domain.AuditRecord{
		ID:        rec.ID,
		CaseID:    in.CaseID,
		RuleID:    in.RuleID,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func auditRow(in domain.SaveInput) (repo.AuditRow, error) {
	input, err := json.Marshal(in.Input)
	if err != nil {
		return repo.AuditRow{}, perr.Wrap(err, perr.ErrorCodeJSON, "encode audit input")
	}
	result, err := json.Marshal(in.Result)
	if err != nil {
		return repo.AuditRow{}, perr.Wrap(err, perr.ErrorCodeJSON, "encode audit result")
	}
	return repo.AuditRow{CaseID: in.CaseID, RuleID: in.RuleID, Input: input, Result: result}, nil
}
