// Package http provides http transport for deadlines
package http

import (
	stdhttp "net/http"

	"courtclock/internal/modkit/httpkit"
	"courtclock/internal/services/api/deadlines/domain"
)

const calendarContentType = "text/calendar; charset=utf-8"

// Register mounts deadlines endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/calculate", h.calculate)
	httpkit.PostJSON(r, "/bulk", h.bulk)
	httpkit.PostJSON(r, "/audit", h.audit)
	httpkit.PostJSON(r, "/ics", h.ics)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Calculate one deadline
// @Tags Deadlines
// @Accept json
// @Produce json
// @Param payload body domain.CalculateRequest true "Calculation"
// @Success 200 {object} domain.CalculateResponse "ok"
// @Failure 400 {object} errors.Wire "invalid input"
// @Failure 422 {object} errors.Wire "no deadline could be produced"
// @Router /deadlines/calculate [post]
func (h *handlers) calculate(r *stdhttp.Request, in domain.CalculateRequest) (any, error) {
	return h.svc.Calculate(r.Context(), in)
}

// @Summary Calculate an ordered batch of deadlines
// @Tags Deadlines
// @Accept json
// @Produce json
// @Param payload body domain.BulkInput true "Batch"
// @Success 200 {object} domain.BulkResponse "ok"
// @Router /deadlines/bulk [post]
func (h *handlers) bulk(r *stdhttp.Request, in domain.BulkInput) (any, error) {
	return h.svc.Bulk(r.Context(), in)
}

// @Summary Store a calculation audit record
// @Tags Deadlines
// @Accept json
// @Produce json
// @Param payload body domain.SaveInput true "Snapshot"
// @Success 201 {object} domain.AuditRecord "created"
// @Router /deadlines/audit [post]
func (h *handlers) audit(r *stdhttp.Request, in domain.SaveInput) (any, error) {
	rec, err := h.svc.Save(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(rec), nil
}

// @Summary Calculate a deadline and export it as an iCalendar event
// @Tags Deadlines
// @Accept json
// @Produce text/calendar
// @Param payload body domain.ICSInput true "Calculation"
// @Success 200 {string} string "VCALENDAR document"
// @Router /deadlines/ics [post]
func (h *handlers) ics(r *stdhttp.Request, in domain.ICSInput) (any, error) {
	b, err := h.svc.ICS(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Raw(calendarContentType, b), nil
}
