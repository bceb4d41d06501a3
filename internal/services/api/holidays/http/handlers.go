// Package http provides http transport for holidays
package http

import (
	stdhttp "net/http"

	"courtclock/internal/modkit/httpkit"
	"courtclock/internal/services/api/holidays/domain"
)

// Register mounts holidays endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/list", h.list)
	httpkit.PostJSON(r, "/federal", h.federal)
	httpkit.PostJSON(r, "/seed", h.seed)
	httpkit.PostJSON(r, "/import", h.importBatch)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Active holidays for a jurisdiction and year, federal included
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Query"
// @Success 200 {array} domain.Holiday "ok"
// @Router /holidays/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

// @Summary Generated federal holidays for a year
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body domain.YearInput true "Year"
// @Success 200 {array} domain.FederalHoliday "ok"
// @Router /holidays/federal [post]
func (h *handlers) federal(r *stdhttp.Request, in domain.YearInput) (any, error) {
	return h.svc.Federal(r.Context(), in)
}

// @Summary Store generated federal holidays for a range of years
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body domain.SeedInput true "Years"
// @Success 200 {object} domain.SeedResult "ok"
// @Router /holidays/seed [post]
func (h *handlers) seed(r *stdhttp.Request, in domain.SeedInput) (any, error) {
	return h.svc.Seed(r.Context(), in)
}

// @Summary Import jurisdictions and state, court or custom holidays
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body domain.ImportInput true "Batch"
// @Success 201 {object} domain.ImportResult "created"
// @Router /holidays/import [post]
func (h *handlers) importBatch(r *stdhttp.Request, in domain.ImportInput) (any, error) {
	res, err := h.svc.Import(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(res), nil
}
