package deadline

import (
	"context"
	"slices"
	"time"

	perr "courtclock/internal/platform/errors"
	ptime "courtclock/internal/platform/time"
)

// Holiday is one holiday record as stored for a jurisdiction
type Holiday struct {
	ID            string      `json:"id,omitempty"`
	Date          time.Time   `json:"date"`
	Name          string      `json:"name"`
	Type          HolidayType `json:"type"`
	Jurisdictions []string    `json:"jurisdictions"`
	AffectsCourts bool        `json:"affects_courts"`
	IsActive      bool        `json:"is_active"`
}

// AppliesTo reports whether h is observed in jurisdictionID
// Federal holidays apply everywhere
func (h Holiday) AppliesTo(jurisdictionID string) bool {
	return h.Type == HolidayFederal || slices.Contains(h.Jurisdictions, jurisdictionID)
}

// CatalogStatus distinguishes an empty holiday set from one that failed to load
type CatalogStatus int

// Catalog states
const (
	CatalogLoaded CatalogStatus = iota
	CatalogEmpty
	CatalogFailed
)

// String names a status for logs and metric labels
func (s CatalogStatus) String() string {
	switch s {
	case CatalogLoaded:
		return "loaded"
	case CatalogEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// Catalog is a date-indexed set of a jurisdiction's active holidays
// It is read-only after construction and safe for concurrent reads
type Catalog struct {
	jurisdictionID string
	status         CatalogStatus
	err            error
	byDate         map[string][]Holiday
}

// DateKey is the index key for d: its wall date as YYYY-MM-DD
func DateKey(d time.Time) string { return ptime.FormatDate(d) }

// NewCatalog indexes the active holidays of hs that apply to jurisdictionID
func NewCatalog(jurisdictionID string, hs []Holiday) *Catalog {
	c := &Catalog{jurisdictionID: jurisdictionID, byDate: make(map[string][]Holiday)}
	for _, h := range hs {
		if !h.IsActive || !h.AppliesTo(jurisdictionID) {
			continue
		}
		k := DateKey(h.Date)
		c.byDate[k] = append(c.byDate[k], h)
	}
	if len(c.byDate) == 0 {
		c.status = CatalogEmpty
	}
	return c
}

// FailedCatalog is an empty catalog that remembers why loading failed
func FailedCatalog(jurisdictionID string, err error) *Catalog {
	return &Catalog{jurisdictionID: jurisdictionID, status: CatalogFailed, err: err}
}

// JurisdictionID returns the jurisdiction the catalog was built for
func (c *Catalog) JurisdictionID() string {
	if c == nil {
		return ""
	}
	return c.jurisdictionID
}

// Status reports whether the catalog loaded, loaded empty, or failed
func (c *Catalog) Status() CatalogStatus {
	if c == nil {
		return CatalogEmpty
	}
	return c.status
}

// Err returns the load error of a failed catalog
func (c *Catalog) Err() error {
	if c == nil {
		return nil
	}
	return c.err
}

// Lookup returns the holidays on d's date, if any
func (c *Catalog) Lookup(d time.Time) []Holiday {
	if c == nil {
		return nil
	}
	return c.byDate[DateKey(d)]
}

// Len is the number of distinct holiday dates
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byDate)
}

// HolidaySource fetches active holidays that apply to a jurisdiction (federal included)
type HolidaySource interface {
	ActiveHolidays(ctx context.Context, jurisdictionID string) ([]Holiday, error)
}

// LoadCatalog fetches and indexes the holidays for jurisdictionID
// A fetch error or timeout yields a failed catalog, never an error, so the caller can
// still calculate and report the gap as a warning
func LoadCatalog(ctx context.Context, src HolidaySource, jurisdictionID string, timeout time.Duration) *Catalog {
	if src == nil {
		return FailedCatalog(jurisdictionID, perr.Unavailablef("no holiday source configured"))
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	hs, err := src.ActiveHolidays(ctx, jurisdictionID)
	if err != nil {
		return FailedCatalog(jurisdictionID, perr.Wrapf(err, perr.ErrorCodeUnavailable, "load holidays for %q", jurisdictionID))
	}
	return NewCatalog(jurisdictionID, hs)
}

// Calendar hands the engine the catalog for a jurisdiction
type Calendar interface {
	CatalogFor(jurisdictionID string) *Catalog
}

// Catalogs is a Calendar over catalogs loaded ahead of a calculation
// A jurisdiction that was never loaded resolves to a failed catalog
type Catalogs map[string]*Catalog

// CatalogFor implements Calendar
func (cs Catalogs) CatalogFor(jurisdictionID string) *Catalog {
	if c, ok := cs[jurisdictionID]; ok && c != nil {
		return c
	}
	return FailedCatalog(jurisdictionID, perr.Unavailablef("holidays for %q were not loaded", jurisdictionID))
}

// LoadCatalogs loads one catalog per distinct jurisdiction in ids
func LoadCatalogs(ctx context.Context, src HolidaySource, ids []string, timeout time.Duration) Catalogs {
	out := make(Catalogs, len(ids))
	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}
		out[id] = LoadCatalog(ctx, src, id, timeout)
	}
	return out
}

// StaticSource serves a fixed in-memory holiday list
type StaticSource []Holiday

// ActiveHolidays implements HolidaySource
func (s StaticSource) ActiveHolidays(_ context.Context, jurisdictionID string) ([]Holiday, error) {
	var out []Holiday
	for _, h := range s {
		if h.IsActive && h.AppliesTo(jurisdictionID) {
			out = append(out, h)
		}
	}
	return out, nil
}
