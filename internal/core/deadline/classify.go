package deadline

import "time"

// IsWeekend reports whether d falls on a Saturday or Sunday
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Classifier answers day questions against one jurisdiction's catalog
type Classifier struct {
	catalog *Catalog
}

// NewClassifier returns a classifier over c; a nil catalog has no holidays
func NewClassifier(c *Catalog) Classifier { return Classifier{catalog: c} }

// IsWeekend reports whether d is a weekend day
func (Classifier) IsWeekend(d time.Time) bool { return IsWeekend(d) }

// IsHoliday reports whether d carries a holiday that closes the courts
func (c Classifier) IsHoliday(d time.Time) bool {
	for _, h := range c.catalog.Lookup(d) {
		if h.AffectsCourts {
			return true
		}
	}
	return false
}

// HolidayName returns the first court-affecting holiday name on d, or ""
func (c Classifier) HolidayName(d time.Time) string {
	for _, h := range c.catalog.Lookup(d) {
		if h.AffectsCourts {
			return h.Name
		}
	}
	return ""
}
