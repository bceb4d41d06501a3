package deadline

import (
	"time"

	perr "courtclock/internal/platform/errors"
)

// DefaultMaxSkipRun caps consecutive skipped days before a calculation gives up
const DefaultMaxSkipRun = 366

// Adjuster moves a landing date off weekends and holidays
type Adjuster struct {
	classifier Classifier
	maxSkipRun int
}

// NewAdjuster returns an adjuster; maxSkipRun <= 0 means DefaultMaxSkipRun
func NewAdjuster(c Classifier, maxSkipRun int) Adjuster {
	if maxSkipRun <= 0 {
		maxSkipRun = DefaultMaxSkipRun
	}
	return Adjuster{classifier: c, maxSkipRun: maxSkipRun}
}

// NextValidDay returns d, or the first later day that is not a weekend and, when
// skipHolidays is set, not a court-affecting holiday
func (a Adjuster) NextValidDay(d time.Time, skipHolidays bool) (time.Time, error) {
	for i := 0; ; i++ {
		if !a.blocked(d, skipHolidays) {
			return d, nil
		}
		if i >= a.maxSkipRun {
			return time.Time{}, perr.Calculationf("no valid day within %d days after %s", a.maxSkipRun, DateKey(d.AddDate(0, 0, -i)))
		}
		d = d.AddDate(0, 0, 1)
	}
}

func (a Adjuster) blocked(d time.Time, skipHolidays bool) bool {
	return a.classifier.IsWeekend(d) || (skipHolidays && a.classifier.IsHoliday(d))
}
