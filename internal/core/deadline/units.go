package deadline

import (
	perr "courtclock/internal/platform/errors"
)

// Approximate lengths used when converting a time limit to days
const (
	minutesPerDay = 1440
	hoursPerDay   = 24
	daysPerWeek   = 7
	daysPerMonth  = 30
	daysPerYear   = 365
)

// ToDays converts quantity in unit to a (possibly fractional) number of days
func ToDays(quantity float64, unit Unit) (float64, error) {
	switch unit {
	case UnitMinutes:
		return quantity / minutesPerDay, nil
	case UnitHours:
		return quantity / hoursPerDay, nil
	case UnitDays:
		return quantity, nil
	case UnitWeeks:
		return quantity * daysPerWeek, nil
	case UnitMonths:
		return quantity * daysPerMonth, nil
	case UnitYears:
		return quantity * daysPerYear, nil
	}
	return 0, perr.Validationf("time_limit_unit", "unsupported time limit unit %q", unit)
}

// approximated reports whether converting unit uses the 30/365-day approximation
func approximated(unit Unit) bool { return unit == UnitMonths || unit == UnitYears }
