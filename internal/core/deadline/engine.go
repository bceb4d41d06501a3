package deadline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	perr "courtclock/internal/platform/errors"
	ptime "courtclock/internal/platform/time"
)

// MaxTimeLimitDays bounds a converted time limit to roughly a century
const MaxTimeLimitDays = 36500

// Warnings the engine can attach to a result
const (
	WarnApproximated = "Month/year time limits are approximated as 30/365 days"
	WarnCustom       = "Custom calculation method not fully implemented"
	WarnAdjusted     = "Deadline fell on weekend, adjusted to next business day"
)

// WarnHolidaysUnavailable is the warning for a calculation that could not consult holidays
func WarnHolidaysUnavailable(jurisdictionID string) string {
	return fmt.Sprintf("Holiday data unavailable for jurisdiction %s; holidays were not applied", jurisdictionID)
}

// Engine runs single deadline calculations against preloaded holiday catalogs
type Engine struct {
	calendar   Calendar
	maxSkipRun int
}

// Option configures an Engine
type Option func(*Engine)

// WithMaxSkipRun caps consecutive skipped days in counting and adjustment
func WithMaxSkipRun(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSkipRun = n
		}
	}
}

// NewEngine returns an engine reading holidays from cal; a nil cal has no catalogs loaded
func NewEngine(cal Calendar, opts ...Option) *Engine {
	if cal == nil {
		cal = Catalogs{}
	}
	e := &Engine{calendar: cal, maxSkipRun: DefaultMaxSkipRun}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Validate checks the parts of in the engine cannot compute without
func (in Input) Validate() error {
	if in.TriggerDate.IsZero() {
		return perr.Validationf("trigger_date", "trigger_date is required")
	}
	if math.IsNaN(in.TimeLimit) || math.IsInf(in.TimeLimit, 0) || in.TimeLimit <= 0 {
		return perr.Validationf("time_limit", "time_limit must be greater than 0")
	}
	if !in.TimeLimitUnit.Valid() {
		return perr.Validationf("time_limit_unit", "unsupported time limit unit %q", in.TimeLimitUnit)
	}
	if !in.CalculationMethod.Valid() {
		return perr.Validationf("calculation_method", "unsupported calculation method %q", in.CalculationMethod)
	}
	return nil
}

// LimitDays converts the time limit of in to days, rejecting limits past MaxTimeLimitDays
func LimitDays(in Input) (float64, error) {
	days, err := ToDays(in.TimeLimit, in.TimeLimitUnit)
	if err != nil {
		return 0, err
	}
	if days > MaxTimeLimitDays {
		return 0, perr.Validationf("time_limit", "time_limit exceeds %d days", MaxTimeLimitDays)
	}
	return days, nil
}

// IsValidation reports whether err rejected the input itself
func IsValidation(err error) bool { return perr.IsCode(err, perr.ErrorCodeValidation) }

// IsCalculation reports whether err arose while computing a valid input
func IsCalculation(err error) bool { return perr.IsCode(err, perr.ErrorCodeCalculation) }

// Calculate computes one deadline and its audit trail
func (e *Engine) Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	days, err := LimitDays(in)
	if err != nil {
		return Result{}, err
	}

	method := in.CalculationMethod
	start := ptime.Day(in.TriggerDate)
	res := Result{CalculationSteps: []Step{}, Warnings: []string{}}
	res.step(start, ActionStartingDate, "Trigger date")
	res.step(start, ActionTimeLimit, describeLimit(in.TimeLimit, in.TimeLimitUnit, days))

	anniversary := in.CalendarMonths && approximated(in.TimeLimitUnit) &&
		(method == MethodCalendarDays || method == MethodCustom) && isWhole(in.TimeLimit)
	if approximated(in.TimeLimitUnit) && !anniversary {
		res.warn(WarnApproximated)
	}
	advise(&res, in)

	catalog := e.calendar.CatalogFor(in.JurisdictionID)
	if method.UsesHolidays() && catalog.Status() == CatalogFailed {
		res.warn(WarnHolidaysUnavailable(in.JurisdictionID))
	}
	cls := NewClassifier(catalog)

	var end time.Time
	switch method {
	case MethodBusinessDays:
		end, err = e.count(&res, start, days, cls, false)
	case MethodCourtDays:
		end, err = e.count(&res, start, days, cls, true)
	case MethodCustom:
		res.warn(WarnCustom)
		end = addCalendar(&res, start, days, in, anniversary)
	default:
		end = addCalendar(&res, start, days, in, anniversary)
	}
	if err != nil {
		return Result{}, err
	}

	res.SkippedDays = res.SkippedDetails.Total()
	res.step(end, ActionFinalDate, "Calculated deadline")

	if method != MethodCalendarDays && (IsWeekend(end) || (method == MethodCourtDays && cls.IsHoliday(end))) {
		adjusted, err := NewAdjuster(cls, e.maxSkipRun).NextValidDay(end, method != MethodBusinessDays)
		if err != nil {
			return Result{}, err
		}
		if !adjusted.Equal(end) {
			res.warn(WarnAdjusted)
			res.step(adjusted, ActionWeekendAdjustment, "Moved from "+DateKey(end))
			end = adjusted
		}
	}

	res.CalculatedDate = end
	return res, nil
}

// addCalendar adds days straight onto start with no skipping
func addCalendar(res *Result, start time.Time, days float64, in Input, anniversary bool) time.Time {
	var end time.Time
	switch {
	case anniversary && in.TimeLimitUnit == UnitYears:
		end = addMonths(start, 12*int(in.TimeLimit))
	case anniversary:
		end = addMonths(start, int(in.TimeLimit))
	case isWhole(days):
		end = start.AddDate(0, 0, int(days))
	default:
		end = start.Add(time.Duration(days * float64(24*time.Hour)))
	}
	res.ActualDays = end.Sub(start).Hours() / 24
	return end
}

// count walks forward one day at a time until target days have been counted
// Fractional targets round up to the next whole day
func (e *Engine) count(res *Result, start time.Time, days float64, cls Classifier, skipHolidays bool) (time.Time, error) {
	target := int(math.Ceil(days))
	d := start
	counted, run := 0, 0
	for counted < target {
		d = d.AddDate(0, 0, 1)
		switch {
		case cls.IsWeekend(d):
			res.SkippedDetails.Weekends++
			res.step(d, ActionSkipped, ReasonWeekend)
		case skipHolidays && cls.IsHoliday(d):
			res.SkippedDetails.Holidays++
			res.step(d, ActionSkipped, ReasonHoliday)
		default:
			counted++
			run = 0
			res.step(d, ActionCounted, "Day "+strconv.Itoa(counted))
			continue
		}
		if run++; run > e.maxSkipRun {
			return time.Time{}, perr.Calculationf("more than %d consecutive non-counting days after %s", e.maxSkipRun, DateKey(start))
		}
	}
	res.ActualDays = float64(counted)
	return d, nil
}

// advise warns about advisory flags that disagree with the method; they never change the count
func advise(res *Result, in Input) {
	switch in.CalculationMethod {
	case MethodCalendarDays:
		if in.BusinessDaysOnly {
			res.warn("business_days_only is ignored for CALENDAR_DAYS")
		}
	case MethodBusinessDays:
		if in.IncludeWeekends {
			res.warn("include_weekends is ignored for BUSINESS_DAYS")
		}
		if in.IncludeHolidays {
			res.warn("include_holidays is ignored for BUSINESS_DAYS; holidays are always counted")
		}
	case MethodCourtDays:
		if in.IncludeWeekends {
			res.warn("include_weekends is ignored for COURT_DAYS")
		}
	}
}

// addMonths moves d forward n calendar months, clamping to the last day of a shorter month
func addMonths(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	return time.Date(first.Year(), first.Month(), min(day, last), 0, 0, 0, 0, time.UTC)
}

// describeLimit renders "10 days" or "36 hours = 1.5 days"
func describeLimit(q float64, unit Unit, days float64) string {
	s := formatNum(q) + " " + strings.ToLower(string(unit))
	if unit == UnitDays {
		return s
	}
	return s + " = " + formatNum(days) + " days"
}

func isWhole(v float64) bool { return v == math.Trunc(v) }

func formatNum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
