// Package deadline computes legal deadlines from a trigger date, a time limit and
// a counting method, and records every counted or skipped day along the way.
//
// The engine is pure: holiday data arrives as a Catalog that the caller loaded
// beforehand, so a calculation never blocks on I/O.
package deadline

import (
	"encoding/json"
	"strings"
	"time"
)

// Unit is the unit a time limit is expressed in
type Unit string

// Supported units
const (
	UnitMinutes Unit = "MINUTES"
	UnitHours   Unit = "HOURS"
	UnitDays    Unit = "DAYS"
	UnitWeeks   Unit = "WEEKS"
	UnitMonths  Unit = "MONTHS"
	UnitYears   Unit = "YEARS"
)

// Valid reports whether u is a supported unit
func (u Unit) Valid() bool {
	switch u {
	case UnitMinutes, UnitHours, UnitDays, UnitWeeks, UnitMonths, UnitYears:
		return true
	}
	return false
}

// Method is the day-counting rule
type Method string

// Supported methods
const (
	MethodCalendarDays Method = "CALENDAR_DAYS"
	MethodBusinessDays Method = "BUSINESS_DAYS"
	MethodCourtDays    Method = "COURT_DAYS"
	MethodCustom       Method = "CUSTOM"
)

// Valid reports whether m is a supported method
func (m Method) Valid() bool {
	switch m {
	case MethodCalendarDays, MethodBusinessDays, MethodCourtDays, MethodCustom:
		return true
	}
	return false
}

// UsesHolidays reports whether holiday data can change the outcome of m
func (m Method) UsesHolidays() bool { return m == MethodCourtDays || m == MethodCustom }

// Action labels a calculation step
type Action string

// Step actions in the order they can appear
const (
	ActionStartingDate      Action = "STARTING_DATE"
	ActionTimeLimit         Action = "TIME_LIMIT"
	ActionSkipped           Action = "SKIPPED"
	ActionCounted           Action = "COUNTED"
	ActionFinalDate         Action = "FINAL_DATE"
	ActionWeekendAdjustment Action = "WEEKEND_ADJUSTMENT"
)

// Step reasons for skipped days
const (
	ReasonWeekend = "Weekend"
	ReasonHoliday = "Holiday"
)

// HolidayType classifies a holiday record
type HolidayType string

// Holiday types
const (
	HolidayFederal HolidayType = "FEDERAL"
	HolidayState   HolidayType = "STATE"
	HolidayCourt   HolidayType = "COURT"
	HolidayCustom  HolidayType = "CUSTOM"
)

// Valid reports whether t is a known holiday type
func (t HolidayType) Valid() bool {
	switch t {
	case HolidayFederal, HolidayState, HolidayCourt, HolidayCustom:
		return true
	}
	return false
}

// Input is one deadline request
//
// IncludeWeekends, IncludeHolidays and BusinessDaysOnly are advisory: the method alone
// decides how days are counted; conflicting flags only produce warnings.
type Input struct {
	TriggerDate       time.Time       `json:"trigger_date"`
	TimeLimit         float64         `json:"time_limit"`
	TimeLimitUnit     Unit            `json:"time_limit_unit"`
	CalculationMethod Method          `json:"calculation_method"`
	IncludeWeekends   bool            `json:"include_weekends"`
	IncludeHolidays   bool            `json:"include_holidays"`
	BusinessDaysOnly  bool            `json:"business_days_only"`
	JurisdictionID    string          `json:"jurisdiction_id,omitempty"`
	CustomRules       json.RawMessage `json:"custom_rules,omitempty"`

	// CalendarMonths adds MONTHS and YEARS as calendar months instead of 30/365 days
	CalendarMonths bool `json:"calendar_months,omitempty"`
}

// SkippedDetails breaks SkippedDays down by reason
type SkippedDetails struct {
	Weekends      int `json:"weekends"`
	Holidays      int `json:"holidays"`
	CustomSkipped int `json:"custom_skipped"`
}

// Total is the sum of all skip counters
func (d SkippedDetails) Total() int { return d.Weekends + d.Holidays + d.CustomSkipped }

// Step is one entry in the audit trail
type Step struct {
	Date   time.Time `json:"date"`
	Action Action    `json:"action"`
	Reason string    `json:"reason"`
}

// Result is the outcome of one calculation
type Result struct {
	CalculatedDate   time.Time      `json:"calculated_date"`
	ActualDays       float64        `json:"actual_days"`
	SkippedDays      int            `json:"skipped_days"`
	SkippedDetails   SkippedDetails `json:"skipped_details"`
	CalculationSteps []Step         `json:"calculation_steps"`
	Warnings         []string       `json:"warnings"`
}

// ErrorWarningPrefix marks the warning that replaces a failed bulk item's result
const ErrorWarningPrefix = "Error: "

// Failed reports whether r stands in for a calculation that did not complete
func (r Result) Failed() bool { return r.FailureMessage() != "" }

// FailureMessage returns the error text of a failed bulk item, or ""
func (r Result) FailureMessage() string {
	for _, w := range r.Warnings {
		if msg, ok := strings.CutPrefix(w, ErrorWarningPrefix); ok {
			return msg
		}
	}
	return ""
}

// FailedResult is the placeholder recorded for an item whose calculation errored
func FailedResult(err error) Result {
	return Result{
		CalculationSteps: []Step{},
		Warnings:         []string{ErrorWarningPrefix + err.Error()},
	}
}

func (r *Result) step(d time.Time, a Action, reason string) {
	r.CalculationSteps = append(r.CalculationSteps, Step{Date: d, Action: a, Reason: reason})
}

func (r *Result) warn(msg string) { r.Warnings = append(r.Warnings, msg) }
