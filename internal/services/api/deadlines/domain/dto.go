// Package domain holds DTOs for deadlines http and service contracts
package domain

import (
	"encoding/json"
	"time"

	"courtclock/internal/core/deadline"
	ptime "courtclock/internal/platform/time"
)

// CalculateInput is the wire form of one deadline request
type CalculateInput struct {
	TriggerDate       string          `json:"trigger_date" validate:"required,isodate" example:"2024-01-01"`
	TimeLimit         float64         `json:"time_limit" validate:"gt=0" example:"10"`
	TimeLimitUnit     string          `json:"time_limit_unit" validate:"required,oneof=MINUTES HOURS DAYS WEEKS MONTHS YEARS" example:"DAYS"`
	CalculationMethod string          `json:"calculation_method" validate:"required,oneof=CALENDAR_DAYS BUSINESS_DAYS COURT_DAYS CUSTOM" example:"BUSINESS_DAYS"`
	IncludeWeekends   bool            `json:"include_weekends,omitempty"`
	IncludeHolidays   bool            `json:"include_holidays,omitempty"`
	BusinessDaysOnly  bool            `json:"business_days_only,omitempty"`
	CalendarMonths    bool            `json:"calendar_months,omitempty"`
	JurisdictionID    string          `json:"jurisdiction_id,omitempty" validate:"omitempty,max=64" example:"ca-superior"`
	CustomRules       json.RawMessage `json:"custom_rules,omitempty" swaggertype:"object"`
}

// ToEngine converts the wire input; only the trigger date can fail here, the engine validates the rest
func (in CalculateInput) ToEngine() (deadline.Input, error) {
	d, err := ptime.ParseDate("trigger_date", in.TriggerDate)
	if err != nil {
		return deadline.Input{}, err
	}
	return deadline.Input{
		TriggerDate:       d,
		TimeLimit:         in.TimeLimit,
		TimeLimitUnit:     deadline.Unit(in.TimeLimitUnit),
		CalculationMethod: deadline.Method(in.CalculationMethod),
		IncludeWeekends:   in.IncludeWeekends,
		IncludeHolidays:   in.IncludeHolidays,
		BusinessDaysOnly:  in.BusinessDaysOnly,
		CalendarMonths:    in.CalendarMonths,
		JurisdictionID:    in.JurisdictionID,
		CustomRules:       in.CustomRules,
	}, nil
}

// CalculateRequest is a single calculation, optionally persisted as an audit record
type CalculateRequest struct {
	CalculateInput
	Save   bool   `json:"save,omitempty"`
	CaseID string `json:"case_id,omitempty" validate:"omitempty,max=128"`
	RuleID string `json:"rule_id,omitempty" validate:"omitempty,max=128"`
}

// Step is one audit trail entry with an ISO date
type Step struct {
	Date   string `json:"date" example:"2024-01-06"`
	Action string `json:"action" example:"SKIPPED"`
	Reason string `json:"reason" example:"Weekend"`
}

// Result is the wire form of a calculation result
type Result struct {
	CalculatedDate   string                  `json:"calculated_date" example:"2024-01-15"`
	ActualDays       float64                 `json:"actual_days" example:"10"`
	SkippedDays      int                     `json:"skipped_days" example:"4"`
	SkippedDetails   deadline.SkippedDetails `json:"skipped_details"`
	CalculationSteps []Step                  `json:"calculation_steps"`
	Warnings         []string                `json:"warnings"`
}

// FromResult renders an engine result; a sub-day calendar result keeps its time as RFC3339
func FromResult(r deadline.Result) Result {
	steps := make([]Step, 0, len(r.CalculationSteps))
	for _, s := range r.CalculationSteps {
		steps = append(steps, Step{Date: ptime.FormatDate(s.Date), Action: string(s.Action), Reason: s.Reason})
	}
	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return Result{
		CalculatedDate:   formatInstant(r.CalculatedDate),
		ActualDays:       r.ActualDays,
		SkippedDays:      r.SkippedDays,
		SkippedDetails:   r.SkippedDetails,
		CalculationSteps: steps,
		Warnings:         warnings,
	}
}

func formatInstant(t time.Time) string {
	switch {
	case t.IsZero():
		return ""
	case t.Equal(ptime.Day(t)):
		return ptime.FormatDate(t)
	default:
		return t.UTC().Format(time.RFC3339)
	}
}

// CalculateResponse carries the result and the audit id when saved
type CalculateResponse struct {
	Result  Result `json:"result"`
	AuditID string `json:"audit_id,omitempty" example:"5b8f0c9e-3f4e-4c55-9d8a-1f2e3d4c5b6a"`
}

// BulkInput is an ordered batch of calculations
// Items are validated one by one so a bad item fails alone
type BulkInput struct {
	Items  []CalculateInput `json:"items" validate:"required,min=1"`
	Save   bool             `json:"save,omitempty"`
	CaseID string           `json:"case_id,omitempty" validate:"omitempty,max=128"`
}

// BulkItem is the outcome of one batch entry
type BulkItem struct {
	Index   int            `json:"index"`
	Input   CalculateInput `json:"input"`
	Result  *Result        `json:"result"`
	Error   *string        `json:"error"`
	AuditID string         `json:"audit_id,omitempty"`
}

// BulkSummary counts batch outcomes
type BulkSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BulkResponse is the ordered batch outcome
type BulkResponse struct {
	Items   []BulkItem  `json:"items"`
	Summary BulkSummary `json:"summary"`
}

// SaveInput is an explicit audit write of an input and its result
type SaveInput struct {
	Input  CalculateInput `json:"input" validate:"required"`
	Result Result         `json:"result" validate:"required"`
	CaseID string         `json:"case_id,omitempty" validate:"omitempty,max=128"`
	RuleID string         `json:"rule_id,omitempty" validate:"omitempty,max=128"`
}

// AuditRecord identifies a stored calculation snapshot
type AuditRecord struct {
	ID        string `json:"id"`
	CaseID    string `json:"case_id,omitempty"`
	RuleID    string `json:"rule_id,omitempty"`
	CreatedAt string `json:"created_at" example:"2024-01-01T12:00:00Z"`
}

// ICSInput calculates a deadline and exports it as an all-day event
type ICSInput struct {
	CalculateInput
	Title string `json:"title,omitempty" validate:"omitempty,max=200" example:"Opposition brief due"`
}
