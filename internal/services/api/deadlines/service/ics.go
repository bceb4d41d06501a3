package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"courtclock/internal/core/deadline"
	perr "courtclock/internal/platform/errors"
	"courtclock/internal/platform/logger"
	"courtclock/internal/platform/net/http/bind"
	ptime "courtclock/internal/platform/time"
	"courtclock/internal/services/api/deadlines/domain"
)

const icsProductID = "-//courtclock//deadlines//EN"

// ICS calculates a deadline and renders it as a one event iCalendar document
func (s *Svc) ICS(ctx context.Context, in domain.ICSInput) ([]byte, error) {
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	res, err := s.calculate(ctx, in.CalculateInput)
	if err != nil {
		return nil, err
	}
	return renderICS(in, res, s.timeZone(ctx, in.JurisdictionID), time.Now()), nil
}

// timeZone is best effort; unknown jurisdictions and store failures leave the zone unset
func (s *Svc) timeZone(ctx context.Context, jurisdictionID string) string {
	if s.zones == nil || jurisdictionID == "" {
		return ""
	}
	tz, err := s.zones.TimeZone(ctx, jurisdictionID)
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeNotFound) {
			logger.C(ctx).Warn().Err(err).Str("jurisdiction_id", jurisdictionID).Msg("time zone lookup failed")
		}
		return ""
	}
	return tz
}

// renderICS emits an all day event on the due date; a sub-day result lands on its calendar day
func renderICS(in domain.ICSInput, res deadline.Result, tz string, stamp time.Time) []byte {
	due := ptime.Day(res.CalculatedDate)
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	if tz != "" {
		cal.SetXWRTimezone(tz)
	}

	ev := cal.AddEvent(uuid.NewString() + "@courtclock")
	ev.SetDtStampTime(stamp)
	ev.SetAllDayStartAt(due)
	ev.SetAllDayEndAt(due.AddDate(0, 0, 1))
	ev.SetSummary(summary(in))
	ev.SetDescription(description(in, res))
	return []byte(cal.Serialize())
}

func summary(in domain.ICSInput) string {
	if in.Title != "" {
		return in.Title
	}
	return "Deadline: " + describe(in.CalculateInput)
}

func describe(in domain.CalculateInput) string {
	return fmt.Sprintf("%g %s %s from %s", in.TimeLimit, strings.ToLower(in.TimeLimitUnit),
		strings.ToLower(strings.ReplaceAll(in.CalculationMethod, "_", " ")), in.TriggerDate)
}

func description(in domain.ICSInput, res deadline.Result) string {
	var b strings.Builder
	b.WriteString(describe(in.CalculateInput))
	if in.JurisdictionID != "" {
		b.WriteString("\nJurisdiction: " + in.JurisdictionID)
	}
	fmt.Fprintf(&b, "\nSkipped days: %d", res.SkippedDays)
	for _, w := range res.Warnings {
		if strings.HasPrefix(w, deadline.ErrorWarningPrefix) {
			continue
		}
		b.WriteString("\nWarning: " + w)
	}
	return b.String()
}
