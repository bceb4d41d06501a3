package deadline

import (
	"slices"
	"testing"
	"time"

	perr "courtclock/internal/platform/errors"
	"courtclock/internal/platform/testkit"
)

func federalEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return NewEngine(Catalogs{"": NewCatalog("", FederalCatalogHolidays(2023, 2026))}, opts...)
}

func limitInput(t *testing.T, trigger string, limit float64, unit Unit, method Method) Input {
	t.Helper()
	return Input{
		TriggerDate:       testkit.Date(t, trigger),
		TimeLimit:         limit,
		TimeLimitUnit:     unit,
		CalculationMethod: method,
	}
}

func TestCalculate_BusinessDaysScenario(t *testing.T) {
	t.Parallel()
	res, err := federalEngine(t).Calculate(limitInput(t, "2024-01-01", 10, UnitDays, MethodBusinessDays))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	testkit.MustSameDay(t, res.CalculatedDate, testkit.Date(t, "2024-01-15"))
	if res.ActualDays != 10 || res.SkippedDays != 4 || res.SkippedDetails.Weekends != 4 {
		t.Fatalf("actual=%v skipped=%d details=%+v", res.ActualDays, res.SkippedDays, res.SkippedDetails)
	}
	var skipped []string
	for _, s := range res.CalculationSteps {
		if s.Action == ActionSkipped {
			if s.Reason != ReasonWeekend {
				t.Fatalf("skip reason = %q", s.Reason)
			}
			skipped = append(skipped, DateKey(s.Date))
		}
	}
	want := []string{"2024-01-06", "2024-01-07", "2024-01-13", "2024-01-14"}
	if !slices.Equal(skipped, want) {
		t.Fatalf("skipped = %v, want %v", skipped, want)
	}
	first, last := res.CalculationSteps[0], res.CalculationSteps[len(res.CalculationSteps)-1]
	if first.Action != ActionStartingDate || res.CalculationSteps[1].Action != ActionTimeLimit || last.Action != ActionFinalDate {
		t.Fatalf("step framing wrong: %+v", res.CalculationSteps)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestCalculate_Methods(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		in       Input
		want     string
		weekends int
		holidays int
		warnings []string
	}{
		{
			name: "calendar days land on saturday unadjusted",
			in:   limitInput(t, "2024-01-01", 5, UnitDays, MethodCalendarDays),
			want: "2024-01-06",
		},
		{
			name: "business days ignore holidays",
			in:   limitInput(t, "2024-01-01", 1, UnitDays, MethodBusinessDays),
			want: "2024-01-02",
		},
		{
			name:     "court days skip thanksgiving",
			in:       limitInput(t, "2024-11-25", 3, UnitDays, MethodCourtDays),
			want:     "2024-11-29",
			holidays: 1,
		},
		{
			name:     "court days skip christmas and a weekend",
			in:       limitInput(t, "2024-12-20", 3, UnitDays, MethodCourtDays),
			want:     "2024-12-26",
			weekends: 2,
			holidays: 1,
		},
		{
			name:     "custom degrades to calendar then adjusts past weekend and holiday",
			in:       limitInput(t, "2024-01-08", 5, UnitDays, MethodCustom),
			want:     "2024-01-16",
			warnings: []string{WarnCustom, WarnAdjusted},
		},
		{
			name: "two weeks of calendar days",
			in:   limitInput(t, "2024-01-01", 2, UnitWeeks, MethodCalendarDays),
			want: "2024-01-15",
		},
		{
			name: "sub-day business limit rounds up to whole days",
			in:   limitInput(t, "2024-01-01", 36, UnitHours, MethodBusinessDays),
			want: "2024-01-03",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := federalEngine(t).Calculate(tc.in)
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			testkit.MustSameDay(t, res.CalculatedDate, testkit.Date(t, tc.want))
			if res.SkippedDetails.Weekends != tc.weekends || res.SkippedDetails.Holidays != tc.holidays {
				t.Fatalf("details = %+v", res.SkippedDetails)
			}
			for _, w := range tc.warnings {
				if !slices.Contains(res.Warnings, w) {
					t.Fatalf("warnings %v missing %q", res.Warnings, w)
				}
			}
		})
	}
}

func TestCalculate_CustomAdjustmentStep(t *testing.T) {
	t.Parallel()
	res, err := federalEngine(t).Calculate(limitInput(t, "2024-01-01", 5, UnitDays, MethodCustom))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	testkit.MustSameDay(t, res.CalculatedDate, testkit.Date(t, "2024-01-08"))
	last := res.CalculationSteps[len(res.CalculationSteps)-1]
	if last.Action != ActionWeekendAdjustment || last.Reason != "Moved from 2024-01-06" {
		t.Fatalf("last step = %+v", last)
	}
	if res.SkippedDays != 0 {
		t.Fatalf("adjustment must not count as skipped days, got %d", res.SkippedDays)
	}
}

func TestCalculate_SubDayCalendarIsExactDuration(t *testing.T) {
	t.Parallel()
	res, err := federalEngine(t).Calculate(limitInput(t, "2024-01-01", 36, UnitHours, MethodCalendarDays))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	if !res.CalculatedDate.Equal(want) || res.ActualDays != 1.5 {
		t.Fatalf("date=%s actual=%v", res.CalculatedDate, res.ActualDays)
	}
}

func TestCalculate_MonthsApproximation(t *testing.T) {
	t.Parallel()
	eng := federalEngine(t)

	res, err := eng.Calculate(limitInput(t, "2024-01-31", 3, UnitMonths, MethodCalendarDays))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	testkit.MustSameDay(t, res.CalculatedDate, testkit.Date(t, "2024-04-30"))
	if res.ActualDays != 90 || !slices.Contains(res.Warnings, WarnApproximated) {
		t.Fatalf("actual=%v warnings=%v", res.ActualDays, res.Warnings)
	}

	in := limitInput(t, "2024-01-31", 1, UnitMonths, MethodCalendarDays)
	in.CalendarMonths = true
	res, err = eng.Calculate(in)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	testkit.MustSameDay(t, res.CalculatedDate, testkit.Date(t, "2024-02-29"))
	if slices.Contains(res.Warnings, WarnApproximated) {
		t.Fatalf("anniversary mode should not warn: %v", res.Warnings)
	}

	in = limitInput(t, "2024-02-29", 1, UnitYears, MethodCalendarDays)
	in.CalendarMonths = true
	res, err = eng.Calculate(in)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	testkit.MustSameDay(t, res.CalculatedDate, testkit.Date(t, "2025-02-28"))

	in = limitInput(t, "2024-01-31", 1, UnitMonths, MethodBusinessDays)
	in.CalendarMonths = true
	res, err = eng.Calculate(in)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.ActualDays != 30 || !slices.Contains(res.Warnings, WarnApproximated) {
		t.Fatalf("counting methods keep the approximation: actual=%v warnings=%v", res.ActualDays, res.Warnings)
	}
}

func TestCalculate_Validation(t *testing.T) {
	t.Parallel()
	eng := federalEngine(t)
	cases := []struct {
		name  string
		in    Input
		field string
	}{
		{"zero limit", limitInput(t, "2024-01-01", 0, UnitDays, MethodCalendarDays), "time_limit"},
		{"negative limit", limitInput(t, "2024-01-01", -3, UnitDays, MethodCalendarDays), "time_limit"},
		{"missing trigger", Input{TimeLimit: 1, TimeLimitUnit: UnitDays, CalculationMethod: MethodCalendarDays}, "trigger_date"},
		{"bad unit", limitInput(t, "2024-01-01", 1, Unit("DECADES"), MethodCalendarDays), "time_limit_unit"},
		{"bad method", limitInput(t, "2024-01-01", 1, UnitDays, Method("LUNAR")), "calculation_method"},
		{"too long", limitInput(t, "2024-01-01", 101, UnitYears, MethodCalendarDays), "time_limit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := eng.Calculate(tc.in)
			if !IsValidation(err) {
				t.Fatalf("want validation error, got %v", err)
			}
			if e, _ := perr.As(err); e.Field() != tc.field {
				t.Fatalf("field = %q, want %q", e.Field(), tc.field)
			}
		})
	}
}

func TestCalculate_AdvisoryFlagsOnlyWarn(t *testing.T) {
	t.Parallel()
	eng := federalEngine(t)
	plain, err := eng.Calculate(limitInput(t, "2024-01-01", 10, UnitDays, MethodBusinessDays))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	in := limitInput(t, "2024-01-01", 10, UnitDays, MethodBusinessDays)
	in.IncludeWeekends = true
	in.IncludeHolidays = true
	flagged, err := eng.Calculate(in)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !flagged.CalculatedDate.Equal(plain.CalculatedDate) || len(flagged.Warnings) != 2 {
		t.Fatalf("date=%s warnings=%v", DateKey(flagged.CalculatedDate), flagged.Warnings)
	}
}

func TestCalculate_FailedCatalogWarns(t *testing.T) {
	t.Parallel()
	eng := NewEngine(Catalogs{})

	res, err := eng.Calculate(Input{
		TriggerDate: testkit.Date(t, "2024-11-25"), TimeLimit: 3, TimeLimitUnit: UnitDays,
		CalculationMethod: MethodCourtDays, JurisdictionID: "ca",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !slices.Contains(res.Warnings, WarnHolidaysUnavailable("ca")) {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	testkit.MustSameDay(t, res.CalculatedDate, testkit.Date(t, "2024-11-28"))

	res, err = eng.Calculate(Input{
		TriggerDate: testkit.Date(t, "2024-11-25"), TimeLimit: 3, TimeLimitUnit: UnitDays,
		CalculationMethod: MethodBusinessDays, JurisdictionID: "ca",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("business days never consult holidays, warnings = %v", res.Warnings)
	}
}

func TestCalculate_EmptyCatalogDoesNotWarn(t *testing.T) {
	t.Parallel()
	eng := NewEngine(Catalogs{"ca": NewCatalog("ca", nil)})
	res, err := eng.Calculate(Input{
		TriggerDate: testkit.Date(t, "2024-11-25"), TimeLimit: 3, TimeLimitUnit: UnitDays,
		CalculationMethod: MethodCourtDays, JurisdictionID: "ca",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestCalculate_SkipCeiling(t *testing.T) {
	t.Parallel()
	var hs []Holiday
	d := testkit.Date(t, "2024-02-01")
	for range 90 {
		hs = append(hs, Holiday{Date: d, Name: "Court closed", Type: HolidayCourt, Jurisdictions: []string{"x"}, AffectsCourts: true, IsActive: true})
		d = d.AddDate(0, 0, 1)
	}
	eng := NewEngine(Catalogs{"x": NewCatalog("x", hs)}, WithMaxSkipRun(30))
	_, err := eng.Calculate(Input{
		TriggerDate: testkit.Date(t, "2024-01-31"), TimeLimit: 2, TimeLimitUnit: UnitDays,
		CalculationMethod: MethodCourtDays, JurisdictionID: "x",
	})
	if !IsCalculation(err) {
		t.Fatalf("want calculation error, got %v", err)
	}
}

func TestCalculate_Properties(t *testing.T) {
	t.Parallel()
	eng := federalEngine(t)
	cls := NewClassifier(NewCatalog("", FederalCatalogHolidays(2023, 2026)))
	start := testkit.Date(t, "2024-01-01")
	for offset := range 366 {
		trigger := start.AddDate(0, 0, offset)
		for limit := 1; limit <= 30; limit++ {
			for _, m := range []Method{MethodCalendarDays, MethodBusinessDays, MethodCourtDays} {
				in := Input{TriggerDate: trigger, TimeLimit: float64(limit), TimeLimitUnit: UnitDays, CalculationMethod: m}
				res, err := eng.Calculate(in)
				if err != nil {
					t.Fatalf("%s +%d %s: %v", DateKey(trigger), limit, m, err)
				}
				checkProperties(t, in, res, cls)
			}
		}
	}
}

func checkProperties(t *testing.T, in Input, res Result, cls Classifier) {
	t.Helper()
	tag := DateKey(in.TriggerDate) + " " + string(in.CalculationMethod)
	if res.SkippedDays != res.SkippedDetails.Total() {
		t.Fatalf("%s: skipped %d != details %+v", tag, res.SkippedDays, res.SkippedDetails)
	}
	if in.CalculationMethod == MethodCalendarDays {
		if got := res.CalculatedDate.Sub(in.TriggerDate).Hours() / 24; got != in.TimeLimit || res.SkippedDays != 0 {
			t.Fatalf("%s: calendar delta %v, want %v", tag, got, in.TimeLimit)
		}
		return
	}
	if res.ActualDays != in.TimeLimit {
		t.Fatalf("%s: actual %v, want %v", tag, res.ActualDays, in.TimeLimit)
	}
	court := in.CalculationMethod == MethodCourtDays
	var prev time.Time
	for _, s := range res.CalculationSteps {
		if s.Action != ActionCounted && s.Action != ActionSkipped {
			continue
		}
		if !prev.IsZero() && !s.Date.After(prev) {
			t.Fatalf("%s: step dates not increasing at %s", tag, DateKey(s.Date))
		}
		prev = s.Date
		if s.Action == ActionCounted && (IsWeekend(s.Date) || (court && cls.IsHoliday(s.Date))) {
			t.Fatalf("%s: counted blocked day %s", tag, DateKey(s.Date))
		}
	}
	if IsWeekend(res.CalculatedDate) || (court && cls.IsHoliday(res.CalculatedDate)) {
		t.Fatalf("%s: landed on blocked day %s", tag, DateKey(res.CalculatedDate))
	}
}

func TestLimitDays(t *testing.T) {
	t.Parallel()
	days, err := LimitDays(limitInput(t, "2024-01-01", 36, UnitHours, MethodCalendarDays))
	if err != nil || days != 1.5 {
		t.Fatalf("days = %v err = %v", days, err)
	}
	if _, err := LimitDays(limitInput(t, "2024-01-01", 1e9, UnitDays, MethodCourtDays)); !IsValidation(err) {
		t.Fatalf("oversized limit err = %v", err)
	}
	if days, err := LimitDays(limitInput(t, "2024-01-01", MaxTimeLimitDays, UnitDays, MethodCalendarDays)); err != nil || days != MaxTimeLimitDays {
		t.Fatalf("ceiling days = %v err = %v", days, err)
	}
}
