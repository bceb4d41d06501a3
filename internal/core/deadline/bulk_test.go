package deadline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"courtclock/internal/platform/testkit"
)

func TestCalculateBulk_IsolatesBadItem(t *testing.T) {
	t.Parallel()
	for _, par := range []int{0, 1, 4} {
		co := NewCoordinator(federalEngine(t), par)
		inputs := []Input{
			limitInput(t, "2024-01-01", 10, UnitDays, MethodBusinessDays),
			limitInput(t, "2024-01-01", 0, UnitDays, MethodBusinessDays),
			limitInput(t, "2024-01-01", 10, UnitDays, MethodCalendarDays),
			limitInput(t, "2024-11-25", 3, UnitDays, MethodCourtDays),
		}
		out := co.CalculateBulk(context.Background(), inputs)
		if len(out) != len(inputs) {
			t.Fatalf("par=%d: len = %d", par, len(out))
		}
		if !out[1].Failed() || !strings.HasPrefix(out[1].Warnings[0], "Error: ") {
			t.Fatalf("par=%d: bad item = %+v", par, out[1])
		}
		if !out[1].CalculatedDate.IsZero() || out[1].ActualDays != 0 || out[1].SkippedDays != 0 {
			t.Fatalf("par=%d: failed item should carry zero values: %+v", par, out[1])
		}
		testkit.MustSameDay(t, out[0].CalculatedDate, testkit.Date(t, "2024-01-15"))
		testkit.MustSameDay(t, out[2].CalculatedDate, testkit.Date(t, "2024-01-11"))
		testkit.MustSameDay(t, out[3].CalculatedDate, testkit.Date(t, "2024-11-29"))
		for _, i := range []int{0, 2, 3} {
			if out[i].Failed() {
				t.Fatalf("par=%d: item %d failed: %v", par, i, out[i].Warnings)
			}
		}
	}
}

type panicCalendar struct{}

func (panicCalendar) CatalogFor(id string) *Catalog {
	if id == "boom" {
		panic("corrupt catalog")
	}
	return NewCatalog(id, nil)
}

func TestCalculateBulk_RecoversPanics(t *testing.T) {
	t.Parallel()
	co := NewCoordinator(NewEngine(panicCalendar{}), 2)
	good := limitInput(t, "2024-01-01", 1, UnitDays, MethodCourtDays)
	bad := good
	bad.JurisdictionID = "boom"
	out := co.CalculateBulk(context.Background(), []Input{good, bad, good})
	if out[0].Failed() || out[2].Failed() {
		t.Fatal("siblings of a panicking item must succeed")
	}
	if msg := out[1].FailureMessage(); !strings.Contains(msg, "corrupt catalog") {
		t.Fatalf("failure message = %q", msg)
	}
}

func TestCalculateBulk_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := NewCoordinator(federalEngine(t), 2).CalculateBulk(ctx, []Input{limitInput(t, "2024-01-01", 1, UnitDays, MethodBusinessDays)})
	if !out[0].Failed() {
		t.Fatal("cancelled batch items should fail")
	}
}

func TestCalculateBulk_Empty(t *testing.T) {
	t.Parallel()
	if out := NewCoordinator(federalEngine(t), 4).CalculateBulk(context.Background(), nil); len(out) != 0 {
		t.Fatalf("len = %d", len(out))
	}
}

func TestFailedResult(t *testing.T) {
	t.Parallel()
	r := FailedResult(errors.New("time_limit must be greater than 0"))
	if !r.Failed() || r.FailureMessage() != "time_limit must be greater than 0" {
		t.Fatalf("result = %+v", r)
	}
	if (Result{Warnings: []string{WarnAdjusted}}).Failed() {
		t.Fatal("ordinary warnings are not failures")
	}
}
