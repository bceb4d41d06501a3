package testkit

import (
	"testing"
	"time"
)

var addFn = func(a, b int) int { return a + b }

func TestSwap_Restores(t *testing.T) {
	t.Run("swap", func(t *testing.T) {
		Swap(t, &addFn, func(int, int) int { return 99 })
		if got := addFn(1, 2); got != 99 {
			t.Fatalf("swap did not take effect, got %d", got)
		}
	})
	if got := addFn(1, 2); got != 3 {
		t.Fatalf("swap did not restore original, got %d", got)
	}
}

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("x") })
}

func TestDateHelpers(t *testing.T) {
	d := Date(t, "2024-11-28")
	if d.Weekday() != time.Thursday || d.Location() != time.UTC {
		t.Fatalf("unexpected parse %v", d)
	}
	MustSameDay(t, d.Add(13*time.Hour), d)
	MustContain(t, "Holiday data unavailable", "unavailable")
}
