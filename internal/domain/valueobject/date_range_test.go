package valueobject

import (
	"testing"
	"time"
)

func TestResolvePreset(t *testing.T) {
	now := time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		preset   RangePreset
		wantFrom time.Time
		wantTo   time.Time
	}{
		{"this month", RangeThisMonth, NewDate(2024, time.March, 1), NewDate(2024, time.March, 31)},
		{"previous month in leap year", RangePreviousMonth, NewDate(2024, time.February, 1), NewDate(2024, time.February, 29)},
		{"year to date", RangeYearToDate, NewDate(2024, time.January, 1), NewDate(2024, time.March, 15)},
		{"calendar year", RangeCalendarYear, NewDate(2024, time.January, 1), NewDate(2024, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolvePreset(tt.preset, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !r.From.Equal(tt.wantFrom) || !r.To.Equal(tt.wantTo) {
				t.Errorf("got %s..%s, want %s..%s", FormatDate(r.From), FormatDate(r.To), FormatDate(tt.wantFrom), FormatDate(tt.wantTo))
			}
		})
	}

	t.Run("previous month wraps the year", func(t *testing.T) {
		r := PreviousMonth(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))
		if FormatDate(r.From) != "2023-12-01" || FormatDate(r.To) != "2023-12-31" {
			t.Errorf("got %s..%s", FormatDate(r.From), FormatDate(r.To))
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		if _, err := ResolvePreset("fortnight", now); err == nil {
			t.Error("expected error for unknown preset")
		}
	})
}

func TestOptional(t *testing.T) {
	all := All[string]()
	if !all.IsAll() {
		t.Error("All() should be unconstrained")
	}

	empty := Only("")
	if empty.IsAll() {
		t.Error("Only(\"\") must be distinct from All()")
	}
	if v, ok := empty.Get(); !ok || v != "" {
		t.Errorf("Get() = %q, %v", v, ok)
	}
	if all == empty {
		t.Error("All() and Only(\"\") compared equal")
	}
	if got := all.OrElse("x"); got != "x" {
		t.Errorf("OrElse = %q, want x", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(NewDate(2024, time.February, 29)) {
		t.Errorf("got %v", d)
	}

	ts, err := ParseDate("2024-02-29T23:10:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDate(ts) != "2024-02-29" || MonthKey(ts) != "2024-02" {
		t.Errorf("got %s / %s", FormatDate(ts), MonthKey(ts))
	}

	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Error("expected error for invalid layout")
	}
}
