package valueobject

import (
	"strings"
	"time"
)

// DateLayout is the calendar day format used on the wire.
const DateLayout = "2006-01-02"

// MonthLayout is the year-month bucket key format.
const MonthLayout = "2006-01"

// Day returns t truncated to its calendar day at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a calendar day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar day. Timestamps are accepted and truncated.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey returns the YYYY-MM bucket a day falls in.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}
