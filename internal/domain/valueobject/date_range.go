package valueobject

import (
	"fmt"
	"time"
)

// RangePreset names a predefined date range.
type RangePreset string

const (
	RangeThisMonth     RangePreset = "this-month"
	RangePreviousMonth RangePreset = "previous-month"
	RangeYearToDate    RangePreset = "year-to-date"
	RangeCalendarYear  RangePreset = "calendar-year"
)

// DateRange is an inclusive pair of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ThisMonth returns the first through last day of the month containing now.
func ThisMonth(now time.Time) DateRange {
	first := NewDate(now.Year(), now.Month(), 1)
	return DateRange{From: first, To: first.AddDate(0, 1, -1)}
}

// PreviousMonth returns the full month before the one containing now.
func PreviousMonth(now time.Time) DateRange {
	first := NewDate(now.Year(), now.Month(), 1).AddDate(0, -1, 0)
	return DateRange{From: first, To: first.AddDate(0, 1, -1)}
}

// YearToDate returns January 1st of now's year through now.
func YearToDate(now time.Time) DateRange {
	return DateRange{From: NewDate(now.Year(), time.January, 1), To: Day(now)}
}

// CalendarYear returns January 1st through December 31st of now's year.
func CalendarYear(now time.Time) DateRange {
	return DateRange{
		From: NewDate(now.Year(), time.January, 1),
		To:   NewDate(now.Year(), time.December, 31),
	}
}

// ResolvePreset returns the range a preset denotes relative to now.
func ResolvePreset(preset RangePreset, now time.Time) (DateRange, error) {
	switch preset {
	case RangeThisMonth:
		return ThisMonth(now), nil
	case RangePreviousMonth:
		return PreviousMonth(now), nil
	case RangeYearToDate:
		return YearToDate(now), nil
	case RangeCalendarYear:
		return CalendarYear(now), nil
	default:
		return DateRange{}, fmt.Errorf("unknown range preset %q", preset)
	}
}
