// Package calendar produces date keys and the day ranges the planner works on.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// KeyLayout is the canonical DateKey format.
const KeyLayout = "2006-01-02"

// Key returns the DateKey for t, taken from its calendar fields in the local time zone.
func Key(t time.Time) string {
	return t.Local().Format(KeyLayout)
}

// Date returns the local day y-m-d anchored at noon. Out-of-range days and months
// normalize the way time.Date does. Noon always exists, so day values built here
// never slip into the previous day where DST starts at midnight.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

// ParseKey parses a DateKey into that local day.
func ParseKey(key string) (time.Time, error) {
	t, err := time.Parse(KeyLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return Date(t.Year(), t.Month(), t.Day()), nil
}

// ParseMonth parses "YYYY-MM" into the first day of that month.
func ParseMonth(v string) (time.Time, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", v, err)
	}
	return Date(t.Year(), t.Month(), 1), nil
}

// StartOfMonth returns the first day of ref's month.
func StartOfMonth(ref time.Time) time.Time {
	ref = ref.Local()
	return Date(ref.Year(), ref.Month(), 1)
}

// EndOfMonth returns the last day of ref's month.
func EndOfMonth(ref time.Time) time.Time {
	ref = ref.Local()
	return Date(ref.Year(), ref.Month()+1, 0)
}

// MonthDays returns every day of ref's month, first to last inclusive.
func MonthDays(ref time.Time) []time.Time {
	ref = ref.Local()
	return days(ref.Year(), ref.Month(), 1, daysIn(ref.Year(), ref.Month()))
}

// Grid returns the month of ref extended outward to whole weeks that begin on weekStart.
// It is meant for display only; statistics use MonthDays.
func Grid(ref time.Time, weekStart time.Weekday) []time.Time {
	ref = ref.Local()
	y, m := ref.Year(), ref.Month()
	n := daysIn(y, m)
	lead := (int(Date(y, m, 1).Weekday()) - int(weekStart) + 7) % 7
	trail := 6 - (int(Date(y, m, n).Weekday())-int(weekStart)+7)%7
	return days(y, m, 1-lead, lead+n+trail)
}

// AddMonths moves n months from ref and returns the first day of the resulting month.
func AddMonths(ref time.Time, n int) time.Time {
	ref = ref.Local()
	return Date(ref.Year(), ref.Month()+time.Month(n), 1)
}

// DaysUntil counts whole calendar days from now's day to target's day.
// The result is negative once target has passed.
func DaysUntil(target, now time.Time) int {
	return int(civil(target).Sub(civil(now)).Hours() / 24)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return Key(a) == Key(b)
}

func civil(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// days returns count consecutive days starting at y-m-first, counted on the
// calendar fields rather than by adding durations.
func days(y int, m time.Month, first, count int) []time.Time {
	out := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Date(y, m, first+i))
	}
	return out
}

// ParseWeekday accepts an English weekday name such as "monday" or "mon".
func ParseWeekday(v string) (time.Weekday, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if v == name || v == name[:3] {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("unknown weekday %q", v)
}
