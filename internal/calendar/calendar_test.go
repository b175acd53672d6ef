package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return Date(y, m, d)
}

// inZone runs the rest of the test with time.Local set to name.
func inZone(t *testing.T, name string) {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestKey(t *testing.T) {
	assert.Equal(t, "2025-01-05", Key(day(2025, time.January, 5)))
	assert.Equal(t, "2025-12-31", Key(time.Date(2025, time.December, 31, 23, 59, 0, 0, time.Local)))

	parsed, err := ParseKey("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.February, 29), parsed)
	assert.Equal(t, "2024-02-29", Key(parsed))

	_, err = ParseKey("2024-2-29")
	assert.Error(t, err)
}

func TestMonthDays(t *testing.T) {
	tests := []struct {
		name  string
		ref   time.Time
		count int
		first string
		last  string
	}{
		{"january", day(2025, time.January, 17), 31, "2025-01-01", "2025-01-31"},
		{"leap february", day(2024, time.February, 1), 29, "2024-02-01", "2024-02-29"},
		{"plain february", day(2025, time.February, 28), 28, "2025-02-01", "2025-02-28"},
		{"april", day(2025, time.April, 30), 30, "2025-04-01", "2025-04-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := MonthDays(tt.ref)
			require.Len(t, days, tt.count)
			assert.Equal(t, tt.first, Key(days[0]))
			assert.Equal(t, tt.last, Key(days[len(days)-1]))
		})
	}
}

func TestGrid(t *testing.T) {
	// January 2025 starts on a Wednesday and ends on a Friday.
	days := Grid(day(2025, time.January, 10), time.Monday)
	require.Len(t, days, 35)
	assert.Equal(t, "2024-12-30", Key(days[0]))
	assert.Equal(t, "2025-02-02", Key(days[len(days)-1]))
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, time.Sunday, days[len(days)-1].Weekday())

	sunday := Grid(day(2025, time.January, 10), time.Sunday)
	assert.Equal(t, "2024-12-29", Key(sunday[0]))
	assert.Equal(t, "2025-02-01", Key(sunday[len(sunday)-1]))

	// September 2025 begins on a Monday, so no leading padding.
	sept := Grid(day(2025, time.September, 1), time.Monday)
	assert.Equal(t, "2025-09-01", Key(sept[0]))
	assert.Zero(t, len(sept)%7)
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, "2025-02-01", Key(AddMonths(day(2025, time.January, 31), 1)))
	assert.Equal(t, "2024-12-01", Key(AddMonths(day(2025, time.January, 15), -1)))
	assert.Equal(t, "2026-01-01", Key(AddMonths(day(2025, time.March, 3), 10)))
}

func TestDaysUntil(t *testing.T) {
	exam := day(2026, time.September, 6)
	assert.Equal(t, 5, DaysUntil(exam, time.Date(2026, time.September, 1, 22, 30, 0, 0, time.Local)))
	assert.Equal(t, 0, DaysUntil(exam, exam.Add(11*time.Hour)))
	assert.Equal(t, -2, DaysUntil(exam, day(2026, time.September, 8)))
	assert.Equal(t, 365, DaysUntil(exam, day(2025, time.September, 6)))
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = ParseWeekday("sun")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = ParseWeekday("pazartesi")
	assert.Error(t, err)
}

// Santiago moved clocks from 00:00 to 01:00 on 2024-09-08, so that midnight never happened.
func TestMidnightDSTGap(t *testing.T) {
	inZone(t, "America/Santiago")

	days := MonthDays(time.Date(2024, time.September, 15, 9, 0, 0, 0, time.Local))
	require.Len(t, days, 30)
	for i, d := range days {
		assert.Equal(t, time.Date(2024, time.September, i+1, 0, 0, 0, 0, time.UTC).Format(KeyLayout), Key(d))
	}

	grid := Grid(Date(2024, time.September, 1), time.Monday)
	require.Len(t, grid, 42)
	seen := map[string]bool{}
	for _, d := range grid {
		key := Key(d)
		assert.False(t, seen[key], "duplicate day %s", key)
		seen[key] = true
	}
	assert.Equal(t, "2024-08-26", Key(grid[0]))
	assert.Equal(t, "2024-10-06", Key(grid[len(grid)-1]))

	parsed, err := ParseKey("2024-09-08")
	require.NoError(t, err)
	assert.Equal(t, "2024-09-08", Key(parsed))
	assert.Equal(t, time.Sunday, parsed.Weekday())

	assert.Equal(t, "2024-09-30", Key(EndOfMonth(parsed)))
	assert.Equal(t, 1, DaysUntil(Date(2024, time.September, 9), parsed))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(time.Date(2025, time.May, 3, 0, 5, 0, 0, time.Local), day(2025, time.May, 3)))
	assert.False(t, SameDay(time.Date(2025, time.May, 3, 23, 59, 0, 0, time.Local), day(2025, time.May, 4)))
}
