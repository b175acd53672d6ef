// Package stats derives completion figures from a plan snapshot.
//
// All functions are pure: they read the snapshot and the requested month and
// keep nothing between calls.
package stats

import (
	"math"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"studyplan/internal/calendar"
	"studyplan/internal/plan"
)

// DefaultLocale drives subject-name upper-casing when grouping, so that
// "matematik" and "MATEMATİK" land in the same bucket.
var DefaultLocale = language.Turkish

type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	Percent   int `json:"percent" yaml:"percent"`
}

type SubjectSummary struct {
	Name string `json:"name" yaml:"name"`
	Summary `yaml:",inline"`
}

type options struct {
	locale language.Tag
}

type Option func(*options)

// WithLocale sets the language used to upper-case subject names into buckets.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// Percent rounds completed/total*100 half up, and is 0 when total is 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(completed)/float64(total)*100 + 0.5))
}

// Monthly sums every topic planned in ref's month.
func Monthly(ref time.Time, tasks plan.Tasks) Summary {
	var sum Summary
	for _, d := range calendar.MonthDays(ref) {
		day := Day(tasks, calendar.Key(d))
		sum.Total += day.Total
		sum.Completed += day.Completed
	}
	sum.Percent = Percent(sum.Completed, sum.Total)
	return sum
}

// Day sums the topics planned under a single date key.
func Day(tasks plan.Tasks, key string) Summary {
	var sum Summary
	for _, s := range tasks[key] {
		total, completed := s.Counts()
		sum.Total += total
		sum.Completed += completed
	}
	sum.Percent = Percent(sum.Completed, sum.Total)
	return sum
}

// BySubject groups ref's month by normalized subject name and orders the
// groups by percent, highest first. Groups with equal percent keep the order
// in which they were first seen, scanning days in date order.
func BySubject(ref time.Time, tasks plan.Tasks, opts ...Option) []SubjectSummary {
	o := options{locale: DefaultLocale}
	for _, opt := range opts {
		opt(&o)
	}
	upper := cases.Upper(o.locale)

	out := []SubjectSummary{}
	index := map[string]int{}
	for _, d := range calendar.MonthDays(ref) {
		for _, s := range tasks[calendar.Key(d)] {
			name := upper.String(strings.TrimSpace(s.Name))
			i, ok := index[name]
			if !ok {
				i = len(out)
				index[name] = i
				out = append(out, SubjectSummary{Name: name})
			}
			total, completed := s.Counts()
			out[i].Total += total
			out[i].Completed += completed
		}
	}
	for i := range out {
		out[i].Percent = Percent(out[i].Completed, out[i].Total)
	}
	slices.SortStableFunc(out, func(a, b SubjectSummary) int {
		return b.Percent - a.Percent
	})
	return out
}
