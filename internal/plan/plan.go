// Package plan holds the date-keyed study plan and its mutations.
//
// A Tasks value is treated as immutable. Every mutation returns a new map that
// shares the untouched days with its input, and a rejected mutation returns the
// input itself.
package plan

import (
	"slices"

	"github.com/google/uuid"
)

type Topic struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

type Subject struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Topics []Topic `json:"topics" yaml:"topics"`
}

// Tasks maps a DateKey to the subjects planned on that day.
// A missing key and an empty list both mean nothing is planned.
type Tasks map[string][]Subject

// IDFunc returns a new identifier on every call.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// Day returns the subjects stored under key.
func (t Tasks) Day(key string) []Subject {
	return t[key]
}

// Subject finds a subject by id under key.
func (t Tasks) Subject(key, subjectID string) (Subject, bool) {
	for _, s := range t[key] {
		if s.ID == subjectID {
			return s, true
		}
	}
	return Subject{}, false
}

// Keys returns the date keys present in t in ascending order.
func (t Tasks) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Counts returns the number of topics and completed topics in s.
func (s Subject) Counts() (total, completed int) {
	for _, tp := range s.Topics {
		total++
		if tp.Completed {
			completed++
		}
	}
	return total, completed
}
