// Package migrate loads the persisted plan and upgrades the legacy flat layout.
//
// The legacy layout stored a flat topic list per day. Loading it wraps each day's
// list in a single "Genel" subject. Nothing is written here: the upgraded plan
// reaches the current key on the next persistence cycle, and the legacy key is
// left in place.
package migrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"studyplan/internal/plan"
)

const (
	CurrentKey = "kpss-planner-tasks-v2"
	LegacyKey  = "kpss-planner-tasks"

	// LegacySubjectName names the subject synthesized for each migrated day.
	LegacySubjectName = "Genel"
)

var (
	ErrInvalidCurrent = errors.New("invalid plan data")
	ErrInvalidLegacy  = errors.New("invalid legacy plan data")
)

type Source string

const (
	SourceCurrent Source = "current"
	SourceLegacy  Source = "legacy"
	SourceEmpty   Source = "empty"
)

// Getter reads a value from the key/value store. ok is false when the key is absent.
type Getter interface {
	Get(key string) (value []byte, ok bool, err error)
}

type Result struct {
	Tasks  plan.Tasks
	Source Source
}

// Load returns the plan stored under CurrentKey, or the upgraded LegacyKey data when
// only that exists, or an empty plan. Malformed data is an error.
func Load(kv Getter, newID plan.IDFunc) (Result, error) {
	if newID == nil {
		newID = plan.NewID
	}

	data, ok, err := kv.Get(CurrentKey)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", CurrentKey, err)
	}
	if ok && len(data) > 0 {
		tasks, err := decodeCurrent(data)
		if err != nil {
			return Result{}, err
		}
		return Result{Tasks: tasks, Source: SourceCurrent}, nil
	}

	data, ok, err = kv.Get(LegacyKey)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", LegacyKey, err)
	}
	if ok && len(data) > 0 {
		tasks, err := decodeLegacy(data, newID)
		if err != nil {
			return Result{}, err
		}
		return Result{Tasks: tasks, Source: SourceLegacy}, nil
	}

	return Result{Tasks: plan.Tasks{}, Source: SourceEmpty}, nil
}

func decodeCurrent(data []byte) (plan.Tasks, error) {
	if err := validate(currentSchema, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCurrent, err)
	}
	tasks, err := plan.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCurrent, err)
	}
	return tasks, nil
}

func decodeLegacy(data []byte, newID plan.IDFunc) (plan.Tasks, error) {
	if err := validate(legacySchema, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLegacy, err)
	}
	var legacy map[string][]plan.Topic
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLegacy, err)
	}

	keys := make([]string, 0, len(legacy))
	for k := range legacy {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tasks := make(plan.Tasks, len(legacy))
	for _, k := range keys {
		topics := legacy[k]
		if topics == nil {
			topics = []plan.Topic{}
		}
		tasks[k] = []plan.Subject{{
			ID:     newID(),
			Name:   LegacySubjectName,
			Topics: topics,
		}}
	}
	return tasks, nil
}
