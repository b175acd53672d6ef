package plan

import (
	"reflect"
)

// Observer is called with the new snapshot after every committed change.
type Observer func(Tasks)

type Option func(*Store)

// WithIDFunc sets the identifier source used for new subjects and topics.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Store holds the current snapshot and applies mutations to it.
// It is not safe for concurrent use; callers drive it from a single event loop.
type Store struct {
	tasks     Tasks
	newID     IDFunc
	observers []Observer
}

func NewStore(initial Tasks, opts ...Option) *Store {
	if initial == nil {
		initial = Tasks{}
	}
	s := &Store{tasks: initial, newID: NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tasks returns the current snapshot. Callers must not modify it.
func (s *Store) Tasks() Tasks {
	return s.tasks
}

// Subscribe registers fn to run after each committed change.
func (s *Store) Subscribe(fn Observer) {
	s.observers = append(s.observers, fn)
}

func (s *Store) AddSubject(key, name string) Tasks {
	return s.commit(AddSubject(s.tasks, key, name, s.newID))
}

func (s *Store) AddTopic(key, subjectID, text string) Tasks {
	return s.commit(AddTopic(s.tasks, key, subjectID, text, s.newID))
}

func (s *Store) ToggleTopic(key, subjectID, topicID string) Tasks {
	return s.commit(ToggleTopic(s.tasks, key, subjectID, topicID))
}

func (s *Store) UpdateTopic(key, subjectID, topicID, text string) Tasks {
	return s.commit(UpdateTopic(s.tasks, key, subjectID, topicID, text))
}

func (s *Store) RenameSubject(key, subjectID, name string) Tasks {
	return s.commit(RenameSubject(s.tasks, key, subjectID, name))
}

func (s *Store) DeleteSubject(key, subjectID string) Tasks {
	return s.commit(DeleteSubject(s.tasks, key, subjectID))
}

func (s *Store) DeleteTopic(key, subjectID, topicID string) Tasks {
	return s.commit(DeleteTopic(s.tasks, key, subjectID, topicID))
}

func (s *Store) commit(next Tasks) Tasks {
	if Same(next, s.tasks) {
		return s.tasks
	}
	s.tasks = next
	for _, fn := range s.observers {
		fn(next)
	}
	return next
}

// Same reports whether a and b are the same snapshot value, which is how
// mutations signal that nothing changed.
func Same(a, b Tasks) bool {
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}
