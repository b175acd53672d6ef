package plan

import (
	"slices"
	"strings"
)

// AddSubject appends a subject named name to the day under key, creating the day when needed.
// A blank name leaves t unchanged.
func AddSubject(t Tasks, key, name string, newID IDFunc) Tasks {
	name = strings.TrimSpace(name)
	if name == "" {
		return t
	}
	day := t[key]
	s := Subject{
		ID:     freshID(newID, func(id string) bool { return hasSubject(day, id) }),
		Name:   name,
		Topics: []Topic{},
	}
	return t.with(key, append(slices.Clip(day), s))
}

// AddTopic appends a topic to an existing subject. A blank text, a day without
// subjects or an unknown subject leaves t unchanged.
func AddTopic(t Tasks, key, subjectID, text string, newID IDFunc) Tasks {
	text = strings.TrimSpace(text)
	if text == "" {
		return t
	}
	return updateSubject(t, key, subjectID, func(s Subject) (Subject, bool) {
		tp := Topic{
			ID:   freshID(newID, func(id string) bool { return hasTopic(s.Topics, id) }),
			Text: text,
		}
		s.Topics = append(slices.Clip(s.Topics), tp)
		return s, true
	})
}

// ToggleTopic flips the completed flag of a topic.
func ToggleTopic(t Tasks, key, subjectID, topicID string) Tasks {
	return updateTopic(t, key, subjectID, topicID, func(tp Topic) (Topic, bool) {
		tp.Completed = !tp.Completed
		return tp, true
	})
}

// UpdateTopic replaces the text of a topic. A blank text leaves t unchanged.
func UpdateTopic(t Tasks, key, subjectID, topicID, text string) Tasks {
	text = strings.TrimSpace(text)
	if text == "" {
		return t
	}
	return updateTopic(t, key, subjectID, topicID, func(tp Topic) (Topic, bool) {
		if tp.Text == text {
			return tp, false
		}
		tp.Text = text
		return tp, true
	})
}

// RenameSubject replaces the name of a subject. A blank name leaves t unchanged.
func RenameSubject(t Tasks, key, subjectID, name string) Tasks {
	name = strings.TrimSpace(name)
	if name == "" {
		return t
	}
	return updateSubject(t, key, subjectID, func(s Subject) (Subject, bool) {
		if s.Name == name {
			return s, false
		}
		s.Name = name
		return s, true
	})
}

// DeleteSubject removes a subject and its topics from the day under key.
func DeleteSubject(t Tasks, key, subjectID string) Tasks {
	day, ok := t[key]
	if !ok || !hasSubject(day, subjectID) {
		return t
	}
	return t.with(key, slices.DeleteFunc(slices.Clone(day), func(s Subject) bool {
		return s.ID == subjectID
	}))
}

// DeleteTopic removes a topic from its subject.
func DeleteTopic(t Tasks, key, subjectID, topicID string) Tasks {
	return updateSubject(t, key, subjectID, func(s Subject) (Subject, bool) {
		if !hasTopic(s.Topics, topicID) {
			return s, false
		}
		s.Topics = slices.DeleteFunc(slices.Clone(s.Topics), func(tp Topic) bool {
			return tp.ID == topicID
		})
		return s, true
	})
}

// with returns a copy of t whose entry for key is day.
func (t Tasks) with(key string, day []Subject) Tasks {
	out := make(Tasks, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[key] = day
	return out
}

func updateSubject(t Tasks, key, subjectID string, fn func(Subject) (Subject, bool)) Tasks {
	day, ok := t[key]
	if !ok {
		return t
	}
	i := slices.IndexFunc(day, func(s Subject) bool { return s.ID == subjectID })
	if i < 0 {
		return t
	}
	s, changed := fn(day[i])
	if !changed {
		return t
	}
	next := slices.Clone(day)
	next[i] = s
	return t.with(key, next)
}

func updateTopic(t Tasks, key, subjectID, topicID string, fn func(Topic) (Topic, bool)) Tasks {
	return updateSubject(t, key, subjectID, func(s Subject) (Subject, bool) {
		i := slices.IndexFunc(s.Topics, func(tp Topic) bool { return tp.ID == topicID })
		if i < 0 {
			return s, false
		}
		tp, changed := fn(s.Topics[i])
		if !changed {
			return s, false
		}
		s.Topics = slices.Clone(s.Topics)
		s.Topics[i] = tp
		return s, true
	})
}

func hasSubject(day []Subject, id string) bool {
	return slices.ContainsFunc(day, func(s Subject) bool { return s.ID == id })
}

func hasTopic(topics []Topic, id string) bool {
	return slices.ContainsFunc(topics, func(tp Topic) bool { return tp.ID == id })
}

// freshID draws ids until one is not taken in the enclosing scope.
func freshID(newID IDFunc, taken func(string) bool) string {
	if newID == nil {
		newID = NewID
	}
	for {
		id := newID()
		if id != "" && !taken(id) {
			return id
		}
	}
}
