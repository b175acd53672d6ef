package plan

import (
	"encoding/json"
	"fmt"
)

// Marshal encodes t in the persisted current-schema layout.
func Marshal(t Tasks) ([]byte, error) {
	if t == nil {
		t = Tasks{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

// Unmarshal decodes the current-schema layout.
func Unmarshal(data []byte) (Tasks, error) {
	var t Tasks
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if t == nil {
		t = Tasks{}
	}
	return t, nil
}
