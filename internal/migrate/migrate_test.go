package migrate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplan/internal/plan"
	"studyplan/internal/storage"
)

func ids() plan.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("fresh-%d", n)
	}
}

func kvWith(t *testing.T, entries map[string]string) *storage.Memory {
	t.Helper()
	kv := storage.NewMemory()
	for k, v := range entries {
		require.NoError(t, kv.Set(k, []byte(v)))
	}
	return kv
}

func TestLoad_Empty(t *testing.T) {
	res, err := Load(storage.NewMemory(), ids())
	require.NoError(t, err)
	assert.Equal(t, SourceEmpty, res.Source)
	assert.NotNil(t, res.Tasks)
	assert.Empty(t, res.Tasks)
}

func TestLoad_Current(t *testing.T) {
	kv := kvWith(t, map[string]string{
		CurrentKey: `{"2025-01-01":[{"id":"s1","name":"Tarih","topics":[{"id":"t1","text":"Osmanlı","completed":true}]}]}`,
		LegacyKey:  `{"2025-01-01":[{"id":"a","text":"ignored","completed":false}]}`,
	})
	res, err := Load(kv, ids())
	require.NoError(t, err)
	assert.Equal(t, SourceCurrent, res.Source)
	assert.Equal(t, plan.Tasks{
		"2025-01-01": {{ID: "s1", Name: "Tarih", Topics: []plan.Topic{{ID: "t1", Text: "Osmanlı", Completed: true}}}},
	}, res.Tasks)
}

func TestLoad_Legacy(t *testing.T) {
	kv := kvWith(t, map[string]string{
		LegacyKey: `{
			"2025-01-02": [],
			"2025-01-01": [{"id":"a","text":"t1","completed":false},{"id":"b","text":"t2","completed":true}]
		}`,
	})
	res, err := Load(kv, ids())
	require.NoError(t, err)
	assert.Equal(t, SourceLegacy, res.Source)
	assert.Equal(t, plan.Tasks{
		"2025-01-01": {{ID: "fresh-1", Name: "Genel", Topics: []plan.Topic{
			{ID: "a", Text: "t1", Completed: false},
			{ID: "b", Text: "t2", Completed: true},
		}}},
		"2025-01-02": {{ID: "fresh-2", Name: "Genel", Topics: []plan.Topic{}}},
	}, res.Tasks)

	t.Run("legacy key is left untouched and current is not written", func(t *testing.T) {
		_, ok, err := kv.Get(CurrentKey)
		require.NoError(t, err)
		assert.False(t, ok)
		v, ok, err := kv.Get(LegacyKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, string(v), `"t1"`)
	})
}

func TestLoad_SingleLegacyEntry(t *testing.T) {
	kv := kvWith(t, map[string]string{
		LegacyKey: `{"2025-01-01": [{"id":"a", "text":"t1", "completed":false}]}`,
	})
	res, err := Load(kv, plan.NewID)
	require.NoError(t, err)

	day := res.Tasks["2025-01-01"]
	require.Len(t, day, 1)
	assert.NotEmpty(t, day[0].ID)
	assert.NotEqual(t, "a", day[0].ID)
	assert.Equal(t, "Genel", day[0].Name)
	assert.Equal(t, []plan.Topic{{ID: "a", Text: "t1", Completed: false}}, day[0].Topics)
}

func TestLoad_EmptyValueCountsAsAbsent(t *testing.T) {
	kv := kvWith(t, map[string]string{
		CurrentKey: "",
		LegacyKey:  `{"2025-01-01":[{"id":"a","text":"t1","completed":false}]}`,
	})
	res, err := Load(kv, ids())
	require.NoError(t, err)
	assert.Equal(t, SourceLegacy, res.Source)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		want    error
	}{
		{"current not json", map[string]string{CurrentKey: `{oops`}, ErrInvalidCurrent},
		{"current null", map[string]string{CurrentKey: `null`}, ErrInvalidCurrent},
		{"current wrong shape", map[string]string{CurrentKey: `{"2025-01-01":[{"id":"s","name":"n"}]}`}, ErrInvalidCurrent},
		{"current topic flag as string", map[string]string{CurrentKey: `{"2025-01-01":[{"id":"s","name":"n","topics":[{"id":"t","text":"x","completed":"yes"}]}]}`}, ErrInvalidCurrent},
		{"current bad date key", map[string]string{CurrentKey: `{"01/02/2025":[]}`}, ErrInvalidCurrent},
		{"current trailing data", map[string]string{CurrentKey: `{} {}`}, ErrInvalidCurrent},
		{"legacy not json", map[string]string{LegacyKey: `[`}, ErrInvalidLegacy},
		{"legacy nested layout", map[string]string{LegacyKey: `{"2025-01-01":[{"id":"s","name":"n","topics":[]}]}`}, ErrInvalidLegacy},
		{"legacy array root", map[string]string{LegacyKey: `[]`}, ErrInvalidLegacy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(kvWith(t, tt.entries), ids())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

type failingKV struct{}

func (failingKV) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk gone") }

func TestLoad_ReadError(t *testing.T) {
	_, err := Load(failingKV{}, ids())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestLoad_MigratedRoundTrip(t *testing.T) {
	kv := kvWith(t, map[string]string{
		LegacyKey: `{"2025-01-01":[{"id":"a","text":"t1","completed":true}]}`,
	})
	first, err := Load(kv, ids())
	require.NoError(t, err)

	data, err := plan.Marshal(first.Tasks)
	require.NoError(t, err)
	require.NoError(t, kv.Set(CurrentKey, data))

	second, err := Load(kv, ids())
	require.NoError(t, err)
	assert.Equal(t, SourceCurrent, second.Source)
	assert.Equal(t, first.Tasks, second.Tasks)
}
