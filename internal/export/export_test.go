package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"studyplan/internal/plan"
	"studyplan/internal/stats"
)

var sample = plan.Tasks{
	"2025-01-01": {{ID: "s1", Name: "Tarih", Topics: []plan.Topic{
		{ID: "t1", Text: "Osmanlı", Completed: true},
		{ID: "t2", Text: "Cumhuriyet", Completed: false},
	}}},
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": JSON, "JSON": JSON, "yaml": YAML, "yml": YAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, JSON, sample))

	var back plan.Tasks
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sample, back)
	assert.Contains(t, buf.String(), "\n  \"2025-01-01\"")
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, YAML, sample))
	assert.Contains(t, buf.String(), "name: Tarih")
	assert.Contains(t, buf.String(), "completed: true")

	var back plan.Tasks
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sample, back)
}

func TestEncode_YAMLInlinesSummary(t *testing.T) {
	var buf bytes.Buffer
	rows := []stats.SubjectSummary{{Name: "TARİH", Summary: stats.Summary{Total: 2, Completed: 1, Percent: 50}}}
	require.NoError(t, Encode(&buf, YAML, rows))
	assert.Contains(t, buf.String(), "percent: 50")
	assert.NotContains(t, buf.String(), "summary:")
}

func TestEncode_Unknown(t *testing.T) {
	assert.Error(t, Encode(&bytes.Buffer{}, Format("xml"), sample))
}
