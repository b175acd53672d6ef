package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplan/internal/config"
	"studyplan/internal/migrate"
	"studyplan/internal/storage"
)

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.DefaultConfigFileName)
	cfg, err := config.LoadOrCreate(cfgPath)
	require.NoError(t, err)

	db, err := storage.Open(cfg.DBPath)
	require.NoError(t, err)
	require.NoError(t, db.Set(migrate.LegacyKey, []byte(`{"2025-01-01":[{"id":"t1","text":"Osmanlı","completed":false}]}`)))
	require.NoError(t, db.Close())

	out := filepath.Join(dir, "plan.yaml")
	rootCmd.SetArgs([]string{"--config", cfgPath, "export", "--format", "yaml", "--out", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Genel")
	assert.Contains(t, string(data), "text: Osmanlı")

	db, err = storage.Open(cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()
	_, ok, err := db.Get(migrate.CurrentKey)
	require.NoError(t, err)
	assert.True(t, ok, "legacy plan is written under the current key")
}
