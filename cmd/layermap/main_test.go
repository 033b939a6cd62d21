package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layermap/internal/config"
	"layermap/internal/history"
	"layermap/internal/model"
)

func sampleProj() model.ProjectStructure {
	return model.ProjectStructure{
		RunID:    "run-1",
		RootPath: "/workspace/app",
		Files:    []*model.FileNode{{Path: "a.js"}},
		Dependencies: []model.Dependency{
			{From: "a.js", To: "[External] react", Kind: model.KindImport},
			{From: "a.js", To: "[DB:postgres]", Kind: model.KindDatabase},
		},
		Stats:     model.ProjectStats{TotalFiles: 1, TotalDependencies: 2, CycleCount: 0, AverageCoupling: 1.5},
		StartedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Duration:  time.Second,
	}
}

func TestWriteOutputs_WritesEveryConfiguredFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.JSON = filepath.Join(dir, "report.json")
	cfg.Output.DOT = filepath.Join(dir, "report.dot")
	cfg.Output.Mermaid = filepath.Join(dir, "report.mmd")

	require.NoError(t, writeOutputs(cfg, sampleProj()))

	for _, p := range []string{cfg.Output.JSON, cfg.Output.DOT, cfg.Output.Mermaid} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestWriteOutputs_SkipsUnsetFormats(t *testing.T) {
	cfg := config.Default()
	assert.NoError(t, writeOutputs(cfg, sampleProj()))
}

func TestSaveRunHistory_PersistsCountsDerivedFromDependencies(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, saveRunHistory(dbPath, "/workspace/app", sampleProj()))

	store, err := history.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.LoadRuns("/workspace/app", time.Time{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].ExternalCount)
	assert.Equal(t, 1, runs[0].DatabaseCount)
	assert.Equal(t, 0, runs[0].MissingCount)
}
