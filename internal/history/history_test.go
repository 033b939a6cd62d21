package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "layermap-history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)

	run := Run{
		RunID:           "run-1",
		RootPath:        "/workspace/app",
		StartedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Duration:        1200 * time.Millisecond,
		FileCount:       42,
		DependencyCount: 77,
		CycleCount:      2,
		ExternalCount:   10,
		MissingCount:    1,
		DatabaseCount:   1,
		AverageCoupling: 3.5,
	}
	require.NoError(t, store.SaveRun(run))

	loaded, err := store.LoadRuns("/workspace/app", time.Time{})
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, run.RunID, loaded[0].RunID)
	assert.Equal(t, run.FileCount, loaded[0].FileCount)
	assert.Equal(t, run.Duration, loaded[0].Duration)
	assert.Equal(t, run.AverageCoupling, loaded[0].AverageCoupling)
}

func TestStore_SaveRun_UpsertsOnConflict(t *testing.T) {
	store := openTestStore(t)

	run := Run{RunID: "run-1", RootPath: "/workspace/app", StartedAt: time.Now().UTC(), FileCount: 10}
	require.NoError(t, store.SaveRun(run))

	run.FileCount = 20
	require.NoError(t, store.SaveRun(run))

	loaded, err := store.LoadRuns("/workspace/app", time.Time{})
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 20, loaded[0].FileCount)
}

func TestStore_LoadRuns_FiltersByRootPathAndSince(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveRun(Run{RunID: "a", RootPath: "/one", StartedAt: base}))
	require.NoError(t, store.SaveRun(Run{RunID: "b", RootPath: "/one", StartedAt: base.Add(24 * time.Hour)}))
	require.NoError(t, store.SaveRun(Run{RunID: "c", RootPath: "/two", StartedAt: base}))

	onlyOne, err := store.LoadRuns("/one", time.Time{})
	require.NoError(t, err)
	assert.Len(t, onlyOne, 2)

	recentOnly, err := store.LoadRuns("/one", base.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, recentOnly, 1)
	assert.Equal(t, "b", recentOnly[0].RunID)
}

func TestStore_SaveRun_RejectsEmptyRootPathOrRunID(t *testing.T) {
	store := openTestStore(t)
	assert.Error(t, store.SaveRun(Run{RunID: "x", RootPath: ""}))
	assert.Error(t, store.SaveRun(Run{RunID: "", RootPath: "/x"}))
}

func TestOpen_RejectsDirectoryPath(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.Error(t, err)
}

func TestBuildTrendReport_ComputesDeltasAndMovingAverage(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	runs := []Run{
		{RunID: "1", StartedAt: base, FileCount: 10, DependencyCount: 20, CycleCount: 0, AverageCoupling: 1.0},
		{RunID: "2", StartedAt: base.Add(time.Hour), FileCount: 12, DependencyCount: 25, CycleCount: 1, AverageCoupling: 1.5},
		{RunID: "3", StartedAt: base.Add(2 * time.Hour), FileCount: 15, DependencyCount: 28, CycleCount: 1, AverageCoupling: 2.0},
	}

	report, err := BuildTrendReport("/workspace/app", runs, 3*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "/workspace/app", report.RootPath)
	require.Len(t, report.Points, 3)

	assert.Equal(t, 0, report.Points[0].DeltaFiles)
	assert.Equal(t, 2, report.Points[1].DeltaFiles)
	assert.Equal(t, 1, report.Points[1].DeltaCycles)
	assert.InDelta(t, 0.5, report.Points[1].DeltaAverageCoupling, 0.0001)
	assert.InDelta(t, 1.5, report.Points[2].AvgCoupling, 0.0001)
}

func TestBuildTrendReport_EmptyRunsIsError(t *testing.T) {
	_, err := BuildTrendReport("/workspace/app", nil, time.Hour)
	assert.Error(t, err)
}
