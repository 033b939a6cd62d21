package history

import (
	"fmt"
	"math"
	"time"
)

// BuildTrendReport turns a chronologically ordered slice of Runs for one
// root path into a TrendReport, computing per-point deltas against the
// previous run and a trailing moving average over window.
func BuildTrendReport(rootPath string, runs []Run, window time.Duration) (TrendReport, error) {
	if len(runs) == 0 {
		return TrendReport{}, fmt.Errorf("no runs available")
	}

	points := make([]TrendPoint, 0, len(runs))
	for i, current := range runs {
		point := TrendPoint{
			RunID:           current.RunID,
			StartedAt:       current.StartedAt,
			CommitHash:      current.CommitHash,
			FileCount:       current.FileCount,
			DependencyCount: current.DependencyCount,
			CycleCount:      current.CycleCount,
			AverageCoupling: current.AverageCoupling,
		}

		if i > 0 {
			prev := runs[i-1]
			point.DeltaFiles = current.FileCount - prev.FileCount
			point.DeltaDependencies = current.DependencyCount - prev.DependencyCount
			point.DeltaCycles = current.CycleCount - prev.CycleCount
			point.DeltaAverageCoupling = current.AverageCoupling - prev.AverageCoupling
		}

		avgCycles, avgCoupling := movingAverages(runs, i, window)
		point.AvgCycles = round2(avgCycles)
		point.AvgCoupling = round2(avgCoupling)
		point.WindowHours = round2(window.Hours())
		points = append(points, point)
	}

	return TrendReport{
		SchemaVersion: SchemaVersion,
		RootPath:      rootPath,
		Since:         runs[0].StartedAt,
		Until:         runs[len(runs)-1].StartedAt,
		Window:        window.String(),
		RunCount:      len(points),
		Points:        points,
	}, nil
}

func movingAverages(runs []Run, index int, window time.Duration) (float64, float64) {
	if window <= 0 {
		return float64(runs[index].CycleCount), runs[index].AverageCoupling
	}

	cutoff := runs[index].StartedAt.Add(-window)
	var cyclesTotal int
	var couplingTotal float64
	count := 0
	for i := index; i >= 0; i-- {
		if runs[i].StartedAt.Before(cutoff) {
			break
		}
		cyclesTotal += runs[i].CycleCount
		couplingTotal += runs[i].AverageCoupling
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return float64(cyclesTotal) / float64(count), couplingTotal / float64(count)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
