package history

import "time"

// SchemaVersion is the current on-disk schema version this package writes
// and expects to read. Bump alongside a new entry in migrations.
const SchemaVersion = 1

// Run is one persisted record of a completed workspace analysis.
type Run struct {
	SchemaVersion   int           `json:"schema_version"`
	RunID           string        `json:"run_id"`
	RootPath        string        `json:"root_path"`
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration"`
	CommitHash      string        `json:"commit_hash,omitempty"`
	CommitTimestamp time.Time     `json:"commit_timestamp,omitempty"`
	FileCount       int           `json:"file_count"`
	DependencyCount int           `json:"dependency_count"`
	CycleCount      int           `json:"cycle_count"`
	ExternalCount   int           `json:"external_count"`
	MissingCount    int           `json:"missing_count"`
	DatabaseCount   int           `json:"database_count"`
	AverageCoupling float64       `json:"average_coupling"`
}

// TrendPoint is one Run annotated with its delta from the previous Run for
// the same root path, plus a moving average over a trailing window.
type TrendPoint struct {
	RunID                string    `json:"run_id"`
	StartedAt            time.Time `json:"started_at"`
	CommitHash           string    `json:"commit_hash,omitempty"`
	FileCount            int       `json:"file_count"`
	DependencyCount      int       `json:"dependency_count"`
	CycleCount           int       `json:"cycle_count"`
	AverageCoupling      float64   `json:"average_coupling"`
	DeltaFiles           int       `json:"delta_files"`
	DeltaDependencies    int       `json:"delta_dependencies"`
	DeltaCycles          int       `json:"delta_cycles"`
	DeltaAverageCoupling float64   `json:"delta_average_coupling"`
	AvgCycles            float64   `json:"avg_cycles"`
	AvgCoupling          float64   `json:"avg_coupling"`
	WindowHours          float64   `json:"window_hours"`
}

// TrendReport summarizes a sequence of Runs for one root path over a window.
type TrendReport struct {
	SchemaVersion int          `json:"schema_version"`
	RootPath      string       `json:"root_path"`
	Since         time.Time    `json:"since"`
	Until         time.Time    `json:"until"`
	Window        string       `json:"window"`
	RunCount      int          `json:"run_count"`
	Points        []TrendPoint `json:"points"`
}
