package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
)

// Store persists Run records for one or more workspace roots in a single
// sqlite file.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// Open creates or migrates the sqlite file at path and returns a ready
// Store. The parent directory is created if missing.
func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts when watch-mode saves a run
	// while a concurrent report export reads the same file.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun upserts run, keyed by (RootPath, RunID).
func (s *Store) SaveRun(run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.RootPath = strings.TrimSpace(run.RootPath)
	if run.RootPath == "" {
		return fmt.Errorf("run root path must not be empty")
	}
	if strings.TrimSpace(run.RunID) == "" {
		return fmt.Errorf("run id must not be empty")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.SchemaVersion == 0 {
		run.SchemaVersion = SchemaVersion
	}
	if run.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported run schema version %d", run.SchemaVersion)
	}

	commitTS := ""
	if !run.CommitTimestamp.IsZero() {
		commitTS = run.CommitTimestamp.UTC().Format(time.RFC3339Nano)
	}

	query := `
INSERT INTO runs (
  run_id, root_path, schema_version, started_at_utc, duration_ms, commit_hash, commit_ts_utc,
  file_count, dependency_count, cycle_count, external_count, missing_count, database_count,
  average_coupling
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(root_path, run_id) DO UPDATE SET
  schema_version=excluded.schema_version,
  started_at_utc=excluded.started_at_utc,
  duration_ms=excluded.duration_ms,
  commit_hash=excluded.commit_hash,
  commit_ts_utc=excluded.commit_ts_utc,
  file_count=excluded.file_count,
  dependency_count=excluded.dependency_count,
  cycle_count=excluded.cycle_count,
  external_count=excluded.external_count,
  missing_count=excluded.missing_count,
  database_count=excluded.database_count,
  average_coupling=excluded.average_coupling
`
	return s.withRetry("save run", func() error {
		_, err := s.db.Exec(
			query,
			run.RunID,
			run.RootPath,
			run.SchemaVersion,
			run.StartedAt.UTC().Format(time.RFC3339Nano),
			run.Duration.Milliseconds(),
			run.CommitHash,
			commitTS,
			run.FileCount,
			run.DependencyCount,
			run.CycleCount,
			run.ExternalCount,
			run.MissingCount,
			run.DatabaseCount,
			run.AverageCoupling,
		)
		return err
	})
}

// LoadRuns returns every Run recorded for rootPath with StartedAt at or
// after since, ordered oldest first. A zero since returns the full history.
func (s *Store) LoadRuns(rootPath string, since time.Time) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rootPath = strings.TrimSpace(rootPath)
	if rootPath == "" {
		return nil, fmt.Errorf("root path must not be empty")
	}

	query := `
SELECT
  run_id, root_path, schema_version, started_at_utc, duration_ms, commit_hash, commit_ts_utc,
  file_count, dependency_count, cycle_count, external_count, missing_count, database_count,
  average_coupling
FROM runs
WHERE root_path = ?
`
	args := []any{rootPath}
	if !since.IsZero() {
		query += " AND started_at_utc >= ?"
		args = append(args, since.UTC().Format(time.RFC3339Nano))
	}
	query += " ORDER BY started_at_utc ASC, run_id ASC"

	var rows *sql.Rows
	err := s.withRetry("load runs", func() error {
		var qErr error
		rows, qErr = s.db.Query(query, args...)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			startedRaw   string
			commitTSRaw  string
			durationMs   int64
			run          Run
		)
		if err := rows.Scan(
			&run.RunID,
			&run.RootPath,
			&run.SchemaVersion,
			&startedRaw,
			&durationMs,
			&run.CommitHash,
			&commitTSRaw,
			&run.FileCount,
			&run.DependencyCount,
			&run.CycleCount,
			&run.ExternalCount,
			&run.MissingCount,
			&run.DatabaseCount,
			&run.AverageCoupling,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}

		started, err := time.Parse(time.RFC3339Nano, startedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse run start time %q: %w", startedRaw, err)
		}
		run.StartedAt = started.UTC()
		run.Duration = time.Duration(durationMs) * time.Millisecond

		if commitTSRaw != "" {
			commitTS, err := time.Parse(time.RFC3339Nano, commitTSRaw)
			if err != nil {
				return nil, fmt.Errorf("parse commit timestamp %q: %w", commitTSRaw, err)
			}
			run.CommitTimestamp = commitTS.UTC()
		}

		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}

	return runs, nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

// Path returns the sqlite file path this Store was opened with.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// IsCorruptError reports whether err looks like sqlite file corruption
// rather than a transient lock or query error.
func IsCorruptError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "malformed") || strings.Contains(msg, "not a database") || errors.Is(err, os.ErrInvalid)
}
