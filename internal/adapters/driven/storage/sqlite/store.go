package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kontolab/konto-ingest/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// Store is the SQLite-backed snapshot catalog.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the catalog database in dataDir.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("catalog directory must not be empty")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// WAL keeps readers usable while a stage writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveSnapshot records a fetch.
func (s *Store) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (source_id, url, sha256, size_bytes, path, changed, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_id, fetched_at) DO UPDATE SET
			url = excluded.url,
			sha256 = excluded.sha256,
			size_bytes = excluded.size_bytes,
			path = excluded.path,
			changed = excluded.changed
	`, snap.SourceID, snap.URL, snap.SHA256, snap.SizeBytes, snap.Path,
		boolToInt(snap.Changed), snap.FetchedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot for a source.
func (s *Store) LatestSnapshot(ctx context.Context, sourceID string) (*domain.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT source_id, url, sha256, size_bytes, path, changed, fetched_at
		FROM snapshots WHERE source_id = ?
		ORDER BY fetched_at DESC LIMIT 1
	`, sourceID)

	var snap domain.Snapshot
	var changed int
	if err := row.Scan(&snap.SourceID, &snap.URL, &snap.SHA256, &snap.SizeBytes,
		&snap.Path, &changed, &snap.FetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	snap.Changed = changed != 0

	return &snap, nil
}

// ListSnapshots returns the most recent snapshot of every source.
// The latest row per source is picked via a self-join so fetched_at
// stays a plain column the driver can scan as a timestamp.
func (s *Store) ListSnapshots(ctx context.Context) ([]domain.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.source_id, s.url, s.sha256, s.size_bytes, s.path, s.changed, s.fetched_at
		FROM snapshots s
		JOIN (
			SELECT source_id, MAX(fetched_at) AS fetched_at
			FROM snapshots
			GROUP BY source_id
		) latest ON s.source_id = latest.source_id AND s.fetched_at = latest.fetched_at
		ORDER BY s.source_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.Snapshot //nolint:prealloc // size unknown from query
	for rows.Next() {
		var snap domain.Snapshot
		var changed int
		if err := rows.Scan(&snap.SourceID, &snap.URL, &snap.SHA256, &snap.SizeBytes,
			&snap.Path, &changed, &snap.FetchedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snap.Changed = changed != 0
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}

	return snaps, nil
}

// SaveRun records a completed stage execution.
func (s *Store) SaveRun(ctx context.Context, run domain.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, stage, started_at, finished_at, total, processed, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Stage), run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.Total, run.Processed, run.Failed)

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ListRuns returns run history for a stage, newest first.
func (s *Store) ListRuns(ctx context.Context, stage domain.RunStage) ([]domain.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, stage, started_at, finished_at, total, processed, failed
		FROM runs WHERE stage = ?
		ORDER BY started_at DESC
	`, string(stage))
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run domain.Run
		var st string
		if err := rows.Scan(&run.ID, &st, &run.StartedAt, &run.FinishedAt,
			&run.Total, &run.Processed, &run.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Stage = domain.RunStage(st)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
