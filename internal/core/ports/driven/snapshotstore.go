package driven

import (
	"context"

	"github.com/kontolab/konto-ingest/internal/core/domain"
)

// SnapshotStore is the Bronze catalog: one row per fetch, plus run
// history. Backed by SQLite so re-runs can answer "changed since last
// run" without re-hashing every Bronze file.
type SnapshotStore interface {
	// SaveSnapshot records a fetch. The latest snapshot per source wins.
	SaveSnapshot(ctx context.Context, snap domain.Snapshot) error

	// LatestSnapshot returns the most recent snapshot for a source,
	// or domain.ErrNotFound.
	LatestSnapshot(ctx context.Context, sourceID string) (*domain.Snapshot, error)

	// ListSnapshots returns the most recent snapshot of every source.
	ListSnapshots(ctx context.Context) ([]domain.Snapshot, error)

	// SaveRun records a completed pipeline stage execution.
	SaveRun(ctx context.Context, run domain.Run) error

	// ListRuns returns run history for a stage, newest first.
	ListRuns(ctx context.Context, stage domain.RunStage) ([]domain.Run, error)

	// Close releases the underlying database.
	Close() error
}
