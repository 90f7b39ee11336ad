package domain

import "time"

// Snapshot records one Bronze fetch of a source. A snapshot is written
// whether or not the content changed; Changed distinguishes the two so
// re-runs can skip unchanged sources without re-hashing files.
type Snapshot struct {
	// SourceID links to the manifest Source.
	SourceID string

	// URL is the location that was fetched.
	URL string

	// SHA256 is the content hash of the fetched bytes.
	SHA256 string

	// SizeBytes is the payload size.
	SizeBytes int64

	// Path is the Bronze file location on disk.
	Path string

	// Changed is true when the fetch wrote a new Bronze file.
	Changed bool

	// FetchedAt is when the fetch completed.
	FetchedAt time.Time
}

// RunStage identifies a pipeline stage in the run history.
type RunStage string

// Pipeline stages recorded in the catalog.
const (
	StageBronze RunStage = "bronze"
	StageSilver RunStage = "silver"
	StageSeed   RunStage = "seed"
	StageGold   RunStage = "gold"
)

// Run is one execution of a pipeline stage, kept in the catalog for
// operational history.
type Run struct {
	// ID is the unique run identifier.
	ID string

	// Stage is the pipeline stage that ran.
	Stage RunStage

	// StartedAt and FinishedAt bound the execution.
	StartedAt  time.Time
	FinishedAt time.Time

	// Total, Processed and Failed count the items handled.
	Total     int
	Processed int
	Failed    int
}
