// Package driving defines the interfaces through which the CLI drives
// the pipeline core.
package driving

import (
	"context"

	"github.com/kontolab/konto-ingest/internal/core/domain"
)

// SourceFilter narrows which manifest sources a stage processes.
// Zero values mean "no filter".
type SourceFilter struct {
	// Domain keeps only sources of one subject area.
	Domain domain.Domain

	// Freq keeps only sources with one crawl frequency.
	Freq domain.CrawlFrequency
}

// RunReport summarises one stage execution. Per-item failures are
// accumulated here instead of aborting the stage.
type RunReport struct {
	// Stage is the pipeline stage that ran.
	Stage domain.RunStage

	// Total, Processed and Failed count the items handled.
	Total     int
	Processed int
	Failed    int

	// Errors holds one message per failed item.
	Errors []string
}

// AddError records a failed item.
func (r *RunReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Failed++
}

// AddProcessed records a successful item.
func (r *RunReport) AddProcessed() {
	r.Processed++
}

// OK reports whether the stage completed without item failures.
func (r *RunReport) OK() bool {
	return r.Failed == 0
}

// Ingestor runs Bronze ingestion: manifest sources are fetched and
// written to the Bronze layer when changed.
type Ingestor interface {
	Ingest(ctx context.Context, filter SourceFilter) (*RunReport, error)
}

// Processor runs Silver processing: Bronze files are parsed into
// normalised records and written to the Silver layer.
type Processor interface {
	Process(ctx context.Context, filter SourceFilter) (*RunReport, error)
}

// Watcher re-runs pipeline stages when watched files change.
type Watcher interface {
	// Watch blocks until ctx is cancelled, re-running Silver processing
	// when the sources manifest or a Bronze file changes.
	Watch(ctx context.Context) error
}
