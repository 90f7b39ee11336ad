// Package services holds the pipeline orchestration: Bronze ingestion,
// Silver processing, Gold export and the file watcher. Services drive
// the ports; adapters do the I/O.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/core/ports/driving"
	"github.com/kontolab/konto-ingest/internal/logger"
	"github.com/kontolab/konto-ingest/internal/sources"
)

// MetadataFile is the human-diffable ingestion log written next to the
// Bronze files after every ingest run.
const MetadataFile = "ingestion_metadata.json"

var _ driving.Ingestor = (*IngestService)(nil)

// IngestService runs Bronze ingestion: manifest sources are fetched,
// written to Bronze when changed, and catalogued.
type IngestService struct {
	sources   *sources.Loader
	fetcher   driven.Fetcher
	bronze    driven.BronzeStore
	catalog   driven.SnapshotStore
	bronzeDir string
	now       func() time.Time
}

// NewIngestService creates the Bronze ingestion service. The catalog
// may be nil; snapshots are then only recorded in the metadata file.
func NewIngestService(
	loader *sources.Loader,
	fetcher driven.Fetcher,
	bronze driven.BronzeStore,
	catalog driven.SnapshotStore,
	bronzeDir string,
) *IngestService {
	return &IngestService{
		sources:   loader,
		fetcher:   fetcher,
		bronze:    bronze,
		catalog:   catalog,
		bronzeDir: bronzeDir,
		now:       time.Now,
	}
}

// ingestEntry is one row of the ingestion metadata file.
type ingestEntry struct {
	SourceID  string `json:"source_id"`
	URL       string `json:"url"`
	SHA256    string `json:"sha256,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	Path      string `json:"path,omitempty"`
	Changed   bool   `json:"changed"`
	FetchedAt string `json:"fetched_at"`
	Error     string `json:"error,omitempty"`
}

// Ingest fetches every matching source and writes changed content to
// Bronze. Per-source failures are accumulated; the run continues and
// the report carries them.
func (s *IngestService) Ingest(ctx context.Context, filter driving.SourceFilter) (*driving.RunReport, error) {
	srcs, err := s.sources.Filter(filter)
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}
	if len(srcs) == 0 {
		return nil, fmt.Errorf("%w: domain=%q freq=%q", domain.ErrNoSources, filter.Domain, filter.Freq)
	}

	report := &driving.RunReport{Stage: domain.StageBronze, Total: len(srcs)}
	started := s.now()
	logger.Stage("bronze ingestion")
	logger.Info("ingesting %d sources", len(srcs))

	entries := make([]ingestEntry, 0, len(srcs))
	changed := 0
	for _, src := range srcs {
		entry := s.ingestOne(ctx, src)
		entries = append(entries, entry)

		if entry.Error != "" {
			report.AddError(fmt.Sprintf("%s: %s", src.ID, entry.Error))
			continue
		}
		report.AddProcessed()
		if entry.Changed {
			changed++
		}
	}

	if err := s.writeMetadata(entries); err != nil {
		return nil, err
	}
	recordRun(ctx, s.catalog, report, started, s.now)

	logger.Info("ingestion complete: %d/%d successful, %d files changed",
		report.Processed, report.Total, changed)
	return report, nil
}

func (s *IngestService) ingestOne(ctx context.Context, src domain.Source) ingestEntry {
	entry := ingestEntry{
		SourceID:  src.ID,
		URL:       src.URL,
		FetchedAt: s.now().UTC().Format(time.RFC3339),
	}
	logger.Info("ingesting %s from %s", src.ID, src.URL)

	content, err := s.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		entry.Error = err.Error()
		logger.Error("fetching %s: %v", src.ID, err)
		return entry
	}

	sha, changed, err := s.bronze.WriteIfChanged(src.ID, content)
	if err != nil {
		entry.Error = err.Error()
		logger.Error("writing bronze for %s: %v", src.ID, err)
		return entry
	}

	entry.SHA256 = sha
	entry.SizeBytes = int64(len(content))
	entry.Path = s.bronze.Path(src.ID)
	entry.Changed = changed
	if changed {
		logger.Debug("%s changed (%d bytes)", src.ID, len(content))
	} else {
		logger.Debug("%s unchanged, skipped", src.ID)
	}

	if s.catalog != nil {
		snap := domain.Snapshot{
			SourceID:  src.ID,
			URL:       src.URL,
			SHA256:    sha,
			SizeBytes: entry.SizeBytes,
			Path:      entry.Path,
			Changed:   changed,
			FetchedAt: s.now(),
		}
		if err := s.catalog.SaveSnapshot(ctx, snap); err != nil {
			logger.Warn("cataloguing snapshot for %s: %v", src.ID, err)
		}
	}
	return entry
}

func (s *IngestService) writeMetadata(entries []ingestEntry) error {
	if err := os.MkdirAll(s.bronzeDir, 0o755); err != nil {
		return fmt.Errorf("creating bronze directory: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling ingestion metadata: %w", err)
	}
	path := filepath.Join(s.bronzeDir, MetadataFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Debug("wrote ingestion metadata to %s", path)
	return nil
}

// recordRun writes run history to the catalog when one is configured.
func recordRun(ctx context.Context, catalog driven.SnapshotStore, report *driving.RunReport, started time.Time, now func() time.Time) {
	if catalog == nil {
		return
	}
	run := domain.Run{
		ID:         uuid.NewString(),
		Stage:      report.Stage,
		StartedAt:  started,
		FinishedAt: now(),
		Total:      report.Total,
		Processed:  report.Processed,
		Failed:     report.Failed,
	}
	if err := catalog.SaveRun(ctx, run); err != nil {
		logger.Warn("recording %s run: %v", report.Stage, err)
	}
}
