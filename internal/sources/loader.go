// Package sources loads the CSV source manifest that drives ingestion.
// Each row describes one fetchable document with the provenance fields
// carried through every pipeline stage.
package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driving"
	"github.com/kontolab/konto-ingest/internal/logger"
)

// Loader reads and filters the source manifest. Rows are cached after
// the first load.
type Loader struct {
	path  string
	cache []domain.Source
}

// NewLoader creates a manifest loader for the given CSV path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// All returns every source in the manifest.
func (l *Loader) All() ([]domain.Source, error) {
	if l.cache != nil {
		return l.cache, nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening sources manifest: %w", err)
	}
	defer f.Close()

	srcs, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.path, err)
	}

	logger.Debug("loaded %d sources from %s", len(srcs), l.path)
	l.cache = srcs
	return srcs, nil
}

// Filter returns the sources matching a domain and/or crawl frequency.
// Empty filter fields match everything.
func (l *Loader) Filter(filter driving.SourceFilter) ([]domain.Source, error) {
	all, err := l.All()
	if err != nil {
		return nil, err
	}

	var out []domain.Source
	for _, s := range all {
		if filter.Domain != "" && !strings.EqualFold(string(s.Domain), string(filter.Domain)) {
			continue
		}
		if filter.Freq != "" && !strings.EqualFold(string(s.CrawlFreq), string(filter.Freq)) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// ByID returns the source with the given manifest ID.
func (l *Loader) ByID(id string) (domain.Source, error) {
	all, err := l.All()
	if err != nil {
		return domain.Source{}, err
	}
	for _, s := range all {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Source{}, fmt.Errorf("%w: source %q", domain.ErrNotFound, id)
}

// Lookup returns the manifest indexed by source ID.
func (l *Loader) Lookup() (map[string]domain.Source, error) {
	all, err := l.All()
	if err != nil {
		return nil, err
	}
	m := make(map[string]domain.Source, len(all))
	for _, s := range all {
		m[s.ID] = s
	}
	return m, nil
}

func parse(r io.Reader) ([]domain.Source, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"source_id", "url", "domain", "source_type"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrInvalidInput, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var srcs []domain.Source
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		s := domain.Source{
			ID:           field(row, "source_id"),
			Title:        field(row, "title"),
			URL:          field(row, "url"),
			Domain:       domain.Domain(field(row, "domain")),
			Type:         domain.SourceType(field(row, "source_type")),
			Publisher:    field(row, "publisher"),
			Version:      field(row, "version"),
			Jurisdiction: field(row, "jurisdiction"),
			CrawlFreq:    domain.CrawlFrequency(field(row, "crawl_freq")),
		}
		if s.Jurisdiction == "" {
			s.Jurisdiction = "NO"
		}
		if s.Version == "" {
			s.Version = "current"
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		srcs = append(srcs, s)
	}
	return srcs, nil
}
