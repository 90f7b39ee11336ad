package file

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/logger"
)

var _ driven.GoldStore = (*GoldStore)(nil)

// GoldStore writes training datasets as JSONL files under split
// directories (train/, val/) plus export statistics under metadata/.
type GoldStore struct {
	dir string
}

// NewGoldStore creates a Gold store rooted at dir.
func NewGoldStore(dir string) *GoldStore {
	return &GoldStore{dir: dir}
}

// WriteSamples writes one JSON line per sample to <split>/<filename>.
func (s *GoldStore) WriteSamples(split, filename string, samples []domain.TrainingSample) error {
	dir := filepath.Join(s.dir, split)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating gold split directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i, sample := range samples {
		if err := enc.Encode(sample); err != nil {
			return fmt.Errorf("encoding sample %d in %s: %w", i, filename, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	logger.Debug("wrote %d samples to %s", len(samples), path)
	return nil
}

// WriteStats writes export statistics to metadata/<filename>.
func (s *GoldStore) WriteStats(filename string, stats any) error {
	dir := filepath.Join(s.dir, "metadata")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating gold metadata directory: %w", err)
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling stats: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
