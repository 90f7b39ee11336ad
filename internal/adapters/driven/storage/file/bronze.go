package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/hashutil"
	"github.com/kontolab/konto-ingest/internal/logger"
)

// Ensure BronzeStore implements the interface.
var _ driven.BronzeStore = (*BronzeStore)(nil)

// BronzeStore writes raw fetched content under a single directory,
// one file per source.
type BronzeStore struct {
	dir string
}

// NewBronzeStore creates a Bronze store rooted at dir.
func NewBronzeStore(dir string) *BronzeStore {
	return &BronzeStore{dir: dir}
}

// Path returns the Bronze file path for a source.
func (s *BronzeStore) Path(sourceID string) string {
	return filepath.Join(s.dir, sourceID+".html")
}

// WriteIfChanged writes content only when its SHA-256 differs from the
// file already on disk. Unchanged content is skipped, which keeps
// Bronze writes idempotent across re-runs.
func (s *BronzeStore) WriteIfChanged(sourceID string, content []byte) (string, bool, error) {
	hash := hashutil.SHA256Bytes(content)
	path := s.Path(sourceID)

	old, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("reading existing %s: %w", path, err)
	}

	if err == nil && hashutil.SHA256Bytes(old) == hash {
		logger.Debug("content unchanged, skipping %s", path)
		return hash, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("creating bronze directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", false, fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Debug("wrote new content to %s", path)
	return hash, true, nil
}

// Read returns the Bronze content for a source.
func (s *BronzeStore) Read(sourceID string) ([]byte, error) {
	content, err := os.ReadFile(s.Path(sourceID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingBronze, sourceID)
		}
		return nil, fmt.Errorf("reading bronze for %s: %w", sourceID, err)
	}
	return content, nil
}
