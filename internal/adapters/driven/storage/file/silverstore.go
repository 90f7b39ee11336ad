package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/logger"
)

var _ driven.SilverStore = (*SilverStore)(nil)

// SilverStore writes normalised record lists as indented JSON files,
// one file per record type.
type SilverStore struct {
	dir string
}

// NewSilverStore creates a Silver store rooted at dir.
func NewSilverStore(dir string) *SilverStore {
	return &SilverStore{dir: dir}
}

func (s *SilverStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteRecords marshals records to the named Silver file.
func (s *SilverStore) WriteRecords(name string, records any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", name, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating silver directory: %w", err)
	}
	path := s.path(name)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Debug("wrote silver file %s", path)
	return nil
}

// ReadRecords unmarshals the named Silver file into out.
func (s *SilverStore) ReadRecords(name string, out any) error {
	path := s.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Exists reports whether the named Silver file is present.
func (s *SilverStore) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}
