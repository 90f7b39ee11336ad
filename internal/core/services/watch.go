package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kontolab/konto-ingest/internal/core/ports/driving"
	"github.com/kontolab/konto-ingest/internal/logger"
)

var _ driving.Watcher = (*WatchService)(nil)

// debounceWindow batches rapid filesystem events (editors often write
// a file several times in one save) into a single re-run.
const debounceWindow = 500 * time.Millisecond

// WatchService re-runs Silver processing when the sources manifest or
// a Bronze file changes, so local edits to fetched HTML or the
// manifest are reflected without a manual round-trip.
type WatchService struct {
	processor   driving.Processor
	sourcesFile string
	bronzeDir   string
}

// NewWatchService creates the file watcher.
func NewWatchService(processor driving.Processor, sourcesFile, bronzeDir string) *WatchService {
	return &WatchService{
		processor:   processor,
		sourcesFile: sourcesFile,
		bronzeDir:   bronzeDir,
	}
}

// Watch blocks until ctx is cancelled, re-running Silver processing
// after every debounced change.
func (s *WatchService) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// The manifest's parent directory is watched rather than the file
	// itself: editors replace files on save, which drops file watches.
	if err := watcher.Add(filepath.Dir(s.sourcesFile)); err != nil {
		return fmt.Errorf("watching %s: %w", s.sourcesFile, err)
	}
	if err := watcher.Add(s.bronzeDir); err != nil {
		return fmt.Errorf("watching %s: %w", s.bronzeDir, err)
	}

	logger.Info("watching %s and %s", s.sourcesFile, s.bronzeDir)

	var pending bool
	debounce := time.NewTimer(debounceWindow)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(event) {
				continue
			}
			logger.Debug("change detected: %s (%s)", event.Name, event.Op)
			if !pending {
				pending = true
			} else if !debounce.Stop() {
				<-debounce.C
			}
			debounce.Reset(debounceWindow)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error: %v", err)

		case <-debounce.C:
			pending = false
			s.rerun(ctx)
		}
	}
}

// relevant keeps manifest writes and Bronze HTML changes; everything
// else in the watched directories (temp files, the metadata log this
// pipeline writes itself) is noise.
func (s *WatchService) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	if event.Name == s.sourcesFile {
		return true
	}
	return filepath.Dir(event.Name) == s.bronzeDir &&
		strings.HasSuffix(event.Name, ".html")
}

func (s *WatchService) rerun(ctx context.Context) {
	logger.Info("re-running silver processing")
	report, err := s.processor.Process(ctx, driving.SourceFilter{})
	if err != nil {
		logger.Error("re-processing: %v", err)
		return
	}
	if !report.OK() {
		logger.Warn("re-processing finished with %d failures", report.Failed)
	}
}
