// Package exporters turns Silver records into Gold training datasets.
//
// Every exporter generates chat-format samples from one Silver record
// type; the shared pipeline then deduplicates, quality-filters and
// splits them into train/val at family boundaries before writing JSONL
// through the Gold store. Splits are seeded, so a re-export over
// unchanged Silver data reproduces the same datasets byte for byte.
package exporters

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/hashutil"
	"github.com/kontolab/konto-ingest/internal/logger"
)

// DefaultSeed is the split seed used unless overridden. Keeping it
// fixed makes exports reproducible across machines.
const DefaultSeed = 42

// DefaultSplitRatio is the train share of the family split.
const DefaultSplitRatio = 0.8

// Quality bounds for a single message content.
const (
	minContentLen = 10
	maxContentLen = 4000
)

// Stats summarises one export run. Written to gold/metadata/ so dataset
// consumers can audit what was generated and what was dropped.
type Stats struct {
	TotalGenerated    int `json:"total_generated"`
	TotalFiltered     int `json:"total_filtered"`
	TrainSamples      int `json:"train_samples"`
	ValSamples        int `json:"val_samples"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	QualityIssues     int `json:"quality_issues"`
}

// Pipeline is the shared export tail: dedupe, quality filter, family
// split, JSONL write.
type Pipeline struct {
	gold       driven.GoldStore
	splitRatio float64
	seed       int64
	now        func() time.Time
}

// NewPipeline creates an export pipeline writing through gold.
// A splitRatio outside (0, 1) falls back to DefaultSplitRatio.
func NewPipeline(gold driven.GoldStore, splitRatio float64, seed int64) *Pipeline {
	if splitRatio <= 0 || splitRatio >= 1 {
		splitRatio = DefaultSplitRatio
	}
	return &Pipeline{
		gold:       gold,
		splitRatio: splitRatio,
		seed:       seed,
		now:        time.Now,
	}
}

// Export runs the pipeline tail over generated samples and writes
// train/<filename> and val/<filename>.
func (p *Pipeline) Export(samples []domain.TrainingSample, filename string) (*Stats, error) {
	stats := &Stats{TotalGenerated: len(samples)}
	logger.Info("exporting %s: %d samples generated", filename, len(samples))

	samples, err := p.dedupe(samples, stats)
	if err != nil {
		return nil, err
	}
	logger.Info("after deduplication: %d samples (%d removed)",
		len(samples), stats.DuplicatesRemoved)

	samples = p.filterQuality(samples, stats)
	stats.TotalFiltered = len(samples)
	logger.Info("after quality filter: %d samples (%d removed)",
		len(samples), stats.QualityIssues)

	train, val := p.splitByFamily(samples)
	stats.TrainSamples = len(train)
	stats.ValSamples = len(val)

	if err := p.write(train, filename, "train"); err != nil {
		return nil, err
	}
	if err := p.write(val, filename, "val"); err != nil {
		return nil, err
	}

	logger.Info("export complete: %d train, %d val", len(train), len(val))
	return stats, nil
}

// dedupe drops samples whose message content already occurred. The key
// is the SHA-256 of the messages serialised as JSON, so metadata
// differences alone never make two samples distinct.
func (p *Pipeline) dedupe(samples []domain.TrainingSample, stats *Stats) ([]domain.TrainingSample, error) {
	seen := make(map[string]struct{}, len(samples))
	unique := samples[:0:0]

	for _, s := range samples {
		data, err := json.Marshal(s.Messages)
		if err != nil {
			return nil, fmt.Errorf("hashing sample messages: %w", err)
		}
		key := hashutil.SHA256Bytes(data)
		if _, ok := seen[key]; ok {
			stats.DuplicatesRemoved++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, s)
	}
	return unique, nil
}

// filterQuality keeps samples that pass CheckSample.
func (p *Pipeline) filterQuality(samples []domain.TrainingSample, stats *Stats) []domain.TrainingSample {
	kept := samples[:0:0]
	for _, s := range samples {
		if CheckSample(s) {
			kept = append(kept, s)
		} else {
			stats.QualityIssues++
		}
	}
	return kept
}

// CheckSample reports whether a generated sample is fit for training:
// at least one exchange, source provenance, and every message content
// within length bounds.
func CheckSample(s domain.TrainingSample) bool {
	if len(s.Messages) < 2 {
		return false
	}
	if len(s.Metadata.SourceIDs) == 0 {
		return false
	}
	for _, m := range s.Messages {
		if len(strings.TrimSpace(m.Content)) < minContentLen {
			return false
		}
		if len(m.Content) > maxContentLen {
			return false
		}
	}
	return true
}

// splitByFamily groups samples by family key, shuffles the family list
// with the configured seed, and cuts the list at the split ratio.
// Whole families land on one side, so paraphrases of the same section
// or rule can never leak from train into val.
func (p *Pipeline) splitByFamily(samples []domain.TrainingSample) (train, val []domain.TrainingSample) {
	families := make(map[string][]domain.TrainingSample)
	var order []string

	for _, s := range samples {
		key := s.Metadata.FamilyKey
		if key == "" {
			key = "unknown"
		}
		if _, ok := families[key]; !ok {
			order = append(order, key)
		}
		families[key] = append(families[key], s)
	}

	rng := rand.New(rand.NewSource(p.seed))
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	splitIdx := int(float64(len(order)) * p.splitRatio)
	for i, key := range order {
		if i < splitIdx {
			train = append(train, families[key]...)
		} else {
			val = append(val, families[key]...)
		}
	}

	logger.Info("split by family: %d train families, %d val families",
		splitIdx, len(order)-splitIdx)
	return train, val
}

// write stamps split and timestamp metadata and hands the samples to
// the Gold store.
func (p *Pipeline) write(samples []domain.TrainingSample, filename, split string) error {
	createdAt := p.now().UTC().Format(time.RFC3339)
	for i := range samples {
		samples[i].Metadata.Split = split
		if samples[i].Metadata.CreatedAt == "" {
			samples[i].Metadata.CreatedAt = createdAt
		}
	}
	if err := p.gold.WriteSamples(split, filename, samples); err != nil {
		return fmt.Errorf("writing %s split: %w", split, err)
	}
	return nil
}

// WriteStats writes export statistics to gold/metadata/<filename>.
func (p *Pipeline) WriteStats(filename string, stats any) error {
	return p.gold.WriteStats(filename, stats)
}
