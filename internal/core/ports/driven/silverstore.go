package driven

import "github.com/kontolab/konto-ingest/internal/core/domain"

// BronzeStore persists raw fetched content with idempotent writes.
type BronzeStore interface {
	// WriteIfChanged writes content to the Bronze path for a source
	// only when its SHA-256 differs from what is already on disk.
	// It returns the content hash and whether a write happened.
	WriteIfChanged(sourceID string, content []byte) (sha256 string, changed bool, err error)

	// Read returns the Bronze content for a source, or
	// domain.ErrMissingBronze when the source was never ingested.
	Read(sourceID string) ([]byte, error)

	// Path returns the Bronze file path for a source.
	Path(sourceID string) string
}

// Canonical Silver file names for parser output, one file per record
// type. Seeded data (chart of accounts, business rules) names its own
// files in the seed package.
const (
	SilverLawSections   = "law_sections.json"
	SilverVatRates      = "vat_rates.json"
	SilverSaftNodes     = "saft_v1_3_nodes.json"
	SilverAmeldingRules = "amelding_rules.json"
)

// SilverStore persists normalised record lists as JSON files.
// Record types are written one file per type (law_sections.json,
// vat_rates.json, ...), human-diffable.
type SilverStore interface {
	// WriteRecords marshals records to the named Silver file.
	WriteRecords(name string, records any) error

	// ReadRecords unmarshals the named Silver file into out,
	// which must be a pointer to a slice.
	ReadRecords(name string, out any) error

	// Exists reports whether the named Silver file is present.
	Exists(name string) bool
}

// GoldStore persists training samples as JSONL under split directories
// and export statistics as JSON under metadata/.
type GoldStore interface {
	// WriteSamples writes one JSON line per sample to
	// <split>/<filename>, creating directories as needed.
	WriteSamples(split, filename string, samples []domain.TrainingSample) error

	// WriteStats writes export statistics to metadata/<filename>.
	WriteStats(filename string, stats any) error
}
