package driven

import "github.com/kontolab/konto-ingest/internal/core/domain"

// ParseInput is the Bronze content handed to a Silver parser together
// with the provenance of its source.
type ParseInput struct {
	// Source is the manifest entry the content was fetched for.
	Source domain.Source

	// Content is the raw Bronze bytes (HTML).
	Content []byte

	// SHA256 is the Bronze content hash.
	SHA256 string
}

// SectionParser extracts law sections from legal-document HTML.
type SectionParser interface {
	ParseSections(in ParseInput) ([]domain.LawSection, error)
}

// RateParser extracts VAT rates from rate-table HTML.
type RateParser interface {
	ParseRates(in ParseInput) ([]domain.VatRate, error)
}

// SpecParser extracts SAF-T specification nodes from documentation HTML.
type SpecParser interface {
	ParseNodes(in ParseInput) ([]domain.SpecNode, error)
}

// GuidanceParser extracts a-melding rules from guidance HTML.
type GuidanceParser interface {
	ParseRules(in ParseInput) ([]domain.AmeldingRule, error)
}
