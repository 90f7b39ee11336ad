package domain

// Domain groups sources by subject area.
type Domain string

// Known domains.
const (
	DomainTax        Domain = "tax"
	DomainAccounting Domain = "accounting"
	DomainReporting  Domain = "reporting"
)

// SourceType identifies which parser handles a source.
type SourceType string

// Known source types.
const (
	SourceTypeLaw       SourceType = "law"
	SourceTypeForskrift SourceType = "forskrift"
	SourceTypeSpec      SourceType = "spec"
	SourceTypeGuidance  SourceType = "guidance"
	SourceTypeRates     SourceType = "rates"
)

// CrawlFrequency describes how often a source should be re-fetched.
type CrawlFrequency string

// Known crawl frequencies.
const (
	CrawlMonthly   CrawlFrequency = "monthly"
	CrawlQuarterly CrawlFrequency = "quarterly"
	CrawlOnChange  CrawlFrequency = "onchange"
	CrawlDaily     CrawlFrequency = "daily"
)

// Source is one row of the CSV source manifest: a fetchable document
// with the provenance carried through Bronze, Silver and Gold.
type Source struct {
	// ID is the unique manifest identifier (e.g. "mva_law_2009").
	ID string

	// Title is the human-readable source title.
	Title string

	// URL is the fetch location.
	URL string

	// Domain is the subject area (tax, accounting, reporting).
	Domain Domain

	// Type selects the Silver parser (law, forskrift, spec, guidance, rates).
	Type SourceType

	// Publisher is the issuing body (Lovdata, Skatteetaten, Altinn).
	Publisher string

	// Version is the document version, where the publisher has one.
	Version string

	// Jurisdiction is the legal jurisdiction, normally "NO".
	Jurisdiction string

	// CrawlFreq is how often the source is expected to change.
	CrawlFreq CrawlFrequency
}

// Validate checks the manifest row has the fields every stage relies on.
func (s Source) Validate() error {
	if s.ID == "" || s.URL == "" || s.Domain == "" || s.Type == "" {
		return ErrInvalidRecord
	}
	return nil
}
