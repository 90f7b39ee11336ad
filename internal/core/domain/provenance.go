package domain

// Provenance ties a Silver record back to the Bronze content it was
// derived from. Every Silver record embeds one.
type Provenance struct {
	// SourceURL is the original fetch location.
	SourceURL string `json:"source_url"`

	// SHA256 is the hash of the Bronze content the record came from.
	SHA256 string `json:"sha256"`

	// Domain is the subject area (tax, accounting, reporting).
	Domain string `json:"domain"`

	// SourceType is the manifest source type.
	SourceType string `json:"source_type"`

	// Publisher is the issuing body.
	Publisher string `json:"publisher"`

	// Version is the document version, where known.
	Version string `json:"version,omitempty"`

	// Jurisdiction is the legal jurisdiction, normally "NO".
	Jurisdiction string `json:"jurisdiction"`
}

// Validate checks the provenance fields every consumer relies on.
func (p Provenance) Validate() error {
	if p.SourceURL == "" || p.SHA256 == "" || p.Domain == "" {
		return ErrInvalidRecord
	}
	return nil
}
