package domain

// LawSection is one section (paragraf) of a Norwegian law or forskrift,
// extracted from Lovdata HTML.
type LawSection struct {
	// LawID identifies the law (e.g. "mva_law_2009").
	LawID string `json:"law_id"`

	// SectionID is the stable section identifier (e.g. "PARAGRAF_1-1").
	SectionID string `json:"section_id"`

	// SectionLabel is the human-readable label (e.g. "§ 1-1").
	SectionLabel string `json:"section_label"`

	// Path locates the section in the document (e.g. "Kapittel 1 § 1-1").
	Path string `json:"path"`

	// Heading is the section heading.
	Heading string `json:"heading"`

	// TextPlain is the cleaned plain-text content.
	TextPlain string `json:"text_plain"`

	// LawTitle is the full law title.
	LawTitle string `json:"law_title,omitempty"`

	// Chapter and ChapterNo locate the enclosing chapter.
	Chapter   string `json:"chapter,omitempty"`
	ChapterNo string `json:"chapter_no,omitempty"`

	// SectionNo is the section number within the chapter.
	SectionNo string `json:"section_no,omitempty"`

	// TextLength and WordCount describe the extracted text.
	TextLength int `json:"text_length,omitempty"`
	WordCount  int `json:"word_count,omitempty"`

	// HasCitations is true when the text references other sections.
	HasCitations bool `json:"has_citations,omitempty"`

	// Provenance ties the section to its Bronze content.
	Provenance

	// LastUpdated is the Silver processing timestamp (RFC 3339).
	LastUpdated string `json:"last_updated,omitempty"`
}

// Validate checks the fields the exporters rely on.
func (s LawSection) Validate() error {
	if s.LawID == "" || s.SectionID == "" || s.Heading == "" || s.TextPlain == "" {
		return ErrInvalidRecord
	}
	return s.Provenance.Validate()
}
