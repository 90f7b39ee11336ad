package cleaners

import (
	"fmt"
	"strings"

	"github.com/kontolab/konto-ingest/internal/core/domain"
)

// MinSectionLength is the shortest plain text a section may carry and
// still be considered usable.
const MinSectionLength = 50

// CheckSection reports whether a section meets the Silver quality bar,
// with one message per problem found.
func CheckSection(section domain.LawSection) (bool, []string) {
	var issues []string

	if n := len(section.TextPlain); n < MinSectionLength {
		issues = append(issues, fmt.Sprintf("text too short: %d chars (min %d)", n, MinSectionLength))
	}
	if section.SourceURL == "" {
		issues = append(issues, "missing source URL")
	}
	if section.LawID == "" {
		issues = append(issues, "missing law_id")
	}
	if section.SectionID == "" {
		issues = append(issues, "missing section_id")
	}
	if section.Domain == "" {
		issues = append(issues, "missing domain")
	}
	if section.WordCount == 0 && section.TextPlain != "" {
		issues = append(issues, "zero word count for non-empty text")
	}
	if strings.Contains(section.TextPlain, "🔗") || strings.Contains(section.TextPlain, "Del paragraf") {
		issues = append(issues, "contains navigation artifacts")
	}

	return len(issues) == 0, issues
}
