// Package cleaners normalises Norwegian legal text and enriches parsed
// sections with derived metadata before they reach the Silver layer.
package cleaners

import (
	"regexp"
	"strings"

	"github.com/kontolab/konto-ingest/internal/core/domain"
)

var (
	exoticSpaceRe = regexp.MustCompile("[  -‏ -  　]")
	whitespaceRe  = regexp.MustCompile(`\s+`)

	footnoteBracketRe = regexp.MustCompile(`\[\d+\]`)
	footnoteParenRe   = regexp.MustCompile(`\(\d+\)`)

	shareLinkRe   = regexp.MustCompile(`🔗\s*[^\n]*`)
	amendedByRe   = regexp.MustCompile(`Endret ved[^\n]*`)
	navigationRes = []*regexp.Regexp{
		regexp.MustCompile(`\[Til toppen\]`),
		regexp.MustCompile(`\[Tilbake\]`),
		regexp.MustCompile(`\[Neste\]`),
		regexp.MustCompile(`\[Forrige\]`),
		regexp.MustCompile(`(?i)Hovedmeny[^\n]*`),
		regexp.MustCompile(`(?i)Navigasjon[^\n]*`),
	}

	// Broken UTF-8 sequences seen when Lovdata pages get re-encoded.
	mojibake = strings.NewReplacer(
		"Ã¦", "æ", "Ã¸", "ø", "Ã¥", "å",
		"Ã†", "Æ", "Ã˜", "Ø", "Ã…", "Å",
		"Ã©", "é", "Ã¨", "è", "Ã¼", "ü",
		"Ã¤", "ä", "Ã¶", "ö",
	)

	lovdataCitationRe = regexp.MustCompile(`lov-\d{4}-\d{2}-\d{2}-\d+`)
	sectionRefRe      = regexp.MustCompile(`§\s*\d+-\d+`)
	lawNameRe         = regexp.MustCompile(`[A-ZÆØÅ][a-zæøå]*-loven`)

	chapterRe = regexp.MustCompile(`(?i)kapittel\s+(\d+)`)
	sectionRe = regexp.MustCompile(`§\s*(\d+)-(\d+)`)
)

// Normalize collapses whitespace variants, strips exotic space
// characters and repairs common Norwegian mojibake.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = mojibake.Replace(text)
	text = exoticSpaceRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CleanLegalText removes Lovdata navigation artifacts, share links,
// footnote markers and amendment notes, then normalises the result.
func CleanLegalText(text string) string {
	if text == "" {
		return ""
	}
	text = shareLinkRe.ReplaceAllString(text, "")
	text = amendedByRe.ReplaceAllString(text, "")
	for _, re := range navigationRes {
		text = re.ReplaceAllString(text, "")
	}
	text = strings.ReplaceAll(text, "Del paragraf", "")
	text = strings.ReplaceAll(text, "🔗", "")
	text = footnoteBracketRe.ReplaceAllString(text, "")
	text = footnoteParenRe.ReplaceAllString(text, "")
	return Normalize(text)
}

// ExtractCitations returns the legal citations found in text: Lovdata
// law IDs, section references and law names.
func ExtractCitations(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, re := range []*regexp.Regexp{lovdataCitationRe, sectionRefRe, lawNameRe} {
		for _, m := range re.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// Enrich fills the derived fields of a parsed section: cleaned text,
// chapter and section numbers, counts and citation flag.
func Enrich(section *domain.LawSection) {
	section.TextPlain = CleanLegalText(section.TextPlain)
	section.Heading = Normalize(section.Heading)

	if m := chapterRe.FindStringSubmatch(section.Path); m != nil {
		section.ChapterNo = m[1]
	}
	if m := sectionRe.FindStringSubmatch(section.SectionLabel); m != nil {
		if section.ChapterNo == "" {
			section.ChapterNo = m[1]
		}
		section.SectionNo = m[2]
	}

	section.TextLength = len(section.TextPlain)
	section.WordCount = len(strings.Fields(section.TextPlain))
	section.HasCitations = len(ExtractCitations(section.TextPlain)) > 0
}
