// Package lovdata parses Lovdata.no law and forskrift pages into
// structured law sections.
package lovdata

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/kontolab/konto-ingest/internal/cleaners"
	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/logger"
	"github.com/kontolab/konto-ingest/internal/parsers/htmlx"
)

var _ driven.SectionParser = (*Parser)(nil)

var (
	sectionLabelRe = regexp.MustCompile(`§\s*(\d+-\d+)`)
	chapterRe      = regexp.MustCompile(`(?i)kapit+el\s*(\d+)`)
)

// minSectionText filters out heading-only fragments.
const minSectionText = 10

// maxHeadingBytes bounds extracted headings.
const maxHeadingBytes = 100

// truncateHeading caps a heading at maxHeadingBytes without cutting a
// multi-byte rune in half.
func truncateHeading(heading string) string {
	if len(heading) <= maxHeadingBytes {
		return heading
	}
	cut := maxHeadingBytes
	for cut > 0 && !utf8.RuneStart(heading[cut]) {
		cut--
	}
	return heading[:cut]
}

// Parser extracts law sections from Lovdata HTML. Lovdata pages vary
// in structure, so extraction falls back from paragraf divs to heading
// blocks to a plain-text split.
type Parser struct{}

// New creates a Lovdata section parser.
func New() *Parser {
	return &Parser{}
}

// ParseSections extracts every recognisable section from the document.
func (p *Parser) ParseSections(in driven.ParseInput) ([]domain.LawSection, error) {
	root, err := htmlx.Parse(in.Content)
	if err != nil {
		return nil, err
	}

	nodes := htmlx.FindAll(root, htmlx.ByClass("paragraf"))
	if len(nodes) == 0 {
		nodes = htmlx.FindAll(root, htmlx.AnyOf(htmlx.ByTag("section"), htmlx.ByClass("section")))
	}

	var sections []domain.LawSection
	for _, node := range nodes {
		if s, ok := p.fromNode(node, in); ok {
			sections = append(sections, s)
		}
	}

	if len(sections) == 0 {
		sections = p.fromPlainText(root, in)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no sections in %s", domain.ErrInvalidInput, in.Source.ID)
	}

	logger.Debug("parsed %d sections from %s", len(sections), in.Source.ID)
	return sections, nil
}

func (p *Parser) fromNode(node *html.Node, in driven.ParseInput) (domain.LawSection, bool) {
	text := htmlx.Text(node)

	label := htmlx.Attr(node, "id")
	if m := sectionLabelRe.FindStringSubmatch(text); m != nil {
		label = "§ " + m[1]
	}
	if label == "" {
		return domain.LawSection{}, false
	}

	heading := text
	if h := htmlx.Find(node, htmlx.IsHeading); h != nil {
		heading = htmlx.Text(h)
	}
	heading = truncateHeading(heading)

	if len(text) < minSectionText {
		return domain.LawSection{}, false
	}

	section := domain.LawSection{
		LawID:        in.Source.ID,
		SectionID:    sectionID(label),
		SectionLabel: label,
		Path:         sectionPath(node, label),
		Heading:      heading,
		TextPlain:    text,
		LawTitle:     in.Source.Title,
		Provenance:   provenance(in),
		LastUpdated:  time.Now().UTC().Format(time.RFC3339),
	}
	cleaners.Enrich(&section)
	if section.TextPlain == "" {
		return domain.LawSection{}, false
	}
	return section, true
}

// fromPlainText splits the page text on section markers when the DOM
// carries no recognisable structure.
func (p *Parser) fromPlainText(root *html.Node, in driven.ParseInput) []domain.LawSection {
	text := htmlx.Text(root)
	marks := sectionLabelRe.FindAllStringSubmatchIndex(text, -1)

	var sections []domain.LawSection
	for i, m := range marks {
		start := m[0]
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}

		body := strings.TrimSpace(text[start:end])
		label := "§ " + text[m[2]:m[3]]
		if len(body) < minSectionText+len(label) {
			continue
		}

		heading := truncateHeading(body)

		section := domain.LawSection{
			LawID:        in.Source.ID,
			SectionID:    sectionID(label),
			SectionLabel: label,
			Path:         labelPath(label),
			Heading:      heading,
			TextPlain:    body,
			LawTitle:     in.Source.Title,
			Provenance:   provenance(in),
			LastUpdated:  time.Now().UTC().Format(time.RFC3339),
		}
		cleaners.Enrich(&section)
		if section.TextPlain != "" {
			sections = append(sections, section)
		}
	}
	return sections
}

// sectionID turns "§ 8-1" into the stable identifier "PARAGRAF_8-1".
func sectionID(label string) string {
	if m := sectionLabelRe.FindStringSubmatch(label); m != nil {
		return "PARAGRAF_" + m[1]
	}
	return strings.ReplaceAll(strings.TrimSpace(label), " ", "_")
}

// sectionPath prefixes the label with the enclosing chapter when one
// can be found in an ancestor.
func sectionPath(node *html.Node, label string) string {
	for cur := node.Parent; cur != nil; cur = cur.Parent {
		if m := chapterRe.FindStringSubmatch(htmlx.Attr(cur, "id")); m != nil {
			return fmt.Sprintf("Kapittel %s %s", m[1], label)
		}
		if m := chapterRe.FindStringSubmatch(htmlx.Attr(cur, "data-tittel")); m != nil {
			return fmt.Sprintf("Kapittel %s %s", m[1], label)
		}
	}
	return labelPath(label)
}

// labelPath derives "Kapittel N § N-M" from the label alone.
func labelPath(label string) string {
	if m := sectionLabelRe.FindStringSubmatch(label); m != nil {
		chapter := strings.SplitN(m[1], "-", 2)[0]
		return fmt.Sprintf("Kapittel %s %s", chapter, label)
	}
	return label
}

func provenance(in driven.ParseInput) domain.Provenance {
	return domain.Provenance{
		SourceURL:    in.Source.URL,
		SHA256:       in.SHA256,
		Domain:       string(in.Source.Domain),
		SourceType:   string(in.Source.Type),
		Publisher:    in.Source.Publisher,
		Version:      in.Source.Version,
		Jurisdiction: in.Source.Jurisdiction,
	}
}
