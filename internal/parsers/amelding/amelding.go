// Package amelding parses Altinn and Skatteetaten a-melding guidance
// pages into structured reporting rules.
package amelding

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/kontolab/konto-ingest/internal/cleaners"
	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/logger"
	"github.com/kontolab/konto-ingest/internal/parsers/htmlx"
)

var _ driven.GuidanceParser = (*Parser)(nil)

// skipHeadings filters navigation and chrome headings.
var skipHeadings = []string{"navigasjon", "meny", "innhold", "cookie", "søk"}

var (
	requirementRe = regexp.MustCompile(`(?i)(?:må|skal|påkrevd|obligatorisk)\s+[^.]+\.`)
	exampleRe     = regexp.MustCompile(`(?i)(?:for eksempel|f\.eks\.|eksempel:)\s*([^.]+)`)
)

// minRuleText filters heading stubs with no guidance under them.
const minRuleText = 20

// Parser extracts a-melding rules from guidance pages. Each heading
// with body text under it becomes one rule.
type Parser struct{}

// New creates an a-melding guidance parser.
func New() *Parser {
	return &Parser{}
}

// ParseRules extracts one rule per documented guidance block.
func (p *Parser) ParseRules(in driven.ParseInput) ([]domain.AmeldingRule, error) {
	root, err := htmlx.Parse(in.Content)
	if err != nil {
		return nil, err
	}

	content := htmlx.Find(root, htmlx.ByTag("main"))
	if content == nil {
		content = htmlx.Find(root, htmlx.AnyOf(htmlx.ByClass("content"), htmlx.ByClass("article")))
	}
	if content == nil {
		content = root
	}

	var rules []domain.AmeldingRule
	for _, heading := range htmlx.FindAll(content, htmlx.IsHeading) {
		title := cleaners.Normalize(htmlx.Text(heading))
		if title == "" || skip(title) {
			continue
		}

		body := cleaners.Normalize(bodyAfter(heading))
		if len(body) < minRuleText {
			continue
		}

		category := classify(title + " " + body)
		rules = append(rules, domain.AmeldingRule{
			RuleID:          fmt.Sprintf("amelding_%03d", len(rules)+1),
			Category:        category,
			FieldLabel:      title,
			Description:     body,
			ValidationRules: requirements(body, category),
			ExampleValue:    example(body),
			Provenance: domain.Provenance{
				SourceURL:    in.Source.URL,
				SHA256:       in.SHA256,
				Domain:       string(in.Source.Domain),
				SourceType:   string(in.Source.Type),
				Publisher:    in.Source.Publisher,
				Version:      in.Source.Version,
				Jurisdiction: in.Source.Jurisdiction,
			},
			LastUpdated: time.Now().UTC().Format(time.RFC3339),
		})
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules in %s", domain.ErrInvalidInput, in.Source.ID)
	}

	logger.Debug("parsed %d rules from %s", len(rules), in.Source.ID)
	return rules, nil
}

func skip(title string) bool {
	lower := strings.ToLower(title)
	for _, word := range skipHeadings {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// bodyAfter collects the text of sibling elements between a heading
// and the next heading.
func bodyAfter(heading *html.Node) string {
	var sb strings.Builder
	for cur := heading.NextSibling; cur != nil; cur = cur.NextSibling {
		if cur.Type == html.ElementNode && htmlx.IsHeading(cur) {
			break
		}
		switch {
		case cur.Type == html.TextNode:
			sb.WriteString(cur.Data)
			sb.WriteString(" ")
		case cur.Type == html.ElementNode:
			switch cur.Data {
			case "p", "ul", "ol", "div", "table":
				sb.WriteString(htmlx.Text(cur))
				sb.WriteString(" ")
			}
		}
	}
	return sb.String()
}

// classify maps guidance text to a rule category.
func classify(text string) domain.AmeldingCategory {
	lower := strings.ToLower(text)

	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("frist", "innlever", "rapporteringsfrist"):
		return domain.AmeldingSubmissionDeadlines
	case contains("skjema", "felt", "validering", "gyldig"):
		return domain.AmeldingFormGuidance
	case contains("arbeidsgiver", "arbeidsgiveravgift", "trekk"):
		return domain.AmeldingEmployerObligations
	case contains("lønn", "ansatt", "fødselsnummer", "inntekt"):
		return domain.AmeldingSalaryReporting
	default:
		return domain.AmeldingGeneralGuidance
	}
}

// requirements pulls obligation sentences out of the guidance text.
func requirements(text string, category domain.AmeldingCategory) []string {
	var out []string
	for _, m := range requirementRe.FindAllString(text, 5) {
		out = append(out, strings.TrimSpace(m))
	}
	switch category {
	case domain.AmeldingFormGuidance:
		out = append(out, "Alle påkrevde felter må fylles ut")
	case domain.AmeldingSubmissionDeadlines:
		out = append(out, "Innlevering må skje innen fristen")
	}
	return out
}

func example(text string) string {
	if m := exampleRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
