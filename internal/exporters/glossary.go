package exporters

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/logger"
)

// SAF-T specification version cited in generated answers.
const saftVersion = "1.3"

// Glossary length bounds for law section plain text.
const (
	minGlossaryText = 100
	maxGlossaryText = 3000
)

// Sections about procedure (deadlines, appeals, penalties) make poor
// glossary answers and are skipped.
var proceduralKeywords = []string{
	"søknad", "klage", "vedtak", "frist", "innlevering",
	"kontrollopplysninger", "straff", "overtredelse",
}

var (
	sectionTermRe = regexp.MustCompile(`§\s*[\d-]+\.?\s+(\p{L}.*)`)
	chapterTermRe = regexp.MustCompile(`Kapittel\s+\d+\s+(.+)`)
)

// Glossary generates definition samples ("Hva betyr X?") from law
// sections, chart of accounts entries and SAF-T spec nodes.
type Glossary struct {
	rng *rand.Rand
}

// NewGlossary creates a glossary generator. The seed drives question
// phrasing variation only; splitting is seeded separately by the
// pipeline.
func NewGlossary(seed int64) *Glossary {
	return &Glossary{rng: rand.New(rand.NewSource(seed))}
}

// TaxSamples generates one definition sample per usable law section.
func (g *Glossary) TaxSamples(sections []domain.LawSection) []domain.TrainingSample {
	var samples []domain.TrainingSample
	for _, sec := range sections {
		if s, ok := g.taxSample(sec); ok {
			samples = append(samples, s)
		}
	}
	logger.Info("generated %d tax glossary samples from %d sections", len(samples), len(sections))
	return samples
}

func (g *Glossary) taxSample(sec domain.LawSection) (domain.TrainingSample, bool) {
	text := sec.TextPlain
	if len(text) < minGlossaryText || len(text) > maxGlossaryText {
		return domain.TrainingSample{}, false
	}
	if isProcedural(text) {
		return domain.TrainingSample{}, false
	}

	term := termFromHeading(sec.Heading)
	if term == "" {
		return domain.TrainingSample{}, false
	}

	answer := truncateAtSentence(text, 250)
	answer = withCitation(answer, taxCitation(sec))

	questions := []string{
		fmt.Sprintf("Hva betyr '%s'?", term),
		fmt.Sprintf("Forklar '%s'", term),
		fmt.Sprintf("Hva er '%s'?", term),
	}
	question := questions[g.rng.Intn(len(questions))]

	chapter := sec.ChapterNo
	if chapter == "" {
		chapter = "unknown"
	}

	return domain.TrainingSample{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: promptTaxGlossary},
			{Role: domain.RoleUser, Content: question},
			{Role: domain.RoleAssistant, Content: answer},
		},
		Metadata: domain.SampleMetadata{
			Domain:    "tax",
			Task:      domain.TaskGlossaryDefine,
			SourceIDs: []string{fmt.Sprintf("%s_%s", sec.LawID, sec.SectionID)},
			Locale:    "nb-NO",
			FamilyKey: fmt.Sprintf("%s_chapter_%s", sec.LawID, chapter),
		},
	}, true
}

// AccountSamples generates one definition sample per chart of accounts
// entry.
func (g *Glossary) AccountSamples(accounts []domain.ChartOfAccountsEntry) []domain.TrainingSample {
	var samples []domain.TrainingSample
	for _, acc := range accounts {
		if s, ok := accountSample(acc); ok {
			samples = append(samples, s)
		}
	}
	logger.Info("generated %d account glossary samples from %d entries", len(samples), len(accounts))
	return samples
}

func accountSample(acc domain.ChartOfAccountsEntry) (domain.TrainingSample, bool) {
	if acc.AccountID == "" || acc.AccountLabel == "" {
		return domain.TrainingSample{}, false
	}

	answer := acc.Description
	if len(acc.Examples) > 0 {
		examples := acc.Examples
		if len(examples) > 3 {
			examples = examples[:3]
		}
		answer += fmt.Sprintf(" Eksempler: %s", strings.Join(examples, ", "))
	}
	answer = withCitation(answer, fmt.Sprintf("[NS 4102 konto %s]", acc.AccountID))

	return domain.TrainingSample{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: promptAccountingGlossary},
			{Role: domain.RoleUser, Content: fmt.Sprintf("Hva er konto %s?", acc.AccountID)},
			{Role: domain.RoleAssistant, Content: answer},
		},
		Metadata: domain.SampleMetadata{
			Domain:    "accounting",
			Task:      domain.TaskGlossaryDefine,
			SourceIDs: []string{"chart_of_accounts_" + acc.AccountID},
			Locale:    "nb-NO",
			FamilyKey: "account_class_" + acc.AccountClass,
		},
	}, true
}

// SpecNodeSamples generates one definition sample per documented SAF-T
// node.
func (g *Glossary) SpecNodeSamples(nodes []domain.SpecNode) []domain.TrainingSample {
	var samples []domain.TrainingSample
	for _, node := range nodes {
		if s, ok := specNodeSample(node); ok {
			samples = append(samples, s)
		}
	}
	logger.Info("generated %d SAF-T glossary samples from %d nodes", len(samples), len(nodes))
	return samples
}

func specNodeSample(node domain.SpecNode) (domain.TrainingSample, bool) {
	if node.NodeLabel == "" || len(node.Description) < 20 {
		return domain.TrainingSample{}, false
	}

	answer := truncateAtSentence(node.Description, 200)
	answer = withCitation(answer, fmt.Sprintf("[SAF-T %s %s]", saftVersion, node.NodePath))

	return domain.TrainingSample{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: promptAccountingGlossary},
			{Role: domain.RoleUser, Content: fmt.Sprintf("Hva er '%s' i SAF-T?", node.NodeLabel)},
			{Role: domain.RoleAssistant, Content: answer},
		},
		Metadata: domain.SampleMetadata{
			Domain:    "accounting",
			Task:      domain.TaskGlossaryDefine,
			SourceIDs: []string{"saft_" + node.NodeID},
			Locale:    "nb-NO",
			FamilyKey: fmt.Sprintf("saft_level_%d", node.NodeLevel),
		},
	}, true
}

func isProcedural(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range proceduralKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// termFromHeading pulls the glossary term out of a section heading:
// "§ 1-1. Saklig virkeområde" yields "Saklig virkeområde".
func termFromHeading(heading string) string {
	heading = strings.TrimSpace(heading)

	if m := sectionTermRe.FindStringSubmatch(heading); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := chapterTermRe.FindStringSubmatch(heading); m != nil {
		return strings.TrimSpace(m[1])
	}
	if utf8.RuneCountInString(heading) > 10 && !strings.HasPrefix(heading, "§") {
		return heading
	}
	return ""
}

// truncateAtSentence cuts text to roughly maxTokens, ending at a
// sentence boundary. Norwegian averages about four characters per
// token.
func truncateAtSentence(text string, maxTokens int) string {
	maxChars := maxTokens * 4
	if len(text) <= maxChars {
		return text
	}

	for maxChars > 0 && !utf8.RuneStart(text[maxChars]) {
		maxChars--
	}
	if idx := strings.LastIndex(text[:maxChars], "."); idx > 0 {
		return text[:idx+1]
	}
	return text[:maxChars] + "..."
}

// withCitation appends a citation unless the text already ends with it.
func withCitation(text, citation string) string {
	if citation == "" || strings.HasSuffix(text, citation) {
		return text
	}
	return text + " " + citation
}

func taxCitation(sec domain.LawSection) string {
	label := sec.SectionLabel
	if label == "" {
		label, _, _ = strings.Cut(sec.Heading, ".")
	}
	return fmt.Sprintf("[%s %s]", label, sec.LawTitle)
}
