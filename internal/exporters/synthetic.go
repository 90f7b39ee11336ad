package exporters

import (
	"math/rand"
	"strings"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/logger"
)

// DefaultConversationsPerTemplate is how many conversations each
// template yields before deduplication.
const DefaultConversationsPerTemplate = 250

// Transaction amounts (kr incl. VAT) used in synthetic conversations.
var conversationAmounts = []float64{500, 750, 1000, 1200, 1500, 1800, 2000, 2500, 3000}

// SyntheticExporter generates multi-turn conversation samples by
// filling templates with values drawn from business rules.
type SyntheticExporter struct {
	ConversationsPerTemplate int

	rng *rand.Rand
}

// NewSyntheticExporter creates a synthetic conversation generator.
// The seed drives rule, amount and phrasing selection, so the same
// seed over the same rules reproduces the same conversations.
func NewSyntheticExporter(seed int64) *SyntheticExporter {
	return &SyntheticExporter{
		ConversationsPerTemplate: DefaultConversationsPerTemplate,
		rng:                      rand.New(rand.NewSource(seed)),
	}
}

// Samples generates conversation samples from active business rules.
// Duplicate conversations are expected here; the pipeline deduplicates.
func (e *SyntheticExporter) Samples(rules []domain.BusinessRule) []domain.TrainingSample {
	active := rules[:0:0]
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		logger.Warn("no active rules for synthetic generation")
		return nil
	}

	var samples []domain.TrainingSample
	templates := Templates()
	for _, tmpl := range templates {
		logger.Info("generating %d conversations for template %s",
			e.ConversationsPerTemplate, tmpl.ID)
		for i := 0; i < e.ConversationsPerTemplate; i++ {
			if s, ok := e.fill(tmpl, active); ok {
				samples = append(samples, s)
			}
		}
	}

	logger.Info("generated %d conversation samples from %d templates",
		len(samples), len(templates))
	return samples
}

// postingData is the slice of a business rule a conversation needs.
type postingData struct {
	ruleID      string
	ruleName    string
	account     string
	vatCode     string
	vatRate     float64
	explanation string
}

// pickPosting draws a random rule and extracts its posting actions.
// Rules without a full posting (account, rate, code) yield no data.
func (e *SyntheticExporter) pickPosting(rules []domain.BusinessRule) (postingData, bool) {
	if len(rules) == 0 {
		return postingData{}, false
	}
	rule := rules[e.rng.Intn(len(rules))]

	account := rule.Action(domain.ActionSetAccount)
	vatRate := rule.Action(domain.ActionSetVatRate)
	vatCode := rule.Action(domain.ActionSetVatCode)
	if account == nil || vatRate == nil || vatCode == nil {
		return postingData{}, false
	}
	rate, ok := floatValue(vatRate.Value)
	if !ok {
		return postingData{}, false
	}

	return postingData{
		ruleID:      rule.RuleID,
		ruleName:    rule.RuleName,
		account:     stringValue(account.Value),
		vatCode:     stringValue(vatCode.Value),
		vatRate:     rate,
		explanation: rule.Description,
	}, true
}

// categoryPhrase returns a natural phrasing and the canonical label for
// the expense category behind a rule.
func (e *SyntheticExporter) categoryPhrase(ruleID string) (phrase, label string) {
	cat := ruleCategory(ruleID)
	variations, ok := categoryVariations[cat]
	if !ok {
		return "kostnad", "diverse kostnad"
	}
	return variations[e.rng.Intn(len(variations))], categoryLabels[cat]
}

func (e *SyntheticExporter) fill(tmpl ConversationTemplate, rules []domain.BusinessRule) (domain.TrainingSample, bool) {
	var first, second postingData
	var ok bool

	if tmpl.MultiItem {
		if len(rules) < 2 {
			return domain.TrainingSample{}, false
		}
		half := len(rules) / 2
		if first, ok = e.pickPosting(rules[:half]); !ok {
			return domain.TrainingSample{}, false
		}
		if second, ok = e.pickPosting(rules[half:]); !ok {
			return domain.TrainingSample{}, false
		}
	} else {
		if first, ok = e.pickPosting(rules); !ok {
			return domain.TrainingSample{}, false
		}
	}

	amount := conversationAmounts[e.rng.Intn(len(conversationAmounts))]
	amountExVAT, vatAmount := CalculateVAT(amount, first.vatRate)
	exampleExVAT, exampleVAT := CalculateVAT(1000, first.vatRate)
	category, categoryLabel := e.categoryPhrase(first.ruleID)

	values := map[string]string{
		"category":        category,
		"category_label":  categoryLabel,
		"amount":          formatRate(amount),
		"amount_ex_vat":   formatKroner(amountExVAT),
		"vat_amount":      formatKroner(vatAmount),
		"account":         first.account,
		"account_label":   first.ruleName,
		"vat_code":        first.vatCode,
		"vat_rate":        formatRate(first.vatRate),
		"explanation":     first.explanation,
		"context":         contextVariations[e.rng.Intn(len(contextVariations))],
		"example_amount":  "1000",
		"example_ex_vat":  formatKroner(exampleExVAT),
		"example_vat":     formatKroner(exampleVAT),
		"examples":        "diverse forretningskostnader",
		"wrong_account":   "6300",
		"correct_account": first.account,
	}

	if tmpl.MultiItem {
		amount2 := conversationAmounts[e.rng.Intn(len(conversationAmounts))]
		amount2ExVAT, _ := CalculateVAT(amount2, second.vatRate)
		category2, category2Label := e.categoryPhrase(second.ruleID)

		values["category1"] = category
		values["category1_label"] = categoryLabel
		values["amount1"] = formatRate(amount)
		values["amount1_ex_vat"] = formatKroner(amountExVAT)
		values["account1"] = first.account
		values["account1_label"] = first.ruleName
		values["vat_code1"] = first.vatCode
		values["vat_rate1"] = formatRate(first.vatRate)
		values["category2"] = category2
		values["category2_label"] = category2Label
		values["amount2"] = formatRate(amount2)
		values["amount2_ex_vat"] = formatKroner(amount2ExVAT)
		values["account2"] = second.account
		values["account2_label"] = second.ruleName
		values["vat_code2"] = second.vatCode
		values["vat_rate2"] = formatRate(second.vatRate)
	}

	replacer := newPlaceholderReplacer(values)
	messages := []domain.Message{{Role: domain.RoleSystem, Content: tmpl.System}}
	for _, turn := range tmpl.Turns {
		messages = append(messages,
			domain.Message{Role: domain.RoleUser, Content: replacer.Replace(turn.User)},
			domain.Message{Role: domain.RoleAssistant, Content: replacer.Replace(turn.Assistant)},
		)
	}

	return domain.TrainingSample{
		Messages: messages,
		Metadata: domain.SampleMetadata{
			Domain:           "accounting",
			Task:             domain.TaskConversation,
			SourceIDs:        []string{first.ruleID},
			Locale:           "nb-NO",
			ConversationType: tmpl.ID,
			Turns:            len(tmpl.Turns),
			FamilyKey:        tmpl.ID,
		},
	}, true
}

func newPlaceholderReplacer(values map[string]string) *strings.Replacer {
	oldnew := make([]string, 0, len(values)*2)
	for k, v := range values {
		oldnew = append(oldnew, "{"+k+"}", v)
	}
	return strings.NewReplacer(oldnew...)
}
