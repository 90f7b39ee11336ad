package exporters

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/logger"
)

// DefaultVariationsPerRule is how many posting proposal samples each
// business rule yields.
const DefaultVariationsPerRule = 15

// Transaction amounts (kr incl. VAT) used for rule variations.
var ruleAmounts = []float64{
	500, 750, 1000, 1200, 1500, 1800, 2000, 2500,
	3000, 3500, 4000, 5000, 7500, 10000, 15000,
}

// RuleExporter generates posting proposal samples from seeded business
// rules: per rule, an amount grid combined with Norwegian description
// variations, each answered with the rule's deterministic posting.
type RuleExporter struct {
	VariationsPerRule int
}

// NewRuleExporter creates a rule exporter with the default variation
// count.
func NewRuleExporter() *RuleExporter {
	return &RuleExporter{VariationsPerRule: DefaultVariationsPerRule}
}

// Samples generates training samples from active business rules.
// Generation is deterministic: each rule's variations are drawn from an
// RNG seeded by the rule ID, so re-exports reproduce the same samples.
func (e *RuleExporter) Samples(rules []domain.BusinessRule) []domain.TrainingSample {
	var samples []domain.TrainingSample

	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		for _, v := range e.variations(rule) {
			samples = append(samples, domain.TrainingSample{
				Messages: []domain.Message{
					{Role: domain.RoleSystem, Content: promptPostingProposal},
					{Role: domain.RoleUser, Content: v.description},
					{Role: domain.RoleAssistant, Content: FormatPostingProposal(
						v.account, rule.RuleName, v.vatCode, v.vatRate, v.amount, v.citation)},
				},
				Metadata: domain.SampleMetadata{
					Domain:    "accounting",
					Task:      domain.TaskPostingProposal,
					SourceIDs: rule.SourceIDs,
					Locale:    "nb-NO",
					RuleIDs:   []string{rule.RuleID},
					FamilyKey: RuleFamily(rule.RuleID),
				},
			})
		}
	}

	logger.Info("generated %d posting samples from %d rules", len(samples), len(rules))
	return samples
}

// RuleFamily groups rule variations for splitting: the first two
// underscore-separated parts of the rule ID ("expense_hotel_no_001"
// yields "expense_hotel"), so all hotel rules land on one split side.
func RuleFamily(ruleID string) string {
	parts := strings.Split(ruleID, "_")
	if len(parts) >= 2 {
		return parts[0] + "_" + parts[1]
	}
	return "unknown"
}

type ruleVariation struct {
	description string
	amount      float64
	account     string
	vatCode     string
	vatRate     float64
	citation    string
}

func (e *RuleExporter) variations(rule domain.BusinessRule) []ruleVariation {
	account := rule.Action(domain.ActionSetAccount)
	vatRate := rule.Action(domain.ActionSetVatRate)
	vatCode := rule.Action(domain.ActionSetVatCode)
	if account == nil || vatRate == nil || vatCode == nil {
		logger.Warn("rule %s missing posting actions, skipped", rule.RuleID)
		return nil
	}

	rate, ok := floatValue(vatRate.Value)
	if !ok {
		logger.Warn("rule %s has non-numeric VAT rate, skipped", rule.RuleID)
		return nil
	}

	rng := rand.New(rand.NewSource(seedFrom(rule.RuleID)))

	n := e.VariationsPerRule
	if n > len(ruleAmounts) {
		n = len(ruleAmounts)
	}
	amounts := make([]float64, 0, n)
	for _, i := range rng.Perm(len(ruleAmounts))[:n] {
		amounts = append(amounts, ruleAmounts[i])
	}

	citation := "Regel: " + rule.RuleName
	if len(rule.Citations) > 0 {
		citation = rule.Citations[0]
	}

	category := ruleCategory(rule.RuleID)
	perAmount := e.VariationsPerRule/len(amounts) + 1

	var variations []ruleVariation
	for _, amount := range amounts {
		descs := descriptionVariations(rule.RuleName, category, amount)
		if perAmount < len(descs) {
			descs = descs[:perAmount]
		}
		for _, desc := range descs {
			variations = append(variations, ruleVariation{
				description: desc,
				amount:      amount,
				account:     stringValue(account.Value),
				vatCode:     stringValue(vatCode.Value),
				vatRate:     rate,
				citation:    citation,
			})
			if len(variations) >= e.VariationsPerRule {
				return variations
			}
		}
	}
	return variations
}

// ruleCategory maps a rule ID to the expense category used for
// description phrasing.
func ruleCategory(ruleID string) string {
	id := strings.ToLower(ruleID)
	switch {
	case strings.Contains(id, "hotel"):
		return "hotel"
	case strings.Contains(id, "food"), strings.Contains(id, "meal"):
		return "food"
	case strings.Contains(id, "transport"), strings.Contains(id, "fuel"):
		return "transport"
	case strings.Contains(id, "equipment"), strings.Contains(id, "computer"), strings.Contains(id, "_it_"):
		return "equipment"
	default:
		return "office"
	}
}

// descriptionVariations returns realistic Norwegian transaction texts
// for a category, the way a bookkeeper would type them.
func descriptionVariations(ruleName, category string, amount float64) []string {
	kr := formatRate(amount)
	switch category {
	case "hotel":
		return []string{
			"Hotellovernatting " + kr + " kr",
			"Hotel - forretningsreise",
			"Overnatting",
			"hotell",
			"Radisson Blu Oslo - 2 netter",
			"Hotell med frokost inkludert",
		}
	case "food":
		return []string{
			"Måltid " + kr + " kr",
			"Lunsj med kunde",
			"Mat og drikke",
			"restaurant",
			"Middag forretningsreise",
			"Lunch på forretningsreise",
		}
	case "transport":
		return []string{
			"Transport " + kr + " kr",
			"Drivstoff",
			"Bensin",
			"Parkering Oslo",
			"Bompenger",
			"Transport til kunde",
		}
	case "equipment":
		return []string{
			"Utstyr " + kr + " kr",
			"PC-utstyr",
			"Datamaskin",
			"utstyr",
			"Mus og tastatur",
			"Kontorpult",
		}
	case "office":
		return []string{
			"Kontorrekvisita " + kr + " kr",
			"Kontormateriale",
			"Skrivesaker",
			"kontorrekvisita",
			"Printer papir og blekkpatron",
			"Diverse kontorrekvisita",
		}
	default:
		return []string{
			ruleName + " " + kr + " kr",
			ruleName,
			category,
			category + " " + kr,
		}
	}
}

// seedFrom derives a stable RNG seed from an identifier.
func seedFrom(id string) int64 {
	sum := sha256.Sum256([]byte(id))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
