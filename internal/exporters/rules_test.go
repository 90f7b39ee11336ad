package exporters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontolab/konto-ingest/internal/core/domain"
)

func hotelRule() domain.BusinessRule {
	return domain.BusinessRule{
		RuleID:   "expense_hotel_no_001",
		RuleName: "Hotellovernatting Norge",
		Category: "expense",
		Domain:   "tax",
		IsActive: true,
		Actions: []domain.RuleAction{
			{Type: domain.ActionSetAccount, Value: "7140"},
			{Type: domain.ActionSetVatCode, Value: "LOW"},
			{Type: domain.ActionSetVatRate, Value: 12.0},
		},
		SourceIDs: []string{"skatteetaten_mva_satser"},
		Citations: []string{"mval. § 5-5"},
	}
}

func TestRuleSamples(t *testing.T) {
	e := NewRuleExporter()
	samples := e.Samples([]domain.BusinessRule{hotelRule()})
	require.Len(t, samples, DefaultVariationsPerRule)

	for _, s := range samples {
		require.NoError(t, s.Validate())
		assert.Equal(t, "accounting", s.Metadata.Domain)
		assert.Equal(t, domain.TaskPostingProposal, s.Metadata.Task)
		assert.Equal(t, []string{"expense_hotel_no_001"}, s.Metadata.RuleIDs)
		assert.Equal(t, "expense_hotel", s.Metadata.FamilyKey)

		answer := s.Messages[2].Content
		assert.Contains(t, answer, "- Konto: 7140 (Hotellovernatting Norge)")
		assert.Contains(t, answer, "- MVA-kode: LOW")
		assert.Contains(t, answer, "- MVA-sats: 12%")
		assert.Contains(t, answer, "[mval. § 5-5]")
	}
}

func TestRuleSamplesVatBreakdown(t *testing.T) {
	rule := hotelRule()
	e := &RuleExporter{VariationsPerRule: 1}
	samples := e.Samples([]domain.BusinessRule{rule})
	require.Len(t, samples, 1)

	answer := samples[0].Messages[2].Content
	assert.Regexp(t, `- Beløp eksl\. MVA: \d+\.\d{2} kr`, answer)
	assert.Regexp(t, `- MVA-beløp: \d+\.\d{2} kr`, answer)
	assert.Regexp(t, `- Totalt: \d+\.\d{2} kr`, answer)
}

func TestRuleSamplesAreDeterministic(t *testing.T) {
	rules := []domain.BusinessRule{hotelRule()}

	first, err := json.Marshal(NewRuleExporter().Samples(rules))
	require.NoError(t, err)
	second, err := json.Marshal(NewRuleExporter().Samples(rules))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestRuleSamplesSkipInactiveRules(t *testing.T) {
	rule := hotelRule()
	rule.IsActive = false

	assert.Empty(t, NewRuleExporter().Samples([]domain.BusinessRule{rule}))
}

func TestRuleSamplesSkipRulesWithoutPosting(t *testing.T) {
	rule := hotelRule()
	rule.Actions = []domain.RuleAction{
		{Type: domain.ActionSetAccount, Value: "7140"},
	}

	assert.Empty(t, NewRuleExporter().Samples([]domain.BusinessRule{rule}))
}

func TestRuleFamily(t *testing.T) {
	assert.Equal(t, "expense_hotel", RuleFamily("expense_hotel_no_001"))
	assert.Equal(t, "income_product", RuleFamily("income_product_sales_001"))
	assert.Equal(t, "unknown", RuleFamily("single"))
}

func TestRuleCategory(t *testing.T) {
	assert.Equal(t, "hotel", ruleCategory("expense_hotel_no_001"))
	assert.Equal(t, "food", ruleCategory("expense_food_meals_001"))
	assert.Equal(t, "transport", ruleCategory("expense_fuel_001"))
	assert.Equal(t, "equipment", ruleCategory("asset_it_equipment_001"))
	assert.Equal(t, "office", ruleCategory("expense_electricity_001"))
	assert.Equal(t, "office", ruleCategory("expense_office_supplies_001"))
}
