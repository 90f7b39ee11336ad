package exporters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/seed"
)

func conversationRules() []domain.BusinessRule {
	food := domain.BusinessRule{
		RuleID:      "expense_food_meals_001",
		RuleName:    "Matservering",
		Description: "Mat og drikke har redusert sats",
		Category:    "expense",
		Domain:      "tax",
		IsActive:    true,
		Actions: []domain.RuleAction{
			{Type: domain.ActionSetAccount, Value: "7160"},
			{Type: domain.ActionSetVatCode, Value: "MEDIUM"},
			{Type: domain.ActionSetVatRate, Value: 15.0},
		},
		SourceIDs: []string{"skatteetaten_mva_satser"},
	}
	return []domain.BusinessRule{hotelRule(), food}
}

func TestSyntheticSamples(t *testing.T) {
	e := NewSyntheticExporter(DefaultSeed)
	e.ConversationsPerTemplate = 5

	samples := e.Samples(conversationRules())
	require.NotEmpty(t, samples)
	assert.LessOrEqual(t, len(samples), 5*len(Templates()))

	types := map[string]bool{}
	for _, s := range samples {
		require.NoError(t, s.Validate())
		assert.Equal(t, "accounting", s.Metadata.Domain)
		assert.Equal(t, domain.TaskConversation, s.Metadata.Task)
		assert.Equal(t, s.Metadata.ConversationType, s.Metadata.FamilyKey)
		assert.Equal(t, 1+2*s.Metadata.Turns, len(s.Messages))
		types[s.Metadata.ConversationType] = true

		for _, m := range s.Messages {
			assert.NotContains(t, m.Content, "{", "unfilled placeholder in %q", m.Content)
		}
	}
	assert.True(t, types["expense_entry"])
	assert.True(t, types["multi_item"])
}

func TestSyntheticSamplesAreDeterministic(t *testing.T) {
	rules := conversationRules()

	gen := func() []domain.TrainingSample {
		e := NewSyntheticExporter(DefaultSeed)
		e.ConversationsPerTemplate = 10
		return e.Samples(rules)
	}

	assert.Equal(t, gen(), gen())
}

func TestSyntheticSamplesRequireActiveRules(t *testing.T) {
	rule := hotelRule()
	rule.IsActive = false

	e := NewSyntheticExporter(DefaultSeed)
	assert.Empty(t, e.Samples([]domain.BusinessRule{rule}))
}

func TestSyntheticSamplesOverSeededRules(t *testing.T) {
	e := NewSyntheticExporter(DefaultSeed)
	e.ConversationsPerTemplate = 3

	samples := e.Samples(seed.BusinessRules())
	require.NotEmpty(t, samples)
	for _, s := range samples {
		require.NoError(t, s.Validate())
		assert.Equal(t, "nb-NO", s.Metadata.Locale)
	}
}

func TestTemplatesHaveTurns(t *testing.T) {
	for _, tmpl := range Templates() {
		assert.NotEmpty(t, tmpl.ID)
		assert.NotEmpty(t, tmpl.System)
		assert.NotEmpty(t, tmpl.Turns, "template %s", tmpl.ID)
	}
}
