package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagefile "github.com/kontolab/konto-ingest/internal/adapters/driven/storage/file"
	"github.com/kontolab/konto-ingest/internal/core/domain"
)

func TestChartOfAccountsIsValid(t *testing.T) {
	accounts := ChartOfAccounts()
	require.NotEmpty(t, accounts)
	assert.Empty(t, ValidateChartOfAccounts(accounts))

	for _, a := range accounts {
		assert.NoError(t, a.Validate(), "account %s", a.AccountID)
	}
}

func TestBusinessRulesAreValid(t *testing.T) {
	rules := BusinessRules()
	require.GreaterOrEqual(t, len(rules), 15)
	assert.Empty(t, ValidateBusinessRules(rules))

	for _, r := range rules {
		assert.NoError(t, r.Validate(), "rule %s", r.RuleID)
		assert.NotEmpty(t, r.SourceIDs, "rule %s must cite sources", r.RuleID)
	}
}

func TestCrossReferences(t *testing.T) {
	assert.Empty(t, ValidateCrossReferences(BusinessRules(), ChartOfAccounts()))
}

func TestCrossReferencesDetectMissingAccount(t *testing.T) {
	rules := []domain.BusinessRule{{
		RuleID: "bad_rule",
		Actions: []domain.RuleAction{
			{Type: domain.ActionSetAccount, Value: "9999"},
		},
	}}
	errs := ValidateCrossReferences(rules, ChartOfAccounts())
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "9999")
}

func TestHotelRuleSemantics(t *testing.T) {
	rules := BusinessRules()
	var hotel *domain.BusinessRule
	for i := range rules {
		if rules[i].RuleID == "expense_hotel_no_001" {
			hotel = &rules[i]
			break
		}
	}
	require.NotNil(t, hotel)

	account := hotel.Action(domain.ActionSetAccount)
	require.NotNil(t, account)
	assert.Equal(t, "7140", account.Value)

	rate := hotel.Action(domain.ActionSetVatRate)
	require.NotNil(t, rate)
	assert.Equal(t, 12.0, rate.Value)

	code := hotel.Action(domain.ActionSetVatCode)
	require.NotNil(t, code)
	assert.Equal(t, "LOW", code.Value)
}

func TestValidateChartDetectsDuplicates(t *testing.T) {
	accounts := ChartOfAccounts()
	accounts = append(accounts, accounts[0])
	errs := ValidateChartOfAccounts(accounts)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "duplicate")
}

func TestRunWritesSilverFiles(t *testing.T) {
	store := storagefile.NewSilverStore(t.TempDir())
	require.NoError(t, Run(store))

	assert.True(t, store.Exists(ChartFile))
	assert.True(t, store.Exists(RulesFile))

	var rules []domain.BusinessRule
	require.NoError(t, store.ReadRecords(RulesFile, &rules))
	assert.GreaterOrEqual(t, len(rules), 15)
}
