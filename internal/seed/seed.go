package seed

import (
	"fmt"
	"strings"

	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/logger"
)

// Silver file names for seeded data.
const (
	ChartFile = "chart_of_accounts.json"
	RulesFile = "business_rules.json"
)

// Run validates the seed data and writes it to the Silver layer.
func Run(store driven.SilverStore) error {
	accounts := ChartOfAccounts()
	rules := BusinessRules()

	var errs []string
	errs = append(errs, ValidateChartOfAccounts(accounts)...)
	errs = append(errs, ValidateBusinessRules(rules)...)
	errs = append(errs, ValidateCrossReferences(rules, accounts)...)
	if len(errs) > 0 {
		return fmt.Errorf("seed data invalid: %s", strings.Join(errs, "; "))
	}

	if err := store.WriteRecords(ChartFile, accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	if err := store.WriteRecords(RulesFile, rules); err != nil {
		return fmt.Errorf("writing business rules: %w", err)
	}

	logger.Info("seeded %d accounts and %d business rules", len(accounts), len(rules))
	return nil
}
