package seed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kontolab/konto-ingest/internal/core/domain"
)

// ValidateChartOfAccounts checks the account list for duplicates,
// per-entry validity and full class coverage (1 through 8).
func ValidateChartOfAccounts(accounts []domain.ChartOfAccountsEntry) []string {
	var errs []string

	seen := map[string]bool{}
	classes := map[string]bool{}
	for _, a := range accounts {
		if err := a.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("account %s: %v", a.AccountID, err))
		}
		if seen[a.AccountID] {
			errs = append(errs, fmt.Sprintf("duplicate account ID %s", a.AccountID))
		}
		seen[a.AccountID] = true
		classes[a.AccountClass] = true
	}

	var missing []string
	for _, c := range []string{"1", "2", "3", "4", "5", "6", "7", "8"} {
		if !classes[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, "missing account classes: "+strings.Join(missing, ", "))
	}
	return errs
}

// ValidateBusinessRules checks the rule list for duplicates, per-rule
// validity, source citations and domain coverage.
func ValidateBusinessRules(rules []domain.BusinessRule) []string {
	var errs []string

	seen := map[string]bool{}
	domains := map[string]bool{}
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("rule %s: %v", r.RuleID, err))
		}
		if seen[r.RuleID] {
			errs = append(errs, fmt.Sprintf("duplicate rule ID %s", r.RuleID))
		}
		seen[r.RuleID] = true
		domains[r.Domain] = true
	}

	for _, d := range []string{"tax", "accounting", "payroll"} {
		if !domains[d] {
			errs = append(errs, "no rules for domain "+d)
		}
	}
	if len(rules) < 15 {
		errs = append(errs, fmt.Sprintf("expected at least 15 rules, got %d", len(rules)))
	}
	return errs
}

// ValidateCrossReferences checks that every account a rule posts to
// exists in the chart of accounts.
func ValidateCrossReferences(rules []domain.BusinessRule, accounts []domain.ChartOfAccountsEntry) []string {
	ids := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		ids[a.AccountID] = true
	}

	var errs []string
	for _, r := range rules {
		for _, a := range r.Actions {
			if a.Type != domain.ActionSetAccount && a.Type != domain.ActionSetVatAccount {
				continue
			}
			ref, _ := a.Value.(string)
			if ref != "" && !ids[ref] {
				errs = append(errs, fmt.Sprintf("rule %s references unknown account %s", r.RuleID, ref))
			}
		}
	}
	sort.Strings(errs)
	return errs
}
