package validation

import (
	"fmt"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/logger"
	"github.com/kontolab/konto-ingest/internal/seed"
)

// Silver validates every known Silver file present in the store. Files
// the pipeline has not produced yet are skipped, not failed: a partial
// Silver layer is a normal state between stages.
func Silver(store driven.SilverStore) (*Report, error) {
	report := &Report{Tier: "silver"}

	checks := []struct {
		file     string
		validate func(driven.SilverStore, *Result) error
	}{
		{driven.SilverLawSections, validateRecords[domain.LawSection]},
		{driven.SilverVatRates, validateRecords[domain.VatRate]},
		{driven.SilverSaftNodes, validateRecords[domain.SpecNode]},
		{driven.SilverAmeldingRules, validateRecords[domain.AmeldingRule]},
		{seed.ChartFile, validateRecords[domain.ChartOfAccountsEntry]},
		{seed.RulesFile, validateRecords[domain.BusinessRule]},
	}

	for _, check := range checks {
		if !store.Exists(check.file) {
			logger.Debug("silver file %s not present, skipped", check.file)
			continue
		}
		result := Result{File: check.file}
		if err := check.validate(store, &result); err != nil {
			return nil, fmt.Errorf("validating %s: %w", check.file, err)
		}
		report.Results = append(report.Results, result)
	}

	if err := crossCheck(store, report); err != nil {
		return nil, err
	}

	logger.Info("silver validation: %d files, %d errors",
		len(report.Results), report.TotalErrors())
	return report, nil
}

// validatable is any Silver record with a shape contract.
type validatable interface {
	Validate() error
}

func validateRecords[T validatable](store driven.SilverStore, result *Result) error {
	var records []T
	if err := store.ReadRecords(result.File, &records); err != nil {
		return fmt.Errorf("reading records: %w", err)
	}

	result.Records = len(records)
	if len(records) == 0 {
		result.AddWarning(-1, "record", "file contains no records")
		return nil
	}

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			result.AddError(i, "record", err.Error())
		}
	}
	return nil
}

// crossCheck re-runs the seed cross-reference validation against what
// is actually on disk, so hand-edited Silver files are caught too.
func crossCheck(store driven.SilverStore, report *Report) error {
	if !store.Exists(seed.ChartFile) || !store.Exists(seed.RulesFile) {
		return nil
	}

	var accounts []domain.ChartOfAccountsEntry
	if err := store.ReadRecords(seed.ChartFile, &accounts); err != nil {
		return fmt.Errorf("reading chart of accounts: %w", err)
	}
	var rules []domain.BusinessRule
	if err := store.ReadRecords(seed.RulesFile, &rules); err != nil {
		return fmt.Errorf("reading business rules: %w", err)
	}

	result := Result{File: "cross_references", Records: len(rules)}
	for _, msg := range seed.ValidateCrossReferences(rules, accounts) {
		result.AddError(-1, "actions", msg)
	}
	report.Results = append(report.Results, result)
	return nil
}
