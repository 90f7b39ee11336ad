package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/core/ports/driving"
	"github.com/kontolab/konto-ingest/internal/exporters"
	"github.com/kontolab/konto-ingest/internal/logger"
	"github.com/kontolab/konto-ingest/internal/seed"
)

// Export kinds.
const (
	ExportGlossary  = "glossary"
	ExportRules     = "rules"
	ExportSynthetic = "synthetic"
	ExportAll       = "all"
)

// Glossary export types.
const (
	GlossaryTax        = "tax"
	GlossaryAccounting = "accounting"
	GlossaryBoth       = "both"
)

// Gold dataset filenames.
const (
	TaxGlossaryFile        = "tax_glossary.jsonl"
	AccountingGlossaryFile = "accounting_glossary.jsonl"
	RuleApplicationFile    = "rule_application.jsonl"
	ConversationsFile      = "synthetic_conversations.jsonl"
)

// ExportOptions selects what to export and with which knobs.
type ExportOptions struct {
	// Kind is glossary, rules, synthetic or all.
	Kind string

	// GlossaryType narrows the glossary export (tax, accounting, both).
	GlossaryType string

	// SplitRatio is the train share of the family split.
	SplitRatio float64

	// Seed drives the family shuffle and question phrasing.
	Seed int64

	// VariationsPerRule is the posting samples per business rule.
	VariationsPerRule int

	// ConversationsPerTemplate is the synthetic conversations per
	// template before deduplication.
	ConversationsPerTemplate int
}

// DefaultExportOptions exports everything with the standard knobs.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Kind:                     ExportAll,
		GlossaryType:             GlossaryBoth,
		SplitRatio:               exporters.DefaultSplitRatio,
		Seed:                     exporters.DefaultSeed,
		VariationsPerRule:        exporters.DefaultVariationsPerRule,
		ConversationsPerTemplate: exporters.DefaultConversationsPerTemplate,
	}
}

// ExportService runs Gold exports over the Silver layer.
type ExportService struct {
	silver  driven.SilverStore
	gold    driven.GoldStore
	catalog driven.SnapshotStore
	now     func() time.Time
}

// NewExportService creates the Gold export service.
func NewExportService(silver driven.SilverStore, gold driven.GoldStore, catalog driven.SnapshotStore) *ExportService {
	return &ExportService{silver: silver, gold: gold, catalog: catalog, now: time.Now}
}

// Export runs the selected exporters. Each dataset is one report item;
// a dataset that cannot be generated (missing Silver input) fails that
// item and the run continues.
func (s *ExportService) Export(ctx context.Context, opts ExportOptions) (*driving.RunReport, error) {
	report := &driving.RunReport{Stage: domain.StageGold}
	started := s.now()
	logger.Stage("gold export")

	type job struct {
		name string
		run  func() error
	}
	var jobs []job

	if opts.Kind == ExportGlossary || opts.Kind == ExportAll {
		if opts.GlossaryType == GlossaryTax || opts.GlossaryType == GlossaryBoth {
			jobs = append(jobs, job{TaxGlossaryFile, func() error { return s.exportTaxGlossary(opts) }})
		}
		if opts.GlossaryType == GlossaryAccounting || opts.GlossaryType == GlossaryBoth {
			jobs = append(jobs, job{AccountingGlossaryFile, func() error { return s.exportAccountingGlossary(opts) }})
		}
	}
	if opts.Kind == ExportRules || opts.Kind == ExportAll {
		jobs = append(jobs, job{RuleApplicationFile, func() error { return s.exportRules(opts) }})
	}
	if opts.Kind == ExportSynthetic || opts.Kind == ExportAll {
		jobs = append(jobs, job{ConversationsFile, func() error { return s.exportSynthetic(opts) }})
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: export kind %q", domain.ErrUnsupportedType, opts.Kind)
	}

	report.Total = len(jobs)
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := j.run(); err != nil {
			report.AddError(fmt.Sprintf("%s: %v", j.name, err))
			logger.Error("exporting %s: %v", j.name, err)
			continue
		}
		report.AddProcessed()
	}

	recordRun(ctx, s.catalog, report, started, s.now)
	return report, nil
}

func (s *ExportService) pipeline(opts ExportOptions) *exporters.Pipeline {
	return exporters.NewPipeline(s.gold, opts.SplitRatio, opts.Seed)
}

func (s *ExportService) exportTaxGlossary(opts ExportOptions) error {
	var sections []domain.LawSection
	if err := s.silver.ReadRecords(driven.SilverLawSections, &sections); err != nil {
		return fmt.Errorf("reading law sections: %w", err)
	}

	samples := exporters.NewGlossary(opts.Seed).TaxSamples(sections)
	stats, err := s.pipeline(opts).Export(samples, TaxGlossaryFile)
	if err != nil {
		return err
	}
	return s.gold.WriteStats("tax_glossary_export_stats.json", stats)
}

func (s *ExportService) exportAccountingGlossary(opts ExportOptions) error {
	glossary := exporters.NewGlossary(opts.Seed)
	var samples []domain.TrainingSample

	if s.silver.Exists(driven.SilverSaftNodes) {
		var nodes []domain.SpecNode
		if err := s.silver.ReadRecords(driven.SilverSaftNodes, &nodes); err != nil {
			return fmt.Errorf("reading saft nodes: %w", err)
		}
		samples = append(samples, glossary.SpecNodeSamples(nodes)...)
	}
	if s.silver.Exists(seed.ChartFile) {
		var accounts []domain.ChartOfAccountsEntry
		if err := s.silver.ReadRecords(seed.ChartFile, &accounts); err != nil {
			return fmt.Errorf("reading chart of accounts: %w", err)
		}
		samples = append(samples, glossary.AccountSamples(accounts)...)
	}

	stats, err := s.pipeline(opts).Export(samples, AccountingGlossaryFile)
	if err != nil {
		return err
	}
	return s.gold.WriteStats("accounting_glossary_export_stats.json", stats)
}

func (s *ExportService) exportRules(opts ExportOptions) error {
	rules, err := s.businessRules()
	if err != nil {
		return err
	}

	exporter := exporters.NewRuleExporter()
	if opts.VariationsPerRule > 0 {
		exporter.VariationsPerRule = opts.VariationsPerRule
	}

	stats, err := s.pipeline(opts).Export(exporter.Samples(rules), RuleApplicationFile)
	if err != nil {
		return err
	}
	return s.gold.WriteStats("rule_application_export_stats.json", stats)
}

func (s *ExportService) exportSynthetic(opts ExportOptions) error {
	rules, err := s.businessRules()
	if err != nil {
		return err
	}

	exporter := exporters.NewSyntheticExporter(opts.Seed)
	if opts.ConversationsPerTemplate > 0 {
		exporter.ConversationsPerTemplate = opts.ConversationsPerTemplate
	}

	stats, err := s.pipeline(opts).Export(exporter.Samples(rules), ConversationsFile)
	if err != nil {
		return err
	}
	return s.gold.WriteStats("synthetic_conversations_export_stats.json", stats)
}

func (s *ExportService) businessRules() ([]domain.BusinessRule, error) {
	var rules []domain.BusinessRule
	if err := s.silver.ReadRecords(seed.RulesFile, &rules); err != nil {
		return nil, fmt.Errorf("reading business rules (run seed first): %w", err)
	}
	logger.Info("loaded %d business rules", len(rules))
	return rules, nil
}
