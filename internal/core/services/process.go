package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kontolab/konto-ingest/internal/cleaners"
	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/core/ports/driving"
	"github.com/kontolab/konto-ingest/internal/hashutil"
	"github.com/kontolab/konto-ingest/internal/logger"
	"github.com/kontolab/konto-ingest/internal/sources"
)

var _ driving.Processor = (*ProcessService)(nil)

// Parsers bundles the Silver parsers by the source type they handle.
type Parsers struct {
	Sections driven.SectionParser
	Rates    driven.RateParser
	Spec     driven.SpecParser
	Guidance driven.GuidanceParser
}

// ProcessService runs Silver processing: Bronze files are parsed into
// normalised records, quality-gated and written per record type.
type ProcessService struct {
	sources *sources.Loader
	bronze  driven.BronzeStore
	silver  driven.SilverStore
	catalog driven.SnapshotStore
	parsers Parsers
	now     func() time.Time
}

// NewProcessService creates the Silver processing service.
func NewProcessService(
	loader *sources.Loader,
	bronze driven.BronzeStore,
	silver driven.SilverStore,
	catalog driven.SnapshotStore,
	parsers Parsers,
) *ProcessService {
	return &ProcessService{
		sources: loader,
		bronze:  bronze,
		silver:  silver,
		catalog: catalog,
		parsers: parsers,
		now:     time.Now,
	}
}

// Process parses the Bronze content of every matching source into
// Silver records. Records accumulate per type across sources and each
// type is written as one Silver file at the end, so a law corpus split
// over many sources still lands in a single law_sections.json.
func (s *ProcessService) Process(ctx context.Context, filter driving.SourceFilter) (*driving.RunReport, error) {
	srcs, err := s.sources.Filter(filter)
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}
	if len(srcs) == 0 {
		return nil, fmt.Errorf("%w: domain=%q freq=%q", domain.ErrNoSources, filter.Domain, filter.Freq)
	}

	report := &driving.RunReport{Stage: domain.StageSilver, Total: len(srcs)}
	started := s.now()
	logger.Stage("silver processing")

	var (
		sections []domain.LawSection
		rates    []domain.VatRate
		nodes    []domain.SpecNode
		rules    []domain.AmeldingRule
	)
	seen := make(map[string]bool)

	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		in, err := s.parseInput(src)
		if err != nil {
			report.AddError(fmt.Sprintf("%s: %v", src.ID, err))
			logger.Error("processing %s: %v", src.ID, err)
			continue
		}

		switch src.Type {
		case domain.SourceTypeLaw, domain.SourceTypeForskrift:
			parsed, err := s.parsers.Sections.ParseSections(in)
			if err != nil {
				report.AddError(fmt.Sprintf("%s: %v", src.ID, err))
				continue
			}
			sections = append(sections, s.gateSections(src.ID, parsed, seen)...)

		case domain.SourceTypeRates:
			parsed, err := s.parsers.Rates.ParseRates(in)
			if err != nil {
				report.AddError(fmt.Sprintf("%s: %v", src.ID, err))
				continue
			}
			rates = append(rates, s.stampRates(parsed)...)

		case domain.SourceTypeSpec:
			parsed, err := s.parsers.Spec.ParseNodes(in)
			if err != nil {
				report.AddError(fmt.Sprintf("%s: %v", src.ID, err))
				continue
			}
			nodes = append(nodes, s.stampNodes(parsed)...)

		case domain.SourceTypeGuidance:
			parsed, err := s.parsers.Guidance.ParseRules(in)
			if err != nil {
				report.AddError(fmt.Sprintf("%s: %v", src.ID, err))
				continue
			}
			rules = append(rules, s.stampRules(parsed)...)

		default:
			report.AddError(fmt.Sprintf("%s: %v: %s", src.ID, domain.ErrUnsupportedType, src.Type))
			continue
		}

		report.AddProcessed()
	}

	if err := s.writeSilver(sections, rates, nodes, rules); err != nil {
		return nil, err
	}
	recordRun(ctx, s.catalog, report, started, s.now)

	logger.Info("processing complete: %d/%d sources, %d sections, %d rates, %d nodes, %d rules",
		report.Processed, report.Total, len(sections), len(rates), len(nodes), len(rules))
	return report, nil
}

func (s *ProcessService) parseInput(src domain.Source) (driven.ParseInput, error) {
	content, err := s.bronze.Read(src.ID)
	if err != nil {
		return driven.ParseInput{}, err
	}
	return driven.ParseInput{
		Source:  src,
		Content: content,
		SHA256:  hashutil.SHA256Bytes(content),
	}, nil
}

// gateSections drops sections under the quality threshold, deduplicates
// by canonical text across sources and stamps the processing timestamp
// on the survivors. Lovdata serves the same paragraph under both the
// law page and its chapter pages; the stable hash collapses those.
func (s *ProcessService) gateSections(sourceID string, parsed []domain.LawSection, seen map[string]bool) []domain.LawSection {
	now := s.now().UTC().Format(time.RFC3339)
	kept := parsed[:0:0]
	for _, section := range parsed {
		ok, issues := cleaners.CheckSection(section)
		if !ok {
			logger.Debug("dropping %s %s: %v", sourceID, section.SectionID, issues)
			continue
		}
		key := hashutil.StableHash(section.TextPlain)
		if seen[key] {
			logger.Debug("dropping %s %s: duplicate text", sourceID, section.SectionID)
			continue
		}
		seen[key] = true
		section.LastUpdated = now
		kept = append(kept, section)
	}
	if dropped := len(parsed) - len(kept); dropped > 0 {
		logger.Info("%s: dropped %d sections (quality or duplicate)", sourceID, dropped)
	}
	return kept
}

func (s *ProcessService) stampRates(rates []domain.VatRate) []domain.VatRate {
	now := s.now().UTC().Format(time.RFC3339)
	for i := range rates {
		rates[i].LastUpdated = now
	}
	return rates
}

func (s *ProcessService) stampNodes(nodes []domain.SpecNode) []domain.SpecNode {
	now := s.now().UTC().Format(time.RFC3339)
	for i := range nodes {
		nodes[i].LastUpdated = now
	}
	return nodes
}

func (s *ProcessService) stampRules(rules []domain.AmeldingRule) []domain.AmeldingRule {
	now := s.now().UTC().Format(time.RFC3339)
	for i := range rules {
		rules[i].LastUpdated = now
	}
	return rules
}

// writeSilver writes each non-empty record list to its Silver file.
// Empty lists leave existing files untouched, so processing a tax-only
// filter does not wipe the accounting records.
func (s *ProcessService) writeSilver(
	sections []domain.LawSection,
	rates []domain.VatRate,
	nodes []domain.SpecNode,
	rules []domain.AmeldingRule,
) error {
	if len(sections) > 0 {
		if err := s.silver.WriteRecords(driven.SilverLawSections, sections); err != nil {
			return fmt.Errorf("writing law sections: %w", err)
		}
	}
	if len(rates) > 0 {
		if err := s.silver.WriteRecords(driven.SilverVatRates, rates); err != nil {
			return fmt.Errorf("writing vat rates: %w", err)
		}
	}
	if len(nodes) > 0 {
		if err := s.silver.WriteRecords(driven.SilverSaftNodes, nodes); err != nil {
			return fmt.Errorf("writing saft nodes: %w", err)
		}
	}
	if len(rules) > 0 {
		if err := s.silver.WriteRecords(driven.SilverAmeldingRules, rules); err != nil {
			return fmt.Errorf("writing amelding rules: %w", err)
		}
	}
	return nil
}
