package validation

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/logger"
)

// QualityReportFile is where the Silver quality report is written,
// relative to the Silver directory.
const QualityReportFile = "metadata/quality_report.json"

// Quality dimension weights. Completeness weighs heaviest: a record
// without provenance is useless downstream regardless of accuracy.
const (
	weightCompleteness = 0.30
	weightConsistency  = 0.25
	weightAccuracy     = 0.25
	weightTimeliness   = 0.20
)

// staleAfter marks records older than a year as outdated.
const staleAfter = 365 * 24 * time.Hour

var sha256Re = regexp.MustCompile(`^[a-f0-9]{64}$`)

// DatasetQuality scores one Silver file across the four quality
// dimensions (0..100 each).
type DatasetQuality struct {
	File         string   `json:"file"`
	Records      int      `json:"records"`
	Completeness float64  `json:"completeness_score"`
	Consistency  float64  `json:"consistency_score"`
	Accuracy     float64  `json:"accuracy_score"`
	Timeliness   float64  `json:"timeliness_score"`
	Overall      float64  `json:"overall_score"`
	Issues       []string `json:"issues,omitempty"`
}

// QualityReport is the Silver data quality assessment written to
// metadata/quality_report.json.
type QualityReport struct {
	OverallScore    float64          `json:"overall_quality_score"`
	Grade           string           `json:"grade"`
	Datasets        []DatasetQuality `json:"datasets"`
	Recommendations []string         `json:"recommendations"`
	GeneratedAt     string           `json:"generated_at"`
}

// provRow is the provenance slice of a Silver record that quality
// scoring inspects, uniform across record types.
type provRow struct {
	id          string
	prov        domain.Provenance
	lastUpdated string
}

// Quality scores every provenance-carrying Silver file present in the
// store and grades the layer as a whole.
func Quality(store driven.SilverStore) (*QualityReport, error) {
	report := &QualityReport{GeneratedAt: time.Now().UTC().Format(time.RFC3339)}

	loaders := []struct {
		file string
		load func(driven.SilverStore) ([]provRow, error)
	}{
		{driven.SilverLawSections, loadSectionRows},
		{driven.SilverVatRates, loadRateRows},
		{driven.SilverSaftNodes, loadNodeRows},
		{driven.SilverAmeldingRules, loadAmeldingRows},
	}

	var sum float64
	for _, loader := range loaders {
		if !store.Exists(loader.file) {
			continue
		}
		rows, err := loader.load(store)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", loader.file, err)
		}
		ds := scoreDataset(loader.file, rows, time.Now())
		report.Datasets = append(report.Datasets, ds)
		sum += ds.Overall
	}

	if len(report.Datasets) > 0 {
		report.OverallScore = round2(sum / float64(len(report.Datasets)))
	}
	report.Grade = grade(report.OverallScore)
	report.Recommendations = recommendations(report.Datasets)

	logger.Info("silver quality: score %.1f grade %s over %d datasets",
		report.OverallScore, report.Grade, len(report.Datasets))
	return report, nil
}

// WriteQualityReport writes the report under the Silver directory.
func WriteQualityReport(silverDir string, report *QualityReport) error {
	path := filepath.Join(silverDir, filepath.FromSlash(QualityReportFile))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating silver metadata directory: %w", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling quality report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func loadSectionRows(store driven.SilverStore) ([]provRow, error) {
	var records []domain.LawSection
	if err := store.ReadRecords(driven.SilverLawSections, &records); err != nil {
		return nil, err
	}
	rows := make([]provRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, provRow{
			id:          rec.LawID + "_" + rec.SectionID,
			prov:        rec.Provenance,
			lastUpdated: rec.LastUpdated,
		})
	}
	return rows, nil
}

func loadRateRows(store driven.SilverStore) ([]provRow, error) {
	var records []domain.VatRate
	if err := store.ReadRecords(driven.SilverVatRates, &records); err != nil {
		return nil, err
	}
	rows := make([]provRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, provRow{
			id:          fmt.Sprintf("%s_%s", rec.Kind, formatPct(rec.Percentage)),
			prov:        rec.Provenance,
			lastUpdated: rec.LastUpdated,
		})
	}
	return rows, nil
}

func loadNodeRows(store driven.SilverStore) ([]provRow, error) {
	var records []domain.SpecNode
	if err := store.ReadRecords(driven.SilverSaftNodes, &records); err != nil {
		return nil, err
	}
	rows := make([]provRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, provRow{
			id:          rec.NodeID,
			prov:        rec.Provenance,
			lastUpdated: rec.LastUpdated,
		})
	}
	return rows, nil
}

func loadAmeldingRows(store driven.SilverStore) ([]provRow, error) {
	var records []domain.AmeldingRule
	if err := store.ReadRecords(driven.SilverAmeldingRules, &records); err != nil {
		return nil, err
	}
	rows := make([]provRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, provRow{
			id:          rec.RuleID,
			prov:        rec.Provenance,
			lastUpdated: rec.LastUpdated,
		})
	}
	return rows, nil
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func scoreDataset(file string, rows []provRow, now time.Time) DatasetQuality {
	ds := DatasetQuality{File: file, Records: len(rows)}
	if len(rows) == 0 {
		ds.Issues = append(ds.Issues, "dataset is empty")
		return ds
	}

	ds.Completeness = scoreCompleteness(rows, &ds)
	ds.Consistency = scoreConsistency(rows, &ds)
	ds.Accuracy = scoreAccuracy(rows, &ds)
	ds.Timeliness = scoreTimeliness(rows, now, &ds)

	ds.Overall = round2(ds.Completeness*weightCompleteness +
		ds.Consistency*weightConsistency +
		ds.Accuracy*weightAccuracy +
		ds.Timeliness*weightTimeliness)
	return ds
}

// scoreCompleteness is the mean fill rate of the provenance fields
// every consumer needs: URL, hash, domain, publisher.
func scoreCompleteness(rows []provRow, ds *DatasetQuality) float64 {
	fields := []struct {
		name string
		get  func(provRow) string
	}{
		{"source_url", func(r provRow) string { return r.prov.SourceURL }},
		{"sha256", func(r provRow) string { return r.prov.SHA256 }},
		{"domain", func(r provRow) string { return r.prov.Domain }},
		{"publisher", func(r provRow) string { return r.prov.Publisher }},
	}

	var total float64
	for _, f := range fields {
		filled := 0
		for _, row := range rows {
			if strings.TrimSpace(f.get(row)) != "" {
				filled++
			}
		}
		pct := float64(filled) / float64(len(rows)) * 100
		if filled < len(rows) {
			ds.Issues = append(ds.Issues,
				fmt.Sprintf("%d records missing %s", len(rows)-filled, f.name))
		}
		total += pct
	}
	return round2(total / float64(len(fields)))
}

// scoreConsistency penalises duplicate record ids and mixed domains,
// ten points per finding.
func scoreConsistency(rows []provRow, ds *DatasetQuality) float64 {
	penalties := 0

	seen := make(map[string]bool, len(rows))
	duplicates := 0
	for _, row := range rows {
		if row.id != "" && seen[row.id] {
			duplicates++
		}
		seen[row.id] = true
	}
	if duplicates > 0 {
		ds.Issues = append(ds.Issues, fmt.Sprintf("%d duplicate record ids", duplicates))
		penalties++
	}

	domains := make(map[string]bool)
	for _, row := range rows {
		if row.prov.Domain != "" {
			domains[row.prov.Domain] = true
		}
	}
	if len(domains) > 1 {
		ds.Issues = append(ds.Issues, fmt.Sprintf("dataset spans %d domains", len(domains)))
		penalties++
	}

	score := 100 - float64(penalties*10)
	if score < 0 {
		score = 0
	}
	return score
}

// scoreAccuracy penalises malformed URLs, hashes and unknown domains.
func scoreAccuracy(rows []provRow, ds *DatasetQuality) float64 {
	invalidURLs, invalidHashes, invalidDomains := 0, 0, 0

	for _, row := range rows {
		if row.prov.SourceURL != "" && !validURL(row.prov.SourceURL) {
			invalidURLs++
		}
		if row.prov.SHA256 != "" && !sha256Re.MatchString(strings.ToLower(row.prov.SHA256)) {
			invalidHashes++
		}
		switch domain.Domain(row.prov.Domain) {
		case "", domain.DomainTax, domain.DomainAccounting, domain.DomainReporting:
		default:
			invalidDomains++
		}
	}

	if invalidURLs > 0 {
		ds.Issues = append(ds.Issues, fmt.Sprintf("%d invalid URLs", invalidURLs))
	}
	if invalidHashes > 0 {
		ds.Issues = append(ds.Issues, fmt.Sprintf("%d invalid SHA-256 hashes", invalidHashes))
	}
	if invalidDomains > 0 {
		ds.Issues = append(ds.Issues, fmt.Sprintf("%d invalid domains", invalidDomains))
	}

	score := 100 - float64(invalidURLs*5+invalidHashes*10+invalidDomains*5)
	if score < 0 {
		score = 0
	}
	return score
}

// scoreTimeliness penalises missing timestamps and records older than
// a year.
func scoreTimeliness(rows []provRow, now time.Time, ds *DatasetQuality) float64 {
	outdated, missing := 0, 0

	for _, row := range rows {
		if row.lastUpdated == "" {
			missing++
			continue
		}
		ts, err := time.Parse(time.RFC3339, row.lastUpdated)
		if err != nil {
			missing++
			continue
		}
		if now.Sub(ts) > staleAfter {
			outdated++
		}
	}

	if outdated > 0 {
		ds.Issues = append(ds.Issues, fmt.Sprintf("%d records older than one year", outdated))
	}
	if missing > 0 {
		ds.Issues = append(ds.Issues, fmt.Sprintf("%d records without timestamps", missing))
	}

	score := 100 - float64(outdated*2+missing*3)
	if score < 0 {
		score = 0
	}
	return score
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func grade(score float64) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "B+"
	case score >= 80:
		return "B"
	case score >= 75:
		return "C+"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

func recommendations(datasets []DatasetQuality) []string {
	var recs []string
	add := func(msg string) {
		for _, r := range recs {
			if r == msg {
				return
			}
		}
		recs = append(recs, msg)
	}

	for _, ds := range datasets {
		if ds.Completeness < 80 {
			add("fill missing provenance fields (source_url, sha256, domain, publisher)")
		}
		if ds.Consistency < 90 {
			add("resolve duplicate or cross-domain records")
		}
		if ds.Accuracy < 95 {
			add("fix invalid URLs, hashes or domains")
		}
		if ds.Timeliness < 85 {
			add("re-process outdated records and stamp timestamps")
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "data quality is good")
	}
	return recs
}
