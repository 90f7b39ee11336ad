package validation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagefile "github.com/kontolab/konto-ingest/internal/adapters/driven/storage/file"
	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/seed"
)

func testProvenance() domain.Provenance {
	return domain.Provenance{
		SourceURL:    "https://lovdata.no/dokument/NL/lov/2009-06-19-58",
		SHA256:       "a3f5c1d2e4b6a8c0d2e4f6a8b0c2d4e6f8a0b2c4d6e8f0a2b4c6d8e0f2a4b6c8",
		Domain:       "tax",
		SourceType:   "law",
		Publisher:    "Lovdata",
		Jurisdiction: "NO",
	}
}

func testSections() []domain.LawSection {
	return []domain.LawSection{
		{
			LawID:        "mval",
			SectionID:    "PARAGRAF_1-1",
			SectionLabel: "§ 1-1",
			Path:         "Kapittel 1 § 1-1",
			Heading:      "§ 1-1. Saklig virkeområde",
			TextPlain:    "Denne loven gjelder merverdiavgift.",
			Provenance:   testProvenance(),
			LastUpdated:  time.Now().UTC().Format(time.RFC3339),
		},
		{
			LawID:        "mval",
			SectionID:    "PARAGRAF_1-2",
			SectionLabel: "§ 1-2",
			Path:         "Kapittel 1 § 1-2",
			Heading:      "§ 1-2. Geografisk virkeområde",
			TextPlain:    "Loven gjelder i merverdiavgiftsområdet.",
			Provenance:   testProvenance(),
			LastUpdated:  time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func TestSilverValidatesCleanData(t *testing.T) {
	store := storagefile.NewSilverStore(t.TempDir())
	require.NoError(t, store.WriteRecords(driven.SilverLawSections, testSections()))
	require.NoError(t, seed.Run(store))

	report, err := Silver(store)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 0, report.TotalErrors())

	// law_sections, chart, rules, cross_references
	assert.Len(t, report.Results, 4)
}

func TestSilverReportsInvalidRecords(t *testing.T) {
	store := storagefile.NewSilverStore(t.TempDir())

	sections := testSections()
	sections[1].Heading = ""
	require.NoError(t, store.WriteRecords(driven.SilverLawSections, sections))

	report, err := Silver(store)
	require.NoError(t, err)
	assert.False(t, report.OK())
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	require.Len(t, result.Findings, 1)
	assert.Equal(t, 1, result.Findings[0].Record)
	assert.Equal(t, SeverityError, result.Findings[0].Severity)
}

func TestSilverSkipsMissingFiles(t *testing.T) {
	store := storagefile.NewSilverStore(t.TempDir())

	report, err := Silver(store)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Empty(t, report.Results)
}

func goldSample(split string) domain.TrainingSample {
	return domain.TrainingSample{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: "Du er en norsk regnskapsassistent."},
			{Role: domain.RoleUser, Content: "Hva betyr 'merverdiavgift'?"},
			{Role: domain.RoleAssistant, Content: "Merverdiavgift er en avgift på omsetning."},
		},
		Metadata: domain.SampleMetadata{
			Domain:    "tax",
			Task:      domain.TaskGlossaryDefine,
			SourceIDs: []string{"mval_PARAGRAF_1-1"},
			Locale:    "nb-NO",
			Split:     split,
			FamilyKey: "mval_chapter_1",
		},
	}
}

func TestGoldValidatesCleanDatasets(t *testing.T) {
	dir := t.TempDir()
	gold := storagefile.NewGoldStore(dir)
	require.NoError(t, gold.WriteSamples("train", "glossary.jsonl",
		[]domain.TrainingSample{goldSample("train")}))
	require.NoError(t, gold.WriteSamples("val", "glossary.jsonl",
		[]domain.TrainingSample{goldSample("val")}))

	report, err := Gold(dir)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Len(t, report.Results, 2)
}

func TestGoldReportsSplitMismatchAndBadLines(t *testing.T) {
	dir := t.TempDir()
	gold := storagefile.NewGoldStore(dir)
	require.NoError(t, gold.WriteSamples("train", "glossary.jsonl",
		[]domain.TrainingSample{goldSample("val")}))

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "train", "broken.jsonl"), []byte("not json\n"), 0o644))

	report, err := Gold(dir)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Equal(t, 2, report.TotalErrors())
}

func TestQualityScoresCleanData(t *testing.T) {
	store := storagefile.NewSilverStore(t.TempDir())
	require.NoError(t, store.WriteRecords(driven.SilverLawSections, testSections()))

	report, err := Quality(store)
	require.NoError(t, err)
	require.Len(t, report.Datasets, 1)

	ds := report.Datasets[0]
	assert.Equal(t, 100.0, ds.Completeness)
	assert.Equal(t, 100.0, ds.Consistency)
	assert.Equal(t, 100.0, ds.Accuracy)
	assert.Equal(t, 100.0, ds.Timeliness)
	assert.Equal(t, "A+", report.Grade)
	assert.Equal(t, []string{"data quality is good"}, report.Recommendations)
}

func TestQualityPenalisesMissingProvenance(t *testing.T) {
	store := storagefile.NewSilverStore(t.TempDir())

	sections := testSections()
	sections[0].Publisher = ""
	sections[0].SHA256 = "nothex"
	sections[1].LastUpdated = ""
	require.NoError(t, store.WriteRecords(driven.SilverLawSections, sections))

	report, err := Quality(store)
	require.NoError(t, err)
	require.Len(t, report.Datasets, 1)

	ds := report.Datasets[0]
	assert.Less(t, ds.Completeness, 100.0)
	assert.Less(t, ds.Accuracy, 100.0)
	assert.Less(t, ds.Timeliness, 100.0)
	assert.NotEmpty(t, ds.Issues)
	assert.NotEqual(t, []string{"data quality is good"}, report.Recommendations)
}

func TestQualityDetectsDuplicates(t *testing.T) {
	store := storagefile.NewSilverStore(t.TempDir())

	sections := testSections()
	sections[1].SectionID = sections[0].SectionID
	require.NoError(t, store.WriteRecords(driven.SilverLawSections, sections))

	report, err := Quality(store)
	require.NoError(t, err)
	require.Len(t, report.Datasets, 1)
	assert.Equal(t, 90.0, report.Datasets[0].Consistency)
}

func TestWriteQualityReport(t *testing.T) {
	dir := t.TempDir()
	report := &QualityReport{OverallScore: 97.5, Grade: "A+"}
	require.NoError(t, WriteQualityReport(dir, report))

	data, err := os.ReadFile(filepath.Join(dir, "metadata", "quality_report.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"grade": "A+"`)
}

func TestGrade(t *testing.T) {
	assert.Equal(t, "A+", grade(97))
	assert.Equal(t, "A", grade(92))
	assert.Equal(t, "B", grade(81))
	assert.Equal(t, "C", grade(70))
	assert.Equal(t, "F", grade(40))
}
