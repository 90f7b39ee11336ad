package exporters

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagefile "github.com/kontolab/konto-ingest/internal/adapters/driven/storage/file"
	"github.com/kontolab/konto-ingest/internal/core/domain"
)

func testSample(family, question string) domain.TrainingSample {
	return domain.TrainingSample{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: promptTaxGlossary},
			{Role: domain.RoleUser, Content: question},
			{Role: domain.RoleAssistant, Content: "Merverdiavgift er en avgift på omsetning av varer og tjenester."},
		},
		Metadata: domain.SampleMetadata{
			Domain:    "tax",
			Task:      domain.TaskGlossaryDefine,
			SourceIDs: []string{"mval_PARAGRAF_1-1"},
			Locale:    "nb-NO",
			FamilyKey: family,
		},
	}
}

func readJSONL(t *testing.T, path string) []domain.TrainingSample {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var samples []domain.TrainingSample
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		var s domain.TrainingSample
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &s))
		samples = append(samples, s)
	}
	require.NoError(t, scanner.Err())
	return samples
}

func TestExportSplitsAtFamilyBoundaries(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(storagefile.NewGoldStore(dir), 0.8, DefaultSeed)

	var samples []domain.TrainingSample
	families := []string{"mval_chapter_1", "mval_chapter_2", "mval_chapter_3",
		"mval_chapter_4", "mval_chapter_5", "sktl_chapter_1", "sktl_chapter_2",
		"sktl_chapter_3", "sktl_chapter_4", "sktl_chapter_5"}
	for _, fam := range families {
		for i := 0; i < 4; i++ {
			samples = append(samples, testSample(fam, "Hva betyr '"+fam+"' variant "+strings.Repeat("x", i+1)+"?"))
		}
	}

	stats, err := p.Export(samples, "glossary.jsonl")
	require.NoError(t, err)

	assert.Equal(t, 40, stats.TotalGenerated)
	assert.Equal(t, 0, stats.DuplicatesRemoved)
	assert.Equal(t, 40, stats.TrainSamples+stats.ValSamples)
	assert.Equal(t, 32, stats.TrainSamples, "8 of 10 families go to train")

	train := readJSONL(t, filepath.Join(dir, "train", "glossary.jsonl"))
	val := readJSONL(t, filepath.Join(dir, "val", "glossary.jsonl"))
	require.Len(t, train, 32)
	require.Len(t, val, 8)

	trainFamilies := map[string]bool{}
	for _, s := range train {
		assert.Equal(t, "train", s.Metadata.Split)
		assert.NotEmpty(t, s.Metadata.CreatedAt)
		trainFamilies[s.Metadata.FamilyKey] = true
	}
	for _, s := range val {
		assert.Equal(t, "val", s.Metadata.Split)
		assert.False(t, trainFamilies[s.Metadata.FamilyKey],
			"family %s leaked into both splits", s.Metadata.FamilyKey)
	}
}

func TestExportIsDeterministic(t *testing.T) {
	var samples []domain.TrainingSample
	for _, fam := range []string{"a", "b", "c", "d", "e"} {
		samples = append(samples, testSample("family_"+fam, "Hva betyr 'begrep "+fam+"'?"))
	}

	run := func() ([]domain.TrainingSample, []domain.TrainingSample) {
		dir := t.TempDir()
		p := NewPipeline(storagefile.NewGoldStore(dir), 0.8, DefaultSeed)
		_, err := p.Export(samples, "out.jsonl")
		require.NoError(t, err)
		return readJSONL(t, filepath.Join(dir, "train", "out.jsonl")),
			readJSONL(t, filepath.Join(dir, "val", "out.jsonl"))
	}

	train1, val1 := run()
	train2, val2 := run()

	keys := func(list []domain.TrainingSample) []string {
		var out []string
		for _, s := range list {
			out = append(out, s.Metadata.FamilyKey)
		}
		return out
	}
	assert.Equal(t, keys(train1), keys(train2))
	assert.Equal(t, keys(val1), keys(val2))
}

func TestExportRemovesDuplicates(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(storagefile.NewGoldStore(dir), 0.8, DefaultSeed)

	s := testSample("family_a", "Hva betyr 'merverdiavgift'?")
	dup := s
	dup.Metadata.FamilyKey = "family_b" // same messages, different metadata

	stats, err := p.Export([]domain.TrainingSample{s, dup}, "out.jsonl")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DuplicatesRemoved)
	assert.Equal(t, 1, stats.TrainSamples+stats.ValSamples)
}

func TestExportFiltersLowQuality(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(storagefile.NewGoldStore(dir), 0.8, DefaultSeed)

	good := testSample("family_a", "Hva betyr 'merverdiavgift'?")

	short := testSample("family_b", "Forklar 'skattegrunnlag'")
	short.Messages[2].Content = "Kort."

	noSources := testSample("family_c", "Hva er 'fradragsrett'?")
	noSources.Metadata.SourceIDs = nil

	long := testSample("family_d", "Hva er 'omsetning'?")
	long.Messages[2].Content = strings.Repeat("a", maxContentLen+1)

	stats, err := p.Export([]domain.TrainingSample{good, short, noSources, long}, "out.jsonl")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.QualityIssues)
	assert.Equal(t, 1, stats.TotalFiltered)
}

func TestCheckSample(t *testing.T) {
	assert.True(t, CheckSample(testSample("f", "Hva betyr 'avgiftssubjekt'?")))

	onlySystem := domain.TrainingSample{
		Messages: []domain.Message{{Role: domain.RoleSystem, Content: promptTaxGlossary}},
		Metadata: domain.SampleMetadata{SourceIDs: []string{"x"}},
	}
	assert.False(t, CheckSample(onlySystem))
}

func TestCalculateVAT(t *testing.T) {
	tests := []struct {
		amount, rate  float64
		exVAT, vatAmt float64
	}{
		{1250, 25, 1000, 250},
		{1120, 12, 1000, 120},
		{1150, 15, 1000, 150},
		{1000, 25, 800, 200},
		{1000, 0, 1000, 0},
		{1500, 12, 1339.29, 160.71},
	}
	for _, tt := range tests {
		exVAT, vatAmt := CalculateVAT(tt.amount, tt.rate)
		assert.InDelta(t, tt.exVAT, exVAT, 0.001, "ex VAT for %v at %v%%", tt.amount, tt.rate)
		assert.InDelta(t, tt.vatAmt, vatAmt, 0.001, "VAT for %v at %v%%", tt.amount, tt.rate)
	}
}

func TestFormatPostingProposal(t *testing.T) {
	got := FormatPostingProposal("7140", "Reisekostnad", "LOW", 12, 1120, "Skatteetaten MVA-satser")

	assert.Contains(t, got, "Kontering:")
	assert.Contains(t, got, "- Konto: 7140 (Reisekostnad)")
	assert.Contains(t, got, "- MVA-kode: LOW")
	assert.Contains(t, got, "- MVA-sats: 12%")
	assert.Contains(t, got, "- Beløp eksl. MVA: 1000.00 kr")
	assert.Contains(t, got, "- MVA-beløp: 120.00 kr")
	assert.Contains(t, got, "- Totalt: 1120.00 kr")
	assert.True(t, strings.HasSuffix(got, "[Skatteetaten MVA-satser]"))
}
