package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontolab/konto-ingest/internal/seed"
)

const testManifest = `source_id,title,url,domain,source_type,publisher,version,jurisdiction,crawl_freq
mva_law_2009,Merverdiavgiftsloven,https://lovdata.no/dokument/NL/lov/2009-06-19-58,tax,law,Lovdata,current,NO,monthly
skatteetaten_mva_rates,MVA-satser,https://www.skatteetaten.no/satser/merverdiavgift/,tax,rates,Skatteetaten,2025,NO,quarterly
`

// writeTestConfig points the pipeline at temp directories and returns
// the config path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	manifest := filepath.Join(dir, "sources.csv")
	require.NoError(t, os.WriteFile(manifest, []byte(testManifest), 0o644))

	cfg := fmt.Sprintf("data_dir = %q\nsources_file = %q\n", filepath.Join(dir, "data"), manifest)
	path := filepath.Join(dir, "konto.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		flagConfig = ""
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "konto-ingest version test-version-1.0.0")
}

func TestSourcesCmd_ListsManifest(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "sources", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, "mva_law_2009")
	assert.Contains(t, out, "skatteetaten_mva_rates")
	assert.Contains(t, out, "Lovdata")
}

func TestSourcesCmd_FiltersByFreq(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "sources", "--config", cfg, "--freq", "quarterly")

	require.NoError(t, err)
	assert.NotContains(t, out, "mva_law_2009")
	assert.Contains(t, out, "skatteetaten_mva_rates")
}

func TestSeedCmd_WritesSilverFiles(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "seed", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, seed.ChartFile)

	dir := filepath.Join(filepath.Dir(cfg), "data", "silver")
	assert.FileExists(t, filepath.Join(dir, seed.ChartFile))
	assert.FileExists(t, filepath.Join(dir, seed.RulesFile))
}

func TestValidateCmd_SilverAfterSeed(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := execute(t, "seed", "--config", cfg)
	require.NoError(t, err)

	out, err := execute(t, "validate", "silver", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, seed.RulesFile)
	assert.Contains(t, out, "quality:")

	dir := filepath.Join(filepath.Dir(cfg), "data", "silver")
	assert.FileExists(t, filepath.Join(dir, "metadata", "quality_report.json"))
}

func TestValidateCmd_RejectsUnknownTier(t *testing.T) {
	_, err := execute(t, "validate", "bronze")
	require.Error(t, err)
}

func TestExportCmd_RejectsUnknownKind(t *testing.T) {
	_, err := execute(t, "export", "csv")
	require.Error(t, err)
}

func TestExportCmd_All(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := execute(t, "seed", "--config", cfg)
	require.NoError(t, err)

	out, err := execute(t, "export", "rules", "--config", cfg,
		"--variations-per-rule", "2", "--conversations-per-template", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "gold")

	dir := filepath.Join(filepath.Dir(cfg), "data", "gold")
	assert.FileExists(t, filepath.Join(dir, "train", "rule_application.jsonl"))
}

func TestStatusCmd_EmptyCatalog(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "status", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, "no snapshots catalogued")
}

func TestStatusCmd_ShowsSeedRun(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := execute(t, "seed", "--config", cfg)
	require.NoError(t, err)

	out, err := execute(t, "status", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, "STAGE")
	assert.Contains(t, out, "seed")
	assert.Contains(t, out, "2/2")
}

func TestStatusCmd_SourceNeverIngested(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "status", "mva_law_2009", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, "never ingested")
	assert.Contains(t, out, "Merverdiavgiftsloven")
}

func TestStatusCmd_RejectsUnknownSource(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := execute(t, "status", "ukjent_kilde", "--config", cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ukjent_kilde")
}

func TestProcessCmd_ReportsMissingBronze(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "process", "--config", cfg)

	require.Error(t, err)
	assert.Contains(t, out, "failed")
}
