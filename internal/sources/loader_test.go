package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driving"
)

const testManifest = `source_id,title,url,domain,source_type,publisher,version,jurisdiction,crawl_freq
mva_law_2009,Merverdiavgiftsloven,https://lovdata.no/dokument/NL/lov/2009-06-19-58,tax,law,Lovdata,current,NO,monthly
skatteetaten_mva_rates,MVA-satser,https://www.skatteetaten.no/satser/merverdiavgift/,tax,rates,Skatteetaten,2025,NO,quarterly
saft_v1_3_spec,SAF-T Financial v1.3,https://www.skatteetaten.no/saf-t/,accounting,spec,Skatteetaten,1.3,NO,onchange
amelding_guidance,A-meldingen veiledning,https://www.altinn.no/a-meldingen/,reporting,guidance,Altinn,,,monthly
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderAll(t *testing.T) {
	loader := NewLoader(writeManifest(t, testManifest))

	srcs, err := loader.All()
	require.NoError(t, err)
	require.Len(t, srcs, 4)

	assert.Equal(t, "mva_law_2009", srcs[0].ID)
	assert.Equal(t, domain.DomainTax, srcs[0].Domain)
	assert.Equal(t, domain.SourceTypeLaw, srcs[0].Type)
	assert.Equal(t, "Lovdata", srcs[0].Publisher)

	// Missing jurisdiction and version fall back to defaults.
	assert.Equal(t, "NO", srcs[3].Jurisdiction)
	assert.Equal(t, "current", srcs[3].Version)
}

func TestLoaderFilter(t *testing.T) {
	loader := NewLoader(writeManifest(t, testManifest))

	tax, err := loader.Filter(driving.SourceFilter{Domain: domain.DomainTax})
	require.NoError(t, err)
	assert.Len(t, tax, 2)

	monthly, err := loader.Filter(driving.SourceFilter{Freq: domain.CrawlMonthly})
	require.NoError(t, err)
	assert.Len(t, monthly, 2)

	both, err := loader.Filter(driving.SourceFilter{
		Domain: domain.DomainTax,
		Freq:   domain.CrawlMonthly,
	})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "mva_law_2009", both[0].ID)

	none, err := loader.Filter(driving.SourceFilter{Freq: domain.CrawlDaily})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLoaderByID(t *testing.T) {
	loader := NewLoader(writeManifest(t, testManifest))

	s, err := loader.ByID("saft_v1_3_spec")
	require.NoError(t, err)
	assert.Equal(t, "1.3", s.Version)

	_, err = loader.ByID("no_such_source")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoaderLookup(t *testing.T) {
	loader := NewLoader(writeManifest(t, testManifest))

	lookup, err := loader.Lookup()
	require.NoError(t, err)
	require.Len(t, lookup, 4)
	assert.Equal(t, "Altinn", lookup["amelding_guidance"].Publisher)
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.csv"))

	_, err := loader.All()
	assert.Error(t, err)
}

func TestLoaderMissingColumn(t *testing.T) {
	loader := NewLoader(writeManifest(t, "source_id,title\nx,Y\n"))

	_, err := loader.All()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoaderInvalidRow(t *testing.T) {
	manifest := "source_id,url,domain,source_type\n,https://example.no,tax,law\n"
	loader := NewLoader(writeManifest(t, manifest))

	_, err := loader.All()
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}
