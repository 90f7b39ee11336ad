package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
)

const ratesHTML = `<html><body><main>
<table>
  <tr><th>Type sats</th><th>Prosent</th><th>Gyldig</th></tr>
  <tr><td>Alminnelig sats</td><td>25 %</td><td>01.01.2025</td></tr>
  <tr><td>Næringsmidler</td><td>15 %</td><td></td></tr>
  <tr><td>Persontransport, kinobilletter og overnatting</td><td>12 %</td><td></td></tr>
  <tr><td>Eksport, fritatt omsetning</td><td>0 %</td><td></td></tr>
</table>
<div class="sats-info">Noe tekst uten prosenter.</div>
</main></body></html>`

func testInput(content string) driven.ParseInput {
	return driven.ParseInput{
		Source: domain.Source{
			ID:           "skatteetaten_mva_rates",
			Title:        "MVA-satser",
			URL:          "https://www.skatteetaten.no/satser/merverdiavgift/",
			Domain:       domain.DomainTax,
			Type:         domain.SourceTypeRates,
			Publisher:    "Skatteetaten",
			Version:      "2025",
			Jurisdiction: "NO",
		},
		Content: []byte(content),
		SHA256:  "def456",
	}
}

func TestParseRates(t *testing.T) {
	rates, err := New().ParseRates(testInput(ratesHTML))
	require.NoError(t, err)
	require.Len(t, rates, 4)

	byCategory := map[string]domain.VatRate{}
	for _, r := range rates {
		byCategory[r.Category] = r
		assert.NoError(t, r.Validate())
		assert.True(t, r.IsCurrent)
		assert.Equal(t, "Skatteetaten", r.Publisher)
	}

	standard := byCategory["general_goods_services"]
	assert.Equal(t, domain.RateStandard, standard.Kind)
	assert.InDelta(t, 25.0, standard.Percentage, 0.001)
	assert.Equal(t, "2025-01-01", standard.ValidFrom)

	food := byCategory["food_products"]
	assert.Equal(t, domain.RateReduced, food.Kind)
	assert.InDelta(t, 15.0, food.Percentage, 0.001)
	assert.Contains(t, food.Description, "næringsmidler")

	transport := byCategory["transport_entertainment"]
	assert.InDelta(t, 12.0, transport.Percentage, 0.001)

	zero := byCategory["exempt_goods_services"]
	assert.Equal(t, domain.RateZero, zero.Kind)
	assert.InDelta(t, 0.0, zero.Percentage, 0.001)
}

func TestParseRatesDecimalComma(t *testing.T) {
	page := `<html><body><table>
	<tr><td>Redusert sats for næringsmidler</td><td>11,11 %</td></tr>
	</table></body></html>`

	rates, err := New().ParseRates(testInput(page))
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.InDelta(t, 11.11, rates[0].Percentage, 0.001)
}

func TestParseRatesDeduplicates(t *testing.T) {
	page := `<html><body><table>
	<tr><td>Alminnelig sats</td><td>25 %</td></tr>
	<tr><td>Standard sats</td><td>25 %</td></tr>
	</table></body></html>`

	rates, err := New().ParseRates(testInput(page))
	require.NoError(t, err)
	assert.Len(t, rates, 1)
}

func TestParseRatesEmpty(t *testing.T) {
	_, err := New().ParseRates(testInput("<html><body><p>ingen satser</p></body></html>"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
