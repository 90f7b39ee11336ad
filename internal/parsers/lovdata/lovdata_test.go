package lovdata

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
)

const lovdataHTML = `<html><body>
<div id="kapittel-1" data-tittel="Kapittel 1">
  <div class="paragraf" id="PARAGRAF_1-1">
    <h3>§ 1-1. Saklig virkeområde</h3>
    <p>Denne loven gjelder merverdiavgift. Merverdiavgift er en avgift til staten
    som skal beregnes ved omsetning, uttak og innførsel av varer og tjenester.</p>
  </div>
  <div class="paragraf" id="PARAGRAF_1-2">
    <h3>§ 1-2. Geografisk virkeområde</h3>
    <p>Denne loven får anvendelse i merverdiavgiftsområdet. Med merverdiavgiftsområdet
    menes det norske fastlandet og alt område innenfor territorialgrensen.</p>
  </div>
</div>
<div class="paragraf" id="tom"><h3>Tom</h3></div>
</body></html>`

func testInput(content string) driven.ParseInput {
	return driven.ParseInput{
		Source: domain.Source{
			ID:           "mva_law_2009",
			Title:        "Merverdiavgiftsloven",
			URL:          "https://lovdata.no/dokument/NL/lov/2009-06-19-58",
			Domain:       domain.DomainTax,
			Type:         domain.SourceTypeLaw,
			Publisher:    "Lovdata",
			Version:      "current",
			Jurisdiction: "NO",
		},
		Content: []byte(content),
		SHA256:  "abc123",
	}
}

func TestParseSections(t *testing.T) {
	sections, err := New().ParseSections(testInput(lovdataHTML))
	require.NoError(t, err)
	require.Len(t, sections, 2)

	first := sections[0]
	assert.Equal(t, "mva_law_2009", first.LawID)
	assert.Equal(t, "PARAGRAF_1-1", first.SectionID)
	assert.Equal(t, "§ 1-1", first.SectionLabel)
	assert.Equal(t, "Kapittel 1 § 1-1", first.Path)
	assert.Contains(t, first.Heading, "Saklig virkeområde")
	assert.Contains(t, first.TextPlain, "avgift til staten")
	assert.Equal(t, "abc123", first.SHA256)
	assert.Equal(t, "Lovdata", first.Publisher)
	assert.NoError(t, first.Validate())

	// The heading-only div is dropped.
	for _, s := range sections {
		assert.NotEqual(t, "Tom", s.Heading)
	}
}

func TestParseSectionsPlainTextFallback(t *testing.T) {
	flat := `<html><body><main>
	§ 2-1 Registreringsplikt. Næringsdrivende skal registreres i Merverdiavgiftsregisteret
	når omsetning har oversteget 50 000 kroner i en periode på tolv måneder.
	§ 2-2 Én registreringsenhet. Flere virksomheter som drives av samme eier skal
	registreres som ett avgiftssubjekt i registeret.
	</main></body></html>`

	sections, err := New().ParseSections(testInput(flat))
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "PARAGRAF_2-1", sections[0].SectionID)
	assert.Equal(t, "Kapittel 2 § 2-2", sections[1].Path)
	assert.Contains(t, sections[0].TextPlain, "50 000 kroner")
}

func TestParseSectionsEmptyDocument(t *testing.T) {
	_, err := New().ParseSections(testInput("<html><body><p>ingen paragrafer</p></body></html>"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseSectionsKeepsHeadingsValidUTF8(t *testing.T) {
	// A heading over 100 bytes whose 100th byte lands inside a
	// two-byte Norwegian letter.
	long := "§ 4-1. x" + strings.Repeat("æøå", 40)
	page := `<html><body>
	<div class="paragraf" id="PARAGRAF_4-1">
	  <h3>` + long + `</h3>
	  <p>Med kapitalvarer menes maskiner, inventar og andre driftsmidler der
	  inngående merverdiavgift utgjør minst 50 000 kroner.</p>
	</div>
	</body></html>`

	sections, err := New().ParseSections(testInput(page))
	require.NoError(t, err)
	require.Len(t, sections, 1)

	heading := sections[0].Heading
	assert.True(t, utf8.ValidString(heading), "heading %q", heading)
	assert.LessOrEqual(t, len(heading), maxHeadingBytes)
}

func TestTruncateHeading(t *testing.T) {
	short := "§ 1-1. Saklig virkeområde"
	assert.Equal(t, short, truncateHeading(short))

	long := strings.Repeat("ø", 60)
	got := truncateHeading(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 100, len(got))
}
