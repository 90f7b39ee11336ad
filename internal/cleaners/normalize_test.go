package cleaners

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kontolab/konto-ingest/internal/core/domain"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "en setning", Normalize("  en \t\n setning  "))
	assert.Equal(t, "a b", Normalize("a  b"))
	// Mojibake repair keeps Norwegian letters intact.
	assert.Equal(t, "merverdiavgift på næring", Normalize("merverdiavgift pÃ¥ nÃ¦ring"))
	assert.Equal(t, "særavgift", Normalize("særavgift"))
}

func TestCleanLegalText(t *testing.T) {
	raw := "Avgiftsplikten omfatter varer og tjenester. 🔗 Del paragraf"
	assert.Equal(t, "Avgiftsplikten omfatter varer og tjenester.", CleanLegalText(raw))

	raw = "Registreringsplikt inntrer ved 50 000 kroner. [1] Endret ved lov 2021"
	assert.Equal(t, "Registreringsplikt inntrer ved 50 000 kroner.", CleanLegalText(raw))

	raw = "[Til toppen] Omsetning av næringsmidler."
	assert.Equal(t, "Omsetning av næringsmidler.", CleanLegalText(raw))
}

func TestExtractCitations(t *testing.T) {
	text := "Se § 8-1 og § 9-2, jf. lov-2009-06-19-58 og Merverdiavgiftsloven."
	cites := ExtractCitations(text)
	assert.Contains(t, cites, "§ 8-1")
	assert.Contains(t, cites, "§ 9-2")
	assert.Contains(t, cites, "lov-2009-06-19-58")

	assert.Empty(t, ExtractCitations("ingen henvisninger her"))
}

func TestEnrich(t *testing.T) {
	section := domain.LawSection{
		LawID:        "mva_law_2009",
		SectionID:    "PARAGRAF_3-1",
		SectionLabel: "§ 3-1",
		Path:         "Kapittel 3 § 3-1",
		Heading:      "  Omsetning  av varer og tjenester ",
		TextPlain:    "Det skal beregnes merverdiavgift ved omsetning av varer og tjenester, jf. § 1-1. 🔗 Del paragraf",
	}
	Enrich(&section)

	assert.Equal(t, "Omsetning av varer og tjenester", section.Heading)
	assert.Equal(t, "3", section.ChapterNo)
	assert.Equal(t, "1", section.SectionNo)
	assert.NotContains(t, section.TextPlain, "🔗")
	assert.True(t, section.HasCitations)
	assert.Equal(t, len(section.TextPlain), section.TextLength)
	assert.Greater(t, section.WordCount, 5)
}

func TestCheckSection(t *testing.T) {
	good := domain.LawSection{
		LawID:     "mva_law_2009",
		SectionID: "PARAGRAF_3-1",
		TextPlain: "Det skal beregnes merverdiavgift ved omsetning av varer og tjenester i hele landet.",
		WordCount: 13,
		Provenance: domain.Provenance{
			SourceURL: "https://lovdata.no/dokument/NL/lov/2009-06-19-58",
			Domain:    "tax",
		},
	}
	ok, issues := CheckSection(good)
	assert.True(t, ok, "issues: %v", issues)

	short := good
	short.TextPlain = "for kort"
	ok, issues = CheckSection(short)
	assert.False(t, ok)
	assert.NotEmpty(t, issues)

	dirty := good
	dirty.TextPlain = dirty.TextPlain + " 🔗 Del paragraf og noe mer tekst som gjør den lang nok."
	ok, issues = CheckSection(dirty)
	assert.False(t, ok)
	assert.Contains(t, issues, "contains navigation artifacts")
}
