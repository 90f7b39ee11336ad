package exporters

import (
	"fmt"
	"math"
	"strconv"
)

// System prompts shared by the exporters. Samples are Norwegian
// throughout, matching the nb-NO locale stamped in metadata.
const (
	promptTaxGlossary = "Du er en norsk regnskapsassistent med ekspertise innen " +
		"skatt og merverdiavgift. Svar kort og presist med kildehenvisninger."

	promptAccountingGlossary = "Du er en norsk regnskapsassistent med ekspertise innen " +
		"regnskap og bokføring. Svar kort og presist med kildehenvisninger."

	promptPostingProposal = "Du er Konto AI, en regnskapsassistent for norske bedrifter. " +
		"Du hjelper med å kontere transaksjoner korrekt med riktig konto, " +
		"MVA-kode og beregning av merverdiavgift."

	promptConversation = "Du er Konto AI, en hjelpsom regnskapsassistent for norske bedrifter. " +
		"Du hjelper med kontering, MVA-spørsmål, og regnskapsføring."
)

// CalculateVAT splits an amount including VAT into the net amount and
// the VAT portion, both rounded to two decimals. The rate is a
// percentage (25.0 for the general Norwegian rate).
func CalculateVAT(amountInclVAT, vatRate float64) (amountExVAT, vatAmount float64) {
	amountExVAT = round2(amountInclVAT / (1 + vatRate/100))
	vatAmount = round2(amountInclVAT - amountInclVAT/(1+vatRate/100))
	return amountExVAT, vatAmount
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatKroner renders a money value with two decimals, as shown in
// posting proposals ("1304.35").
func formatKroner(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatRate renders a VAT rate without trailing zeros ("25", "11.11").
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPostingProposal renders the assistant answer for a posting
// proposal: account, VAT code and rate, and the VAT breakdown, followed
// by a citation line.
func FormatPostingProposal(account, accountLabel, vatCode string, vatRate, amountInclVAT float64, citation string) string {
	amountExVAT, vatAmount := CalculateVAT(amountInclVAT, vatRate)

	return fmt.Sprintf(`Kontering:
- Konto: %s (%s)
- MVA-kode: %s
- MVA-sats: %s%%
- Beløp eksl. MVA: %s kr
- MVA-beløp: %s kr
- Totalt: %s kr

[%s]`,
		account, accountLabel, vatCode, formatRate(vatRate),
		formatKroner(amountExVAT), formatKroner(vatAmount), formatKroner(amountInclVAT),
		citation)
}
