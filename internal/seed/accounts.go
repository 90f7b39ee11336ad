// Package seed generates the deterministic Silver records that are not
// scraped: the NS 4102 chart of accounts and the posting rules built on
// top of it. Every rule cites its legal sources.
package seed

import "github.com/kontolab/konto-ingest/internal/core/domain"

// Norwegian class labels per NS 4102.
const (
	classAssets     = "Eiendeler"
	classEquityDebt = "Egenkapital og gjeld"
	classIncome     = "Inntekter"
	classCosts      = "Kostnader"
	classFinancial  = "Finansposter"
)

// ChartOfAccounts returns the seeded NS 4102 account list. The set
// covers every account the business rules post to, across all eight
// account classes.
func ChartOfAccounts() []domain.ChartOfAccountsEntry {
	return []domain.ChartOfAccountsEntry{
		{
			AccountID: "1220", AccountLabel: "Maskiner og anlegg",
			AccountClass: "1", AccountClassLabel: classAssets,
			Description:   "Anleggsmidler: maskiner og produksjonsutstyr aktivert for avskrivning.",
			Type:          domain.AccountAsset, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Kjøp av produksjonsmaskin", "Aktivering av anleggsmiddel"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh},
		},
		{
			AccountID: "1240", AccountLabel: "Kontormaskiner og IT-utstyr",
			AccountClass: "1", AccountClassLabel: classAssets,
			Description:   "Anleggsmidler: datamaskiner, servere og kontormaskiner over aktiveringsgrensen.",
			Type:          domain.AccountAsset, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Kjøp av servere", "Bærbare datamaskiner over 15 000 kr"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh},
		},
		{
			AccountID: "1920", AccountLabel: "Bankinnskudd",
			AccountClass: "1", AccountClassLabel: classAssets,
			Description:   "Driftskonto i bank.",
			Type:          domain.AccountAsset, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples: []string{"Innbetaling fra kunde", "Utbetaling til leverandør"},
		},
		{
			AccountID: "2400", AccountLabel: "Leverandørgjeld",
			AccountClass: "2", AccountClassLabel: classEquityDebt,
			Description:   "Kortsiktig gjeld til leverandører for mottatte varer og tjenester.",
			Type:          domain.AccountLiability, NormalBalance: "credit",
			IsStandard: true, IsActive: true,
			Examples: []string{"Inngående faktura fra leverandør"},
		},
		{
			AccountID: "2700", AccountLabel: "Utgående merverdiavgift",
			AccountClass: "2", AccountClassLabel: classEquityDebt,
			Description:   "Skyldig merverdiavgift på omsetning, avregnes mot mva-oppgjøret.",
			Type:          domain.AccountLiability, NormalBalance: "credit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"MVA på varesalg", "MVA på tjenestesalg"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh, domain.VatMedium, domain.VatLow},
		},
		{
			AccountID: "3000", AccountLabel: "Salgsinntekt varer, avgiftspliktig",
			AccountClass: "3", AccountClassLabel: classIncome,
			Description:   "Inntekt fra salg av varer med full merverdiavgift.",
			Type:          domain.AccountIncome, NormalBalance: "credit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Salg av handelsvarer"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh},
		},
		{
			AccountID: "3100", AccountLabel: "Salgsinntekt tjenester, avgiftspliktig",
			AccountClass: "3", AccountClassLabel: classIncome,
			Description:   "Inntekt fra salg av tjenester med full merverdiavgift.",
			Type:          domain.AccountIncome, NormalBalance: "credit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Konsulenttjenester til kunde"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh},
		},
		{
			AccountID: "4000", AccountLabel: "Varekjøp",
			AccountClass: "4", AccountClassLabel: classCosts,
			Description:   "Innkjøp av varer for videresalg.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Innkjøp av handelsvarer"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh},
		},
		{
			AccountID: "5000", AccountLabel: "Lønn til ansatte",
			AccountClass: "5", AccountClassLabel: classCosts,
			Description:   "Brutto lønnskostnad. Lønn er utenfor merverdiavgiftsområdet.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Månedslønn", "Overtidsbetaling"},
			RelatedVatCodes: []domain.VatCode{domain.VatExempt},
		},
		{
			AccountID: "5400", AccountLabel: "Arbeidsgiveravgift",
			AccountClass: "5", AccountClassLabel: classCosts,
			Description:   "Arbeidsgiveravgift av lønn og andre avgiftspliktige ytelser.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"AGA av månedslønn"},
			RelatedVatCodes: []domain.VatCode{domain.VatExempt},
		},
		{
			AccountID: "6000", AccountLabel: "Leie lokaler",
			AccountClass: "6", AccountClassLabel: classCosts,
			Description:   "Husleie for kontor- og næringslokaler.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Månedlig kontorhusleie"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh},
		},
		{
			AccountID: "6100", AccountLabel: "Strøm og energi",
			AccountClass: "6", AccountClassLabel: classCosts,
			Description:   "Energikostnader for lokaler og drift.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Månedlig strømregning"},
			RelatedVatCodes: []domain.VatCode{domain.VatMedium, domain.VatHigh},
		},
		{
			AccountID: "6300", AccountLabel: "Reparasjon og vedlikehold",
			AccountClass: "6", AccountClassLabel: classCosts,
			Description:   "Reparasjon og vedlikehold av bygninger, maskiner og utstyr.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Reparasjon av produksjonsmaskin"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh},
		},
		{
			AccountID: "6340", AccountLabel: "Konsulenttjenester",
			AccountClass: "6", AccountClassLabel: classCosts,
			Description:   "Kjøp av konsulent- og rådgivningstjenester, også fra utlandet.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"IT-konsulent", "SaaS-abonnement fra EU"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh, domain.VatReverseCharge},
		},
		{
			AccountID: "6800", AccountLabel: "Kontorrekvisita",
			AccountClass: "6", AccountClassLabel: classCosts,
			Description:   "Kontormateriell og forbruksrekvisita.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Papir, penner, mapper"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh},
		},
		{
			AccountID: "6900", AccountLabel: "Telefon og internett",
			AccountClass: "6", AccountClassLabel: classCosts,
			Description:   "Telefonabonnement, mobil og bredbånd.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Mobilabonnement", "Bredbånd til kontoret"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh},
		},
		{
			AccountID: "7000", AccountLabel: "Reisekostnad, transport",
			AccountClass: "7", AccountClassLabel: classCosts,
			Description:   "Persontransport på tjenestereise: tog, buss og fly.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Togbillett Oslo-Bergen", "Flybillett innenlands"},
			RelatedVatCodes: []domain.VatCode{domain.VatLow},
		},
		{
			AccountID: "7140", AccountLabel: "Reisekostnad, overnatting",
			AccountClass: "7", AccountClassLabel: classCosts,
			Description:   "Hotellovernatting på tjenestereise. Redusert sats for romleie.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Hotellrom på forretningsreise"},
			RelatedVatCodes: []domain.VatCode{domain.VatLow},
		},
		{
			AccountID: "7160", AccountLabel: "Reisekostnad, kost",
			AccountClass: "7", AccountClassLabel: classCosts,
			Description:   "Mat og drikke under tjenestereise. Næringsmiddelsats for matvarer.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Restaurant under forretningsreise"},
			RelatedVatCodes: []domain.VatCode{domain.VatMedium},
		},
		{
			AccountID: "7320", AccountLabel: "Drivstoff transportmidler",
			AccountClass: "7", AccountClassLabel: classCosts,
			Description:   "Bensin og diesel til firmabiler.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Diesel til firmabil"},
			RelatedVatCodes: []domain.VatCode{domain.VatHigh},
		},
		{
			AccountID: "8050", AccountLabel: "Renteinntekt",
			AccountClass: "8", AccountClassLabel: classFinancial,
			Description:   "Renteinntekter fra bankinnskudd og fordringer. Utenfor mva-området.",
			Type:          domain.AccountIncome, NormalBalance: "credit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Renter på driftskonto"},
			RelatedVatCodes: []domain.VatCode{domain.VatExempt},
		},
		{
			AccountID: "8150", AccountLabel: "Rentekostnad",
			AccountClass: "8", AccountClassLabel: classFinancial,
			Description:   "Rentekostnader på lån og kreditter. Utenfor mva-området.",
			Type:          domain.AccountExpense, NormalBalance: "debit",
			IsStandard: true, IsActive: true,
			Examples:        []string{"Renter på banklån"},
			RelatedVatCodes: []domain.VatCode{domain.VatExempt},
		},
	}
}
