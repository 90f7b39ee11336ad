package exporters

// ConversationTemplate defines a multi-turn conversation pattern.
// Placeholders like {category} are substituted with values drawn from
// business rules at generation time.
type ConversationTemplate struct {
	ID     string
	System string
	Turns  []TemplateTurn
	// MultiItem templates draw on two rules instead of one.
	MultiItem bool
}

// TemplateTurn is one user/assistant exchange in a template.
type TemplateTurn struct {
	User      string
	Assistant string
}

// Templates returns the conversation patterns used for synthetic
// training data: expense entry with clarification, VAT rate questions,
// account selection help, terse posting requests, correction flows and
// multi-line receipts.
func Templates() []ConversationTemplate {
	return []ConversationTemplate{
		{
			ID:     "expense_entry",
			System: promptConversation,
			Turns: []TemplateTurn{
				{
					User: "Jeg har en {category} på {amount} kr. Hvordan konterer jeg den?",
					Assistant: "For å kontere {category_label} riktig, trenger jeg litt mer informasjon:\n" +
						"- Er dette for en forretningsreise eller privat bruk?\n" +
						"- Er leverandøren norsk eller utenlandsk?",
				},
				{
					User: "Det er {context}",
					Assistant: "Takk! Da konteres det slik:\n" +
						"- Konto: {account} ({account_label})\n" +
						"- MVA-kode: {vat_code}\n" +
						"- MVA-sats: {vat_rate}%\n" +
						"- Beløp eksl. MVA: {amount_ex_vat} kr\n" +
						"- MVA-beløp: {vat_amount} kr\n\n" +
						"{explanation}. Er det noe annet jeg kan hjelpe med?",
				},
			},
		},
		{
			ID:     "vat_question",
			System: promptConversation,
			Turns: []TemplateTurn{
				{
					User: "Hvilken MVA-sats gjelder for {category}?",
					Assistant: "For {category_label} gjelder {vat_rate}% MVA.\n\n" +
						"{explanation} Hvis du har en {category} på {example_amount} kr inkl. MVA, " +
						"blir det {example_ex_vat} kr eksl. MVA og {example_vat} kr i MVA.",
				},
			},
		},
		{
			ID:     "account_help",
			System: promptConversation,
			Turns: []TemplateTurn{
				{
					User: "Jeg er usikker på hvilken konto jeg skal bruke for {category}. Hva anbefaler du?",
					Assistant: "For {category_label} anbefaler jeg konto {account} ({account_label}).\n\n" +
						"Denne kontoen brukes for {explanation}. Eksempler: {examples}.",
				},
				{
					User: "Takk! Og hva med MVA?",
					Assistant: "For {category_label} skal du bruke MVA-kode {vat_code} med sats {vat_rate}%.\n\n" +
						"Dette betyr at hvis kjøpet er på {example_amount} kr inkl. MVA, " +
						"skal du føre {example_ex_vat} kr på konto {account} og {example_vat} kr på MVA-konto.",
				},
			},
		},
		{
			ID:     "quick_posting",
			System: promptConversation,
			Turns: []TemplateTurn{
				{
					User: "{category} {amount} kr, norsk leverandør",
					Assistant: "Kontering:\n" +
						"- Konto: {account} ({account_label})\n" +
						"- MVA: {vat_code} ({vat_rate}%)\n" +
						"- Beløp eksl. MVA: {amount_ex_vat} kr\n" +
						"- MVA: {vat_amount} kr",
				},
			},
		},
		{
			ID:     "correction",
			System: promptConversation,
			Turns: []TemplateTurn{
				{
					User: "Jeg konterte {category} på konto {wrong_account}. Er det riktig?",
					Assistant: "Nei, det er ikke helt riktig. For {category_label} skal du bruke " +
						"konto {correct_account} ({account_label}), ikke {wrong_account}.\n\n" +
						"{explanation}",
				},
				{
					User: "Hvordan retter jeg dette?",
					Assistant: "For å rette dette må du:\n" +
						"1. Reversere posteringen på konto {wrong_account}\n" +
						"2. Føre riktig beløp på konto {correct_account} ({account_label})\n" +
						"3. Sjekk at MVA-koden er {vat_code} ({vat_rate}%)\n\n" +
						"Beløpet skal være {amount_ex_vat} kr eksl. MVA.",
				},
			},
		},
		{
			ID:        "multi_item",
			System:    promptConversation,
			MultiItem: true,
			Turns: []TemplateTurn{
				{
					User: "Jeg har en kvittering med flere linjer:\n" +
						"- {category1} {amount1} kr\n" +
						"- {category2} {amount2} kr\n" +
						"Hvordan konterer jeg dette?",
					Assistant: "Du må kontere hver linje separat:\n\n" +
						"Linje 1 - {category1_label}:\n" +
						"- Konto: {account1} ({account1_label})\n" +
						"- MVA: {vat_code1} ({vat_rate1}%)\n" +
						"- Beløp eksl. MVA: {amount1_ex_vat} kr\n\n" +
						"Linje 2 - {category2_label}:\n" +
						"- Konto: {account2} ({account2_label})\n" +
						"- MVA: {vat_code2} ({vat_rate2}%)\n" +
						"- Beløp eksl. MVA: {amount2_ex_vat} kr",
				},
			},
		},
	}
}

// categoryVariations maps expense categories to natural Norwegian
// phrasings of them.
var categoryVariations = map[string][]string{
	"hotel":     {"hotellovernatting", "hotell", "overnatting", "hotellrom"},
	"food":      {"måltid", "restaurant", "lunsj", "middag", "mat"},
	"office":    {"kontorrekvisita", "kontormateriale", "skrivesaker", "kontorforsyninger"},
	"transport": {"transport", "drivstoff", "bensin", "taxi", "bompenger"},
	"equipment": {"utstyr", "datautstyr", "verktøy", "maskiner"},
}

// categoryLabels maps categories to the label used in answers.
var categoryLabels = map[string]string{
	"hotel":     "hotellovernatting",
	"food":      "måltid",
	"office":    "kontorrekvisita",
	"transport": "transport",
	"equipment": "utstyr",
}

// contextVariations are user answers to the clarification question in
// the expense entry template.
var contextVariations = []string{
	"en norsk forretningsreise",
	"forretningsrelatert",
	"en forretningsutgift",
	"en vanlig forretningskjøp",
	"fra en norsk leverandør",
}
