package seed

import (
	"time"

	"github.com/kontolab/konto-ingest/internal/core/domain"
)

func equalsCond(field, value string) domain.RuleCondition {
	return domain.RuleCondition{Field: field, Operator: domain.OpEquals, Value: value}
}

func expenseRule(id, name, description, account string, vat domain.VatCode, rate float64, extraConds []domain.RuleCondition, sourceIDs, citations []string) domain.BusinessRule {
	conds := append([]domain.RuleCondition{equalsCond("transaction_type", "expense")}, extraConds...)
	return domain.BusinessRule{
		RuleID:      id,
		RuleName:    name,
		Description: description,
		Category:    "expense",
		Domain:      "tax",
		Priority:    10,
		IsActive:    true,
		Conditions:  conds,
		Actions: []domain.RuleAction{
			{Type: domain.ActionSetAccount, Value: account},
			{Type: domain.ActionSetVatCode, Value: string(vat)},
			{Type: domain.ActionSetVatRate, Value: rate},
		},
		SourceIDs:    sourceIDs,
		Citations:    citations,
		ValidFrom:    "2024-01-01",
		Jurisdiction: "NO",
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

// BusinessRules returns the seeded posting rules. Each rule maps a
// transaction pattern to an NS 4102 account, a VAT code and a rate,
// and cites the law sections it rests on.
func BusinessRules() []domain.BusinessRule {
	now := time.Now().UTC().Format(time.RFC3339)

	rules := []domain.BusinessRule{
		expenseRule(
			"expense_hotel_no_001", "Hotellovernatting Norge",
			"Reisekostnad for hotellovernatting i Norge med redusert MVA-sats 12 %",
			"7140", domain.VatLow, 12.0,
			[]domain.RuleCondition{equalsCond("category", "hotel"), equalsCond("country", "NO")},
			[]string{"mva_law_2009", "skatteetaten_mva_rates"},
			[]string{
				"Merverdiavgiftsloven § 5-5: Redusert sats for romutleie",
				"Skatteetaten satser: 12 % MVA for hotellrom",
			},
		),
		expenseRule(
			"expense_food_travel_001", "Måltid på reise",
			"Kostnad for mat under tjenestereise med MVA-sats 15 %",
			"7160", domain.VatMedium, 15.0,
			[]domain.RuleCondition{equalsCond("category", "food"), equalsCond("context", "travel")},
			[]string{"mva_law_2009", "skatteetaten_mva_rates"},
			[]string{
				"Merverdiavgiftsloven § 5-2: Redusert sats for næringsmidler",
				"Skatteetaten satser: 15 % MVA for mat og drikkevarer",
			},
		),
		expenseRule(
			"expense_transport_public_001", "Offentlig transport",
			"Reise med tog, buss eller fly med redusert MVA-sats 12 %",
			"7000", domain.VatLow, 12.0,
			[]domain.RuleCondition{{Field: "category", Operator: domain.OpIn, Value: []string{"train", "bus", "flight"}}},
			[]string{"mva_law_2009", "skatteetaten_mva_rates"},
			[]string{"Merverdiavgiftsloven § 5-3: Redusert sats for persontransport"},
		),
		expenseRule(
			"expense_rent_office_001", "Kontorhusleie",
			"Husleie for kontorlokaler med full MVA-sats 25 %",
			"6000", domain.VatHigh, 25.0,
			[]domain.RuleCondition{equalsCond("category", "rent"), equalsCond("subcategory", "office")},
			[]string{"mva_law_2009", "bokforingsloven_2004"},
			[]string{"Merverdiavgiftsloven § 4-1: Utleie av fast eiendom"},
		),
		expenseRule(
			"expense_electricity_001", "Strøm",
			"Strømkostnader med redusert MVA-sats 15 % ved visse vilkår",
			"6100", domain.VatMedium, 15.0,
			[]domain.RuleCondition{equalsCond("category", "electricity")},
			[]string{"mva_law_2009", "skatteetaten_mva_rates"},
			[]string{"Skatteetaten satser: redusert sats for kraft i Nord-Norge"},
		),
		expenseRule(
			"expense_maintenance_001", "Reparasjon og vedlikehold",
			"Reparasjon og vedlikehold av bygg og utstyr med full MVA-sats",
			"6300", domain.VatHigh, 25.0,
			[]domain.RuleCondition{{Field: "category", Operator: domain.OpIn, Value: []string{"repair", "maintenance"}}},
			[]string{"mva_law_2009"},
			[]string{"Merverdiavgiftsloven § 3-1: Omsetning av tjenester"},
		),
		expenseRule(
			"expense_consulting_001", "Konsulenttjenester",
			"Kjøp av konsulenttjenester med full MVA-sats 25 %",
			"6340", domain.VatHigh, 25.0,
			[]domain.RuleCondition{equalsCond("category", "consulting")},
			[]string{"mva_law_2009"},
			[]string{"Merverdiavgiftsloven § 3-1: Omsetning av tjenester"},
		),
		expenseRule(
			"expense_office_supplies_001", "Kontorrekvisita",
			"Kontormateriell og rekvisita med full MVA-sats 25 %",
			"6800", domain.VatHigh, 25.0,
			[]domain.RuleCondition{equalsCond("category", "office_supplies")},
			[]string{"mva_law_2009"},
			[]string{"Merverdiavgiftsloven § 3-1: Omsetning av varer"},
		),
		expenseRule(
			"expense_telecom_001", "Telefon og internett",
			"Telefonabonnement og internett med full MVA-sats 25 %",
			"6900", domain.VatHigh, 25.0,
			[]domain.RuleCondition{{Field: "category", Operator: domain.OpIn, Value: []string{"telecom", "internet", "phone"}}},
			[]string{"mva_law_2009"},
			[]string{"Merverdiavgiftsloven § 3-1: Omsetning av tjenester"},
		),
		expenseRule(
			"expense_fuel_001", "Drivstoff",
			"Drivstoff til firmabil med full MVA-sats 25 %",
			"7320", domain.VatHigh, 25.0,
			[]domain.RuleCondition{equalsCond("category", "fuel")},
			[]string{"mva_law_2009"},
			[]string{"Merverdiavgiftsloven § 3-1: Omsetning av varer"},
		),
		expenseRule(
			"expense_goods_purchase_001", "Varekjøp",
			"Kjøp av varer til videresalg med full MVA-sats 25 %",
			"4000", domain.VatHigh, 25.0,
			[]domain.RuleCondition{equalsCond("category", "goods_purchase")},
			[]string{"mva_law_2009", "bokforingsloven_2004"},
			[]string{"Merverdiavgiftsloven § 8-1: Fradragsrett for inngående avgift"},
		),
	}

	// Income, payroll, accounting and reverse-charge rules have shapes
	// the expense helper does not cover.
	rules = append(rules,
		domain.BusinessRule{
			RuleID:      "income_product_sales_001",
			RuleName:    "Varesalg",
			Description: "Inntekt fra salg av varer med full MVA-sats 25 %",
			Category:    "income",
			Domain:      "tax",
			Priority:    10,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("transaction_type", "income"),
				equalsCond("category", "product_sales"),
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "3000"},
				{Type: domain.ActionSetVatCode, Value: string(domain.VatHigh)},
				{Type: domain.ActionSetVatRate, Value: 25.0},
				{Type: domain.ActionSetVatAccount, Value: "2700"},
			},
			SourceIDs: []string{"mva_law_2009", "regnskapsloven_1998"},
			Citations: []string{"Merverdiavgiftsloven § 3-1: Omsetning av varer"},
			Examples: []domain.RuleExample{{
				Description: "Salg av produkter til kunde",
				Input:       map[string]any{"amount": 10000, "category": "product_sales"},
				Output:      map[string]any{"account": "3000", "vat_code": "HIGH", "vat_rate": 25.0, "vat_account": "2700"},
			}},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
		domain.BusinessRule{
			RuleID:      "income_service_sales_001",
			RuleName:    "Tjenestesalg",
			Description: "Inntekt fra salg av tjenester med full MVA-sats 25 %",
			Category:    "income",
			Domain:      "tax",
			Priority:    10,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("transaction_type", "income"),
				equalsCond("category", "service_sales"),
				equalsCond("country", "NO"),
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "3100"},
				{Type: domain.ActionSetVatCode, Value: string(domain.VatHigh)},
				{Type: domain.ActionSetVatRate, Value: 25.0},
				{Type: domain.ActionSetVatAccount, Value: "2700"},
			},
			SourceIDs:    []string{"mva_law_2009", "regnskapsloven_1998"},
			Citations:    []string{"Merverdiavgiftsloven § 3-1: Omsetning av tjenester"},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
		domain.BusinessRule{
			RuleID:      "income_interest_001",
			RuleName:    "Renteinntekt",
			Description: "Renteinntekter fra bank uten MVA",
			Category:    "income",
			Domain:      "tax",
			Priority:    10,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("transaction_type", "income"),
				equalsCond("category", "interest"),
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "8050"},
				{Type: domain.ActionSetVatCode, Value: string(domain.VatExempt)},
				{Type: domain.ActionSetVatRate, Value: 0.0},
			},
			SourceIDs:    []string{"mva_law_2009"},
			Citations:    []string{"Merverdiavgiftsloven § 3-6: Unntak for finansielle tjenester"},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
		domain.BusinessRule{
			RuleID:      "expense_interest_001",
			RuleName:    "Rentekostnad",
			Description: "Rentekostnader på lån uten MVA",
			Category:    "expense",
			Domain:      "tax",
			Priority:    10,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("transaction_type", "expense"),
				equalsCond("category", "interest"),
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "8150"},
				{Type: domain.ActionSetVatCode, Value: string(domain.VatExempt)},
				{Type: domain.ActionSetVatRate, Value: 0.0},
			},
			SourceIDs:    []string{"mva_law_2009"},
			Citations:    []string{"Merverdiavgiftsloven § 3-6: Unntak for finansielle tjenester"},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
		domain.BusinessRule{
			RuleID:      "expense_salary_001",
			RuleName:    "Lønnskostnad",
			Description: "Lønn til ansatte, utenfor merverdiavgiftsområdet",
			Category:    "expense",
			Domain:      "payroll",
			Priority:    10,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("transaction_type", "expense"),
				equalsCond("category", "salary"),
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "5000"},
				{Type: domain.ActionSetVatCode, Value: string(domain.VatExempt)},
				{Type: domain.ActionSetVatRate, Value: 0.0},
			},
			SourceIDs:    []string{"mva_law_2009", "amelding_guidance"},
			Citations:    []string{"Lønn er ikke omsetning etter merverdiavgiftsloven § 1-3"},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
		domain.BusinessRule{
			RuleID:      "expense_employer_tax_001",
			RuleName:    "Arbeidsgiveravgift",
			Description: "Arbeidsgiveravgift av lønn, utenfor merverdiavgiftsområdet",
			Category:    "expense",
			Domain:      "payroll",
			Priority:    10,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("transaction_type", "expense"),
				equalsCond("category", "employer_tax"),
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "5400"},
				{Type: domain.ActionSetVatCode, Value: string(domain.VatExempt)},
				{Type: domain.ActionSetVatRate, Value: 0.0},
			},
			SourceIDs:    []string{"amelding_guidance"},
			Citations:    []string{"A-meldingen: arbeidsgiveravgift beregnes av avgiftspliktige ytelser"},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
		domain.BusinessRule{
			RuleID:      "expense_eu_service_reverse_001",
			RuleName:    "EU-tjeneste omvendt avgiftsplikt",
			Description: "Kjøp av fjernleverbare tjenester fra utlandet med omvendt avgiftsplikt",
			Category:    "vat_calculation",
			Domain:      "tax",
			Priority:    5,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("transaction_type", "expense"),
				equalsCond("category", "service"),
				{Field: "country", Operator: domain.OpIn, Value: []string{"EU"}},
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "6340"},
				{Type: domain.ActionSetVatCode, Value: string(domain.VatReverseCharge)},
				{Type: domain.ActionSetVatRate, Value: 25.0},
				{Type: domain.ActionSetPostingType, Value: "reverse_charge_eu"},
			},
			SourceIDs: []string{"mva_law_2009"},
			Citations: []string{
				"Merverdiavgiftsloven § 3-30: Omvendt avgiftsplikt",
				"Merverdiavgiftsloven § 11-3: Beregning ved kjøp fra utlandet",
			},
			Examples: []domain.RuleExample{{
				Description: "SaaS-abonnement fra EU-leverandør",
				Input:       map[string]any{"amount": 5000, "category": "service", "country": "EU"},
				Output:      map[string]any{"account": "6340", "vat_code": "REVERSE_CHARGE", "vat_rate": 25.0, "posting_type": "reverse_charge_eu"},
			}},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
		domain.BusinessRule{
			RuleID:      "asset_machinery_001",
			RuleName:    "Maskiner og utstyr",
			Description: "Kjøp av maskiner over aktiveringsgrensen føres som anleggsmiddel",
			Category:    "asset",
			Domain:      "accounting",
			Priority:    10,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("transaction_type", "expense"),
				{Field: "category", Operator: domain.OpIn, Value: []string{"machinery", "equipment"}},
				{Field: "amount", Operator: domain.OpGreaterThan, Value: 15000},
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "1220"},
				{Type: domain.ActionSetVatCode, Value: string(domain.VatHigh)},
				{Type: domain.ActionSetVatRate, Value: 25.0},
			},
			SourceIDs:    []string{"regnskapsloven_1998", "saft_v1_3_spec"},
			Citations:    []string{"Regnskapsloven § 5-3: Anleggsmidler vurderes til anskaffelseskost"},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
		domain.BusinessRule{
			RuleID:      "asset_it_equipment_001",
			RuleName:    "IT-utstyr",
			Description: "Kjøp av IT-utstyr over aktiveringsgrensen føres som anleggsmiddel",
			Category:    "asset",
			Domain:      "accounting",
			Priority:    10,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("transaction_type", "expense"),
				equalsCond("category", "it_equipment"),
				{Field: "amount", Operator: domain.OpGreaterThan, Value: 15000},
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "1240"},
				{Type: domain.ActionSetVatCode, Value: string(domain.VatHigh)},
				{Type: domain.ActionSetVatRate, Value: 25.0},
			},
			SourceIDs:    []string{"regnskapsloven_1998", "saft_v1_3_spec"},
			Citations:    []string{"Regnskapsloven § 5-3: Anleggsmidler vurderes til anskaffelseskost"},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
		domain.BusinessRule{
			RuleID:      "liability_supplier_001",
			RuleName:    "Leverandørgjeld",
			Description: "Inngående faktura krediteres leverandørgjeld",
			Category:    "liability",
			Domain:      "accounting",
			Priority:    20,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("transaction_type", "expense"),
				equalsCond("payment_status", "unpaid"),
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "2400"},
				{Type: domain.ActionSetPostingType, Value: "credit_side"},
			},
			SourceIDs:    []string{"bokforingsloven_2004", "saft_v1_3_spec"},
			Citations:    []string{"Bokføringsloven § 4: Fullstendighet og realitet"},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
		domain.BusinessRule{
			RuleID:      "asset_bank_main_001",
			RuleName:    "Bankinnskudd",
			Description: "Betaling fra driftskonto krediteres bank",
			Category:    "asset",
			Domain:      "accounting",
			Priority:    20,
			IsActive:    true,
			Conditions: []domain.RuleCondition{
				equalsCond("payment_method", "bank_transfer"),
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSetAccount, Value: "1920"},
				{Type: domain.ActionSetPostingType, Value: "credit_side"},
			},
			SourceIDs:    []string{"bokforingsloven_2004"},
			Citations:    []string{"Bokføringsloven § 7: Dokumentasjon av bokførte opplysninger"},
			ValidFrom:    "2024-01-01",
			Jurisdiction: "NO",
			CreatedAt:    now,
		},
	)

	// Hotel and food rules carry worked examples used by the exporters.
	rules[0].Examples = []domain.RuleExample{{
		Description: "Hotellovernatting på forretningsreise",
		Input:       map[string]any{"amount": 1200, "category": "hotel", "country": "NO"},
		Output:      map[string]any{"account": "7140", "vat_code": "LOW", "vat_rate": 12.0},
	}}
	rules[1].Examples = []domain.RuleExample{{
		Description: "Restaurant under forretningsreise",
		Input:       map[string]any{"amount": 250, "category": "food", "context": "travel"},
		Output:      map[string]any{"account": "7160", "vat_code": "MEDIUM", "vat_rate": 15.0},
	}}

	return rules
}
