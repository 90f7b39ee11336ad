// Package rates parses Skatteetaten VAT rate pages into structured
// rate records.
package rates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/logger"
	"github.com/kontolab/konto-ingest/internal/parsers/htmlx"
)

var _ driven.RateParser = (*Parser)(nil)

var (
	percentRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)
	dateRe    = regexp.MustCompile(`\b(\d{2})\.(\d{2})\.(\d{4})\b`)
)

// Parser extracts VAT rates from Skatteetaten rate tables, with a
// text-scan fallback for rates mentioned outside tables.
type Parser struct{}

// New creates a VAT rate parser.
func New() *Parser {
	return &Parser{}
}

// ParseRates extracts every VAT rate mentioned in the document,
// deduplicated by kind and percentage.
func (p *Parser) ParseRates(in driven.ParseInput) ([]domain.VatRate, error) {
	root, err := htmlx.Parse(in.Content)
	if err != nil {
		return nil, err
	}

	content := htmlx.Find(root, htmlx.ByTag("main"))
	if content == nil {
		content = htmlx.Find(root, htmlx.AnyOf(htmlx.ByClass("content"), htmlx.ByClass("main")))
	}
	if content == nil {
		content = root
	}

	var rates []domain.VatRate
	for _, table := range htmlx.FindAll(content, htmlx.ByTag("table")) {
		for _, row := range htmlx.TableRows(table) {
			if rate, ok := fromRow(row, in); ok {
				rates = append(rates, rate)
			}
		}
	}

	// Rates mentioned in prose outside any table.
	for _, node := range htmlx.FindAll(content, htmlx.AnyOf(htmlx.ByClass("sats"), htmlx.ByClass("rate"))) {
		if rate, ok := fromText(htmlx.Text(node), in); ok {
			rates = append(rates, rate)
		}
	}

	rates = dedupe(rates)
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no rates in %s", domain.ErrInvalidInput, in.Source.ID)
	}

	logger.Debug("parsed %d rates from %s", len(rates), in.Source.ID)
	return rates, nil
}

func fromRow(cols []string, in driven.ParseInput) (domain.VatRate, bool) {
	if len(cols) < 2 {
		return domain.VatRate{}, false
	}

	// Header rows carry no percentage and fall out here.
	percentage, col, ok := findPercentage(cols)
	if !ok {
		return domain.VatRate{}, false
	}

	var context string
	if col == 0 {
		context = strings.Join(cols[1:], " ")
	} else {
		context = cols[0]
	}

	rate := build(percentage, context, in)
	rate.ValidFrom, rate.ValidTo = validityDates(cols)
	return rate, true
}

func fromText(text string, in driven.ParseInput) (domain.VatRate, bool) {
	m := percentRe.FindStringSubmatch(text)
	if m == nil {
		return domain.VatRate{}, false
	}
	percentage, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return domain.VatRate{}, false
	}
	return build(percentage, text, in), true
}

func findPercentage(cols []string) (float64, int, bool) {
	for i, col := range cols {
		m := percentRe.FindStringSubmatch(col)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err == nil {
			return v, i, true
		}
	}
	return 0, 0, false
}

func build(percentage float64, context string, in driven.ParseInput) domain.VatRate {
	category, kind := classify(context)
	return domain.VatRate{
		Kind:        kind,
		Percentage:  percentage,
		Description: describe(kind, category, percentage),
		Category:    category,
		AppliesTo:   appliesTo(category),
		IsCurrent:   true,
		Provenance: domain.Provenance{
			SourceURL:    in.Source.URL,
			SHA256:       in.SHA256,
			Domain:       string(in.Source.Domain),
			SourceType:   string(in.Source.Type),
			Publisher:    in.Source.Publisher,
			Version:      in.Source.Version,
			Jurisdiction: in.Source.Jurisdiction,
		},
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

// classify maps a Norwegian rate description to a category and kind.
func classify(description string) (string, domain.RateKind) {
	desc := strings.ToLower(description)

	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(desc, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("næringsmidler", "matvarer", "mat ", "kjøtt", "fisk", "grønnsaker"):
		return "food_products", domain.RateReduced
	case contains("vann", "avløp", "drikkevann"):
		return "water_services", domain.RateReduced
	case contains("persontransport", "kino", "utleie", "transport", "idrett", "overnatting"):
		return "transport_entertainment", domain.RateReduced
	case contains("fritatt", "unntatt", "null", "eksport"):
		return "exempt_goods_services", domain.RateZero
	case contains("alminnelig", "standard", "generell", "hoved"):
		return "general_goods_services", domain.RateStandard
	default:
		return "general_goods_services", domain.RateStandard
	}
}

func describe(kind domain.RateKind, category string, percentage float64) string {
	pct := strconv.FormatFloat(percentage, 'f', -1, 64)
	switch category {
	case "food_products":
		return fmt.Sprintf("Redusert MVA-sats for næringsmidler: %s%% - gjelder matvarer, drikkevarer og andre næringsmidler", pct)
	case "water_services":
		return fmt.Sprintf("Redusert MVA-sats for vann- og avløpstjenester: %s%% - gjelder drikkevann, avløpshåndtering og vannforsyning", pct)
	case "transport_entertainment":
		return fmt.Sprintf("Redusert MVA-sats for persontransport og overnatting: %s%% - gjelder persontransport, kinobilletter, hotellrom og idrettsarrangementer", pct)
	case "exempt_goods_services":
		return fmt.Sprintf("Null MVA-sats: %s%% - gjelder eksport og enkelte fritatte tjenester", pct)
	default:
		return fmt.Sprintf("Standard MVA-sats: %s%% - gjelder de fleste varer og tjenester", pct)
	}
}

func appliesTo(category string) []string {
	switch category {
	case "food_products":
		return []string{
			"Matvarer og drikkevarer",
			"Næringsmidler for menneskeforbruk",
			"Råvarer til matproduksjon",
		}
	case "water_services":
		return []string{
			"Drikkevann og vannforsyning",
			"Avløpshåndtering",
		}
	case "transport_entertainment":
		return []string{
			"Persontransport (buss, tog, fly)",
			"Kinobilletter og underholdning",
			"Hotellrom og overnatting",
			"Idrettsarrangementer",
		}
	case "exempt_goods_services":
		return []string{
			"Eksport av varer og tjenester",
			"Fritatte tjenester",
		}
	default:
		return []string{
			"De fleste varer og tjenester",
			"Generell omsetning",
		}
	}
}

// validityDates picks the first two dd.mm.yyyy dates found in the row,
// converted to ISO form.
func validityDates(cols []string) (string, string) {
	var dates []string
	for _, col := range cols {
		for _, m := range dateRe.FindAllStringSubmatch(col, -1) {
			dates = append(dates, fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]))
		}
	}
	switch len(dates) {
	case 0:
		return "", ""
	case 1:
		return dates[0], ""
	default:
		return dates[0], dates[1]
	}
}

func dedupe(rates []domain.VatRate) []domain.VatRate {
	seen := map[string]bool{}
	var out []domain.VatRate
	for _, r := range rates {
		key := fmt.Sprintf("%s:%.2f", r.Kind, r.Percentage)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
