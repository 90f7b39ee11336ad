package domain

// RateKind classifies a VAT rate.
type RateKind string

// VAT rate kinds.
const (
	RateStandard RateKind = "standard"
	RateReduced  RateKind = "reduced"
	RateZero     RateKind = "zero"
	RateExempt   RateKind = "exempt"
)

// VatRate is one Norwegian VAT (MVA) rate extracted from Skatteetaten
// rate tables.
type VatRate struct {
	// Kind classifies the rate (standard, reduced, zero, exempt).
	Kind RateKind `json:"kind"`

	// Percentage is the rate value (e.g. 25.0).
	Percentage float64 `json:"percentage"`

	// Description is the publisher's description of the rate.
	Description string `json:"description"`

	// Category groups what the rate applies to (e.g. "food_products").
	Category string `json:"category,omitempty"`

	// AppliesTo lists goods/services covered by the rate.
	AppliesTo []string `json:"applies_to,omitempty"`

	// Exceptions lists exclusions from the rate.
	Exceptions []string `json:"exceptions,omitempty"`

	// ValidFrom and ValidTo bound the validity period (ISO dates).
	ValidFrom string `json:"valid_from,omitempty"`
	ValidTo   string `json:"valid_to,omitempty"`

	// IsCurrent is true when the rate is in force.
	IsCurrent bool `json:"is_current"`

	// Provenance ties the rate to its Bronze content.
	Provenance

	// LastUpdated is the Silver processing timestamp (RFC 3339).
	LastUpdated string `json:"last_updated,omitempty"`
}

// Validate checks the rate has a kind, a sane percentage and provenance.
func (r VatRate) Validate() error {
	if r.Kind == "" || r.Percentage < 0 || r.Percentage > 100 || r.Description == "" {
		return ErrInvalidRecord
	}
	return r.Provenance.Validate()
}
