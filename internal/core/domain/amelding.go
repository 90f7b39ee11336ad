package domain

// AmeldingCategory groups a-melding rules by what they govern.
type AmeldingCategory string

// A-melding rule categories.
const (
	AmeldingFormGuidance        AmeldingCategory = "form_guidance"
	AmeldingSubmissionDeadlines AmeldingCategory = "submission_deadlines"
	AmeldingEmployerObligations AmeldingCategory = "employer_obligations"
	AmeldingSalaryReporting     AmeldingCategory = "salary_reporting"
	AmeldingGeneralGuidance     AmeldingCategory = "general_guidance"
)

// AmeldingRule is one employer-reporting rule extracted from Altinn
// a-melding guidance pages.
type AmeldingRule struct {
	// RuleID is the unique rule identifier.
	RuleID string `json:"rule_id"`

	// Category and Subcategory group the rule.
	Category    AmeldingCategory `json:"category"`
	Subcategory string           `json:"subcategory,omitempty"`

	// FieldID and FieldLabel identify the reporting field the rule
	// applies to, when the guidance names one.
	FieldID    string `json:"field_id,omitempty"`
	FieldLabel string `json:"field_label"`

	// Description is the rule text.
	Description string `json:"description"`

	// DataType and Cardinality describe the field, when documented.
	DataType    string `json:"data_type,omitempty"`
	Cardinality string `json:"cardinality,omitempty"`

	// ValidationRules lists constraints pulled from the guidance.
	ValidationRules []string `json:"validation_rules,omitempty"`

	// ExampleValue is a documented example, when present.
	ExampleValue string `json:"example_value,omitempty"`

	// Provenance ties the rule to its Bronze content.
	Provenance

	// LastUpdated is the Silver processing timestamp (RFC 3339).
	LastUpdated string `json:"last_updated,omitempty"`
}

// Validate checks the rule carries an identifier, category and text.
func (r AmeldingRule) Validate() error {
	if r.RuleID == "" || r.Category == "" || r.FieldLabel == "" || r.Description == "" {
		return ErrInvalidRecord
	}
	return r.Provenance.Validate()
}
