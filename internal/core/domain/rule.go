package domain

// ConditionOperator compares a transaction field with a rule value.
type ConditionOperator string

// Condition operators.
const (
	OpEquals       ConditionOperator = "equals"
	OpNotEquals    ConditionOperator = "not_equals"
	OpContains     ConditionOperator = "contains"
	OpIn           ConditionOperator = "in"
	OpGreaterThan  ConditionOperator = "greater_than"
	OpLessThan     ConditionOperator = "less_than"
	OpGreaterEqual ConditionOperator = "greater_equal"
	OpLessEqual    ConditionOperator = "less_equal"
)

// RuleCondition is one predicate of a business rule.
type RuleCondition struct {
	// Field is the transaction field to evaluate.
	Field string `json:"field"`

	// Operator compares the field with Value.
	Operator ConditionOperator `json:"operator"`

	// Value is the comparison operand.
	Value any `json:"value"`
}

// ActionType identifies what a rule action sets on a posting.
type ActionType string

// Action types.
const (
	ActionSetAccount     ActionType = "set_account"
	ActionSetVatCode     ActionType = "set_vat_code"
	ActionSetVatRate     ActionType = "set_vat_rate"
	ActionSetVatAccount  ActionType = "set_vat_account"
	ActionSetPostingType ActionType = "set_posting_type"
)

// RuleAction is one effect of a business rule.
type RuleAction struct {
	// Type identifies what the action sets.
	Type ActionType `json:"type"`

	// Value is the value to set.
	Value any `json:"value"`
}

// RuleExample is a worked example attached to a business rule.
type RuleExample struct {
	// Description says what the example shows.
	Description string `json:"description"`

	// Input is the example transaction (amount, category, country...).
	Input map[string]any `json:"input"`

	// Output is the expected posting (account, vat_code, vat_rate...).
	Output map[string]any `json:"output"`
}

// BusinessRule is a deterministic posting rule with citations back to
// Silver source documents. Rules are seeded, not extracted.
type BusinessRule struct {
	// RuleID is the unique rule identifier (e.g. "expense_hotel_no_001").
	RuleID string `json:"rule_id"`

	// RuleName is the human-readable name.
	RuleName string `json:"rule_name"`

	// Description explains the rule.
	Description string `json:"description"`

	// Category groups the rule (expense, income, vat_calculation...).
	Category string `json:"category"`

	// Domain is the subject area.
	Domain string `json:"domain"`

	// Priority orders rule evaluation (lower = higher priority).
	Priority int `json:"priority"`

	// IsActive is false for retired rules kept for history.
	IsActive bool `json:"is_active"`

	// Conditions must all hold for the rule to apply.
	Conditions []RuleCondition `json:"conditions"`

	// Actions are applied when the rule matches.
	Actions []RuleAction `json:"actions"`

	// SourceIDs reference the Silver documents the rule is derived from.
	// Never empty: every rule must cite its legal basis.
	SourceIDs []string `json:"source_ids"`

	// Citations are the human-readable legal references.
	Citations []string `json:"citations,omitempty"`

	// Examples are worked scenarios.
	Examples []RuleExample `json:"examples,omitempty"`

	// ValidFrom and ValidTo bound the validity period (ISO dates).
	ValidFrom string `json:"valid_from,omitempty"`
	ValidTo   string `json:"valid_to,omitempty"`

	// Jurisdiction is the legal jurisdiction, normally "NO".
	Jurisdiction string `json:"jurisdiction"`

	// CreatedAt is the seed timestamp (RFC 3339).
	CreatedAt string `json:"created_at,omitempty"`
}

// Action returns the first action of the given type, or nil.
func (r BusinessRule) Action(t ActionType) *RuleAction {
	for i := range r.Actions {
		if r.Actions[i].Type == t {
			return &r.Actions[i]
		}
	}
	return nil
}

// Validate enforces the rule contract: identifiers, at least one
// condition and action, and non-empty source citations.
func (r BusinessRule) Validate() error {
	if r.RuleID == "" || r.RuleName == "" || r.Description == "" {
		return ErrInvalidRecord
	}
	if r.Category == "" || r.Domain == "" {
		return ErrInvalidRecord
	}
	if len(r.Conditions) == 0 || len(r.Actions) == 0 {
		return ErrInvalidRecord
	}
	if len(r.SourceIDs) == 0 {
		return ErrInvalidRecord
	}
	for _, c := range r.Conditions {
		if c.Field == "" || c.Operator == "" {
			return ErrInvalidRecord
		}
	}
	for _, a := range r.Actions {
		if a.Type == "" || a.Value == nil {
			return ErrInvalidRecord
		}
	}
	return nil
}
