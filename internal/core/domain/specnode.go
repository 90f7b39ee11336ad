package domain

// SpecNode is one element of the SAF-T (Standard Audit File for Tax)
// specification, extracted from Skatteetaten documentation pages.
type SpecNode struct {
	// NodeID is the unique node identifier.
	NodeID string `json:"node_id"`

	// NodePath is the slash-separated XML path
	// (e.g. "AuditFile/MasterFiles/GeneralLedgerAccounts").
	NodePath string `json:"node_path"`

	// NodeLabel is the element name.
	NodeLabel string `json:"node_label"`

	// NodeLevel is the depth in the path (root = 1).
	NodeLevel int `json:"node_level"`

	// ParentID links to the enclosing node, when known.
	ParentID string `json:"parent_id,omitempty"`

	// DataType is the declared or inferred type (string, decimal, date...).
	DataType string `json:"data_type,omitempty"`

	// Description is the documented meaning of the node.
	Description string `json:"description"`

	// Cardinality is the occurrence constraint (e.g. "1..1", "0..n").
	Cardinality string `json:"cardinality,omitempty"`

	// ExampleValue is a documented example, when present.
	ExampleValue string `json:"example_value,omitempty"`

	// ValidationRules lists constraints pulled from the description.
	ValidationRules []string `json:"validation_rules,omitempty"`

	// TechnicalDetails lists format notes pulled from the description.
	TechnicalDetails []string `json:"technical_details,omitempty"`

	// Provenance ties the node to its Bronze content.
	Provenance

	// LastUpdated is the Silver processing timestamp (RFC 3339).
	LastUpdated string `json:"last_updated,omitempty"`
}

// Validate checks the fields the accounting glossary relies on.
func (n SpecNode) Validate() error {
	if n.NodeID == "" || n.NodePath == "" || n.NodeLabel == "" || n.NodeLevel < 1 {
		return ErrInvalidRecord
	}
	return n.Provenance.Validate()
}
