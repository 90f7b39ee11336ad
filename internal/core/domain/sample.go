package domain

// MessageRole is a chat role in a training sample.
type MessageRole string

// Chat roles.
const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single chat turn in OpenAI chat format.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// SampleTask identifies what a training sample teaches.
type SampleTask string

// Sample tasks.
const (
	TaskGlossaryDefine  SampleTask = "glossary_define"
	TaskPostingProposal SampleTask = "posting_proposal"
	TaskConversation    SampleTask = "conversation"
	TaskVatQuestion     SampleTask = "vat_question"
)

// SampleMetadata describes a Gold training sample.
type SampleMetadata struct {
	// Domain is the subject area.
	Domain string `json:"domain"`

	// Task is what the sample teaches.
	Task SampleTask `json:"task"`

	// SourceIDs reference the Silver documents behind the sample.
	// Never empty: samples without provenance are rejected.
	SourceIDs []string `json:"source_ids"`

	// Locale is the sample language, normally "nb-NO".
	Locale string `json:"locale"`

	// Split is "train" or "val", assigned at export time.
	Split string `json:"split,omitempty"`

	// FamilyKey groups related samples so the train/val split cannot
	// place siblings on both sides (leakage prevention).
	FamilyKey string `json:"family_key,omitempty"`

	// RuleIDs lists the business rules the sample exercises.
	RuleIDs []string `json:"rule_ids,omitempty"`

	// ConversationType names the template for synthetic conversations.
	ConversationType string `json:"conversation_type,omitempty"`

	// Turns is the number of user/assistant exchanges.
	Turns int `json:"turns,omitempty"`

	// CreatedAt is the export timestamp (RFC 3339).
	CreatedAt string `json:"created_at,omitempty"`
}

// TrainingSample is one Gold JSONL line: a chat-format training example
// with provenance metadata.
type TrainingSample struct {
	Messages []Message      `json:"messages"`
	Metadata SampleMetadata `json:"metadata"`
}

// Validate enforces the Gold contract: at least a system message and one
// exchange, system first, non-empty contents, and source provenance.
func (s TrainingSample) Validate() error {
	if len(s.Messages) < 2 {
		return ErrInvalidRecord
	}
	if s.Messages[0].Role != RoleSystem {
		return ErrInvalidRecord
	}
	for _, m := range s.Messages {
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return ErrInvalidRecord
		}
		if m.Content == "" {
			return ErrInvalidRecord
		}
	}
	if s.Metadata.Domain == "" || s.Metadata.Task == "" {
		return ErrInvalidRecord
	}
	if len(s.Metadata.SourceIDs) == 0 {
		return ErrInvalidRecord
	}
	return nil
}
