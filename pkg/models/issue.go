package models

import "github.com/google/uuid"

// Severity classifies how serious a ValidationIssue is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Scope is the granularity at which a ValidationIssue was produced.
type Scope string

const (
	ScopeFlow   Scope = "flow"
	ScopeDomain Scope = "domain"
	ScopeSystem Scope = "system"
)

// Category classifies the kind of problem a ValidationIssue describes.
type Category string

const (
	CategoryGraphCompleteness    Category = "graph_completeness"
	CategorySpecCompleteness     Category = "spec_completeness"
	CategoryReferenceIntegrity   Category = "reference_integrity"
	CategoryAgentValidation      Category = "agent_validation"
	CategoryOrchestrationValidation Category = "orchestration_validation"
	CategoryDomainConsistency    Category = "domain_consistency"
	CategoryEventWiring          Category = "event_wiring"
)

// ValidationIssue is a single finding produced by the validator. It is data,
// never an error: operational failures (I/O, parse) are represented
// separately (see ParseError/NormalizeError).
type ValidationIssue struct {
	ID         string   `yaml:"id" json:"id"`
	Scope      Scope    `yaml:"scope" json:"scope"`
	Severity   Severity `yaml:"severity" json:"severity"`
	Category   Category `yaml:"category" json:"category"`
	Message    string   `yaml:"message" json:"message"`
	Suggestion string   `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
	NodeID     string   `yaml:"node_id,omitempty" json:"node_id,omitempty"`
	FlowID     string   `yaml:"flow_id,omitempty" json:"flow_id,omitempty"`
	DomainID   string   `yaml:"domain_id,omitempty" json:"domain_id,omitempty"`
}

// IssueOption sets an optional field on a newly constructed ValidationIssue.
type IssueOption func(*ValidationIssue)

// WithSuggestion attaches a suggested fix to an issue.
func WithSuggestion(s string) IssueOption {
	return func(i *ValidationIssue) { i.Suggestion = s }
}

// WithNodeID tags an issue with the node it was produced for.
func WithNodeID(id string) IssueOption {
	return func(i *ValidationIssue) { i.NodeID = id }
}

// WithFlowID tags an issue with the flow it was produced for.
func WithFlowID(id string) IssueOption {
	return func(i *ValidationIssue) { i.FlowID = id }
}

// WithDomainID tags an issue with the domain it was produced for.
func WithDomainID(id string) IssueOption {
	return func(i *ValidationIssue) { i.DomainID = id }
}

// NewIssue constructs a ValidationIssue with a fresh, opaque 8-character ID.
// The ID exists only for UI keying (spec.md §9); it carries no semantic
// meaning and two issues never collide within one result (I5).
func NewIssue(scope Scope, severity Severity, category Category, message string, opts ...IssueOption) ValidationIssue {
	issue := ValidationIssue{
		ID:       uuid.NewString()[:8],
		Scope:    scope,
		Severity: severity,
		Category: category,
		Message:  message,
	}
	for _, opt := range opts {
		opt(&issue)
	}
	return issue
}
