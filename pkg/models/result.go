package models

import "time"

// ValidationResult aggregates the issues produced for a single scope/target
// pair (a flow, a domain, or the system as a whole). Results are built from
// immutable inputs and not mutated once stored or returned (spec.md §3
// Lifecycle); the orchestrator's domain roll-up adjusts the counts of a
// freshly built copy before storing it.
type ValidationResult struct {
	Scope        Scope             `yaml:"scope" json:"scope"`
	TargetID     string            `yaml:"target_id" json:"target_id"`
	Issues       []ValidationIssue `yaml:"issues" json:"issues"`
	ErrorCount   int               `yaml:"error_count" json:"error_count"`
	WarningCount int               `yaml:"warning_count" json:"warning_count"`
	InfoCount    int               `yaml:"info_count" json:"info_count"`
	IsValid      bool              `yaml:"is_valid" json:"is_valid"`
	ValidatedAt  string            `yaml:"validated_at" json:"validated_at"`
}

// NewResult builds a ValidationResult from a set of issues, counting each
// severity exactly once (I1) and deriving IsValid from ErrorCount (I3).
func NewResult(scope Scope, targetID string, issues []ValidationIssue) *ValidationResult {
	r := &ValidationResult{
		Scope:       scope,
		TargetID:    targetID,
		Issues:      issues,
		ValidatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			r.ErrorCount++
		case SeverityWarning:
			r.WarningCount++
		case SeverityInfo:
			r.InfoCount++
		}
	}
	r.IsValid = r.ErrorCount == 0
	return r
}

// Merge returns a new result of the same scope/target holding this result's
// issues plus extraIssues, with counts recomputed from that union. The
// orchestrator calls it with no extra issues to get a fresh copy of a domain
// result whose counts it then replaces with the domain-plus-flows totals.
func (r *ValidationResult) Merge(extraIssues ...ValidationIssue) *ValidationResult {
	all := make([]ValidationIssue, 0, len(r.Issues)+len(extraIssues))
	all = append(all, r.Issues...)
	all = append(all, extraIssues...)
	return NewResult(r.Scope, r.TargetID, all)
}

// NodeIssues filters this result's issues down to those tagged with nodeID.
func (r *ValidationResult) NodeIssues(nodeID string) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range r.Issues {
		if issue.NodeID == nodeID {
			out = append(out, issue)
		}
	}
	return out
}
