package autotest

import (
	"github.com/smilemakc/specvalidate/pkg/models"
)

// ParseFailure records a single file that failed to parse (spec.md §7).
type ParseFailure struct {
	Path  string `yaml:"path" json:"path"`
	Error string `yaml:"error" json:"error"`
}

// NormalizeFailure records a single flow that failed to normalize.
type NormalizeFailure struct {
	Domain string `yaml:"domain" json:"domain"`
	Flow   string `yaml:"flow" json:"flow"`
	Error  string `yaml:"error" json:"error"`
}

// NormalizeDetail records the outcome of every normalize attempt, success
// or failure, for a full audit trail.
type NormalizeDetail struct {
	Domain  string `yaml:"domain" json:"domain"`
	Flow    string `yaml:"flow" json:"flow"`
	Success bool   `yaml:"success" json:"success"`
}

// ParseSummary totals the parse phase outcome.
type ParseSummary struct {
	Success        int     `yaml:"success" json:"success"`
	Failed         int     `yaml:"failed" json:"failed"`
	SuccessRatePct float64 `yaml:"success_rate_pct" json:"success_rate_pct"`
}

// NormalizeSummary totals the normalize phase outcome.
type NormalizeSummary struct {
	TotalFlows     int     `yaml:"total_flows" json:"total_flows"`
	Success        int     `yaml:"success" json:"success"`
	Failed         int     `yaml:"failed" json:"failed"`
	SuccessRatePct float64 `yaml:"success_rate_pct" json:"success_rate_pct"`
}

// CompatibilitySummary is the summary block of tool-compatibility-report.yaml.
type CompatibilitySummary struct {
	TotalFiles      int              `yaml:"total_files" json:"total_files"`
	FilesByCategory map[string]int   `yaml:"files_by_category" json:"files_by_category"`
	Parse           ParseSummary     `yaml:"parse" json:"parse"`
	Normalize       NormalizeSummary `yaml:"normalize" json:"normalize"`
}

// CompatibilityReport is tool-compatibility-report.yaml (spec.md §6).
type CompatibilityReport struct {
	Report               string               `yaml:"report" json:"report"`
	GeneratedAt          string               `yaml:"generated_at" json:"generated_at"`
	Project              string               `yaml:"project" json:"project"`
	Summary              CompatibilitySummary `yaml:"summary" json:"summary"`
	ParseFailures        []ParseFailure       `yaml:"parse_failures" json:"parse_failures"`
	NormalizeFailures    []NormalizeFailure   `yaml:"normalize_failures" json:"normalize_failures"`
	NormalizeDetails     []NormalizeDetail    `yaml:"normalize_details" json:"normalize_details"`
	CompatibilityVerdict string               `yaml:"compatibility_verdict" json:"compatibility_verdict"`
}

// ReportIssue is the on-disk shape of a models.ValidationIssue (spec.md
// §6: `{ severity, category, message, suggestion?, node_id?, flow_id?,
// domain_id? }`). It deliberately drops ID and Scope — those exist for the
// orchestrator's in-memory API (issue keying, scope filtering) but are not
// part of the report's external contract.
type ReportIssue struct {
	Severity   models.Severity `yaml:"severity" json:"severity"`
	Category   models.Category `yaml:"category" json:"category"`
	Message    string          `yaml:"message" json:"message"`
	Suggestion string          `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
	NodeID     string          `yaml:"node_id,omitempty" json:"node_id,omitempty"`
	FlowID     string          `yaml:"flow_id,omitempty" json:"flow_id,omitempty"`
	DomainID   string          `yaml:"domain_id,omitempty" json:"domain_id,omitempty"`
}

// ReportResult is the on-disk shape of a models.ValidationResult, carrying
// ReportIssue values instead of models.ValidationIssue.
type ReportResult struct {
	Scope        models.Scope  `yaml:"scope" json:"scope"`
	TargetID     string        `yaml:"target_id" json:"target_id"`
	Issues       []ReportIssue `yaml:"issues" json:"issues"`
	ErrorCount   int           `yaml:"error_count" json:"error_count"`
	WarningCount int           `yaml:"warning_count" json:"warning_count"`
	InfoCount    int           `yaml:"info_count" json:"info_count"`
	IsValid      bool          `yaml:"is_valid" json:"is_valid"`
	ValidatedAt  string        `yaml:"validated_at" json:"validated_at"`
}

// issueToReport strips the ID and Scope fields a ValidationIssue carries for
// in-process use, leaving the shape spec.md §6 documents for the report file.
func issueToReport(i models.ValidationIssue) ReportIssue {
	return ReportIssue{
		Severity:   i.Severity,
		Category:   i.Category,
		Message:    i.Message,
		Suggestion: i.Suggestion,
		NodeID:     i.NodeID,
		FlowID:     i.FlowID,
		DomainID:   i.DomainID,
	}
}

// resultToReport converts a models.ValidationResult to its on-disk shape. A
// nil result converts to nil, since SystemValidation may legitimately be
// absent from a run.
func resultToReport(r *models.ValidationResult) *ReportResult {
	if r == nil {
		return nil
	}
	issues := make([]ReportIssue, len(r.Issues))
	for i, issue := range r.Issues {
		issues[i] = issueToReport(issue)
	}
	return &ReportResult{
		Scope:        r.Scope,
		TargetID:     r.TargetID,
		Issues:       issues,
		ErrorCount:   r.ErrorCount,
		WarningCount: r.WarningCount,
		InfoCount:    r.InfoCount,
		IsValid:      r.IsValid,
		ValidatedAt:  r.ValidatedAt,
	}
}

// resultsToReport converts a slice of models.ValidationResult, preserving
// order and nils.
func resultsToReport(rs []*models.ValidationResult) []*ReportResult {
	out := make([]*ReportResult, len(rs))
	for i, r := range rs {
		out[i] = resultToReport(r)
	}
	return out
}

// QualitySummary is the summary block of spec-quality-report.yaml.
type QualitySummary struct {
	QualityScore     int            `yaml:"quality_score" json:"quality_score"`
	TotalIssues      int            `yaml:"total_issues" json:"total_issues"`
	Errors           int            `yaml:"errors" json:"errors"`
	Warnings         int            `yaml:"warnings" json:"warnings"`
	Info             int            `yaml:"info" json:"info"`
	IssuesByCategory map[string]int `yaml:"issues_by_category" json:"issues_by_category"`
}

// QualityReport is spec-quality-report.yaml (spec.md §6).
type QualityReport struct {
	Report           string         `yaml:"report" json:"report"`
	GeneratedAt      string         `yaml:"generated_at" json:"generated_at"`
	Project          string         `yaml:"project" json:"project"`
	Summary          QualitySummary `yaml:"summary" json:"summary"`
	Coverage         Coverage       `yaml:"coverage" json:"coverage"`
	FlowValidation   []*ReportResult `yaml:"flow_validation" json:"flow_validation"`
	DomainValidation []*ReportResult `yaml:"domain_validation" json:"domain_validation"`
	SystemValidation *ReportResult   `yaml:"system_validation" json:"system_validation"`
	QualityVerdict   string          `yaml:"quality_verdict" json:"quality_verdict"`
}

const (
	compatibilityReportFileName = "tool-compatibility-report.yaml"
	qualityReportFileName       = "spec-quality-report.yaml"

	verdictFullyCompatible         = "FULLY_COMPATIBLE"
	verdictCompatibleParseIssues   = "COMPATIBLE_WITH_PARSE_ISSUES"
	verdictPartialCompatibility    = "PARTIAL_COMPATIBILITY"
)

// compatibilityVerdict implements spec.md §4.8's verdict rule.
func compatibilityVerdict(parseFailed, normalizeFailed int) string {
	switch {
	case parseFailed == 0 && normalizeFailed == 0:
		return verdictFullyCompatible
	case normalizeFailed == 0:
		return verdictCompatibleParseIssues
	default:
		return verdictPartialCompatibility
	}
}
