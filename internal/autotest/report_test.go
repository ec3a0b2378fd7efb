package autotest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/smilemakc/specvalidate/pkg/models"
)

func TestIssueToReport_DropsIDAndScope(t *testing.T) {
	issue := models.NewIssue(models.ScopeFlow, models.SeverityError, models.CategoryReferenceIntegrity,
		"unknown node reference", models.WithNodeID("save"), models.WithFlowID("create"), models.WithDomainID("orders"))
	require.NotEmpty(t, issue.ID)

	out, err := yaml.Marshal(issueToReport(issue))
	require.NoError(t, err)

	doc := string(out)
	assert.NotContains(t, doc, "id:")
	assert.NotContains(t, doc, "scope:")
	assert.Contains(t, doc, "severity: error")
	assert.Contains(t, doc, "category: reference_integrity")
	assert.Contains(t, doc, "message: unknown node reference")
	assert.Contains(t, doc, "node_id: save")
	assert.Contains(t, doc, "flow_id: create")
	assert.Contains(t, doc, "domain_id: orders")
}

func TestIssueToReport_OmitsEmptyOptionalFields(t *testing.T) {
	issue := models.NewIssue(models.ScopeSystem, models.SeverityWarning, models.CategoryEventWiring, "no subscribers")

	out, err := yaml.Marshal(issueToReport(issue))
	require.NoError(t, err)

	doc := string(out)
	assert.NotContains(t, doc, "suggestion:")
	assert.NotContains(t, doc, "node_id:")
	assert.NotContains(t, doc, "flow_id:")
	assert.NotContains(t, doc, "domain_id:")
}

func TestResultToReport_NilStaysNil(t *testing.T) {
	assert.Nil(t, resultToReport(nil))
}

func TestResultToReport_PreservesCountsAndDropsIssueIdentity(t *testing.T) {
	issue := models.NewIssue(models.ScopeDomain, models.SeverityError, models.CategoryDomainConsistency, "duplicate schema owner")
	result := models.NewResult(models.ScopeDomain, "orders", []models.ValidationIssue{issue})

	report := resultToReport(result)
	require.NotNil(t, report)
	assert.Equal(t, result.TargetID, report.TargetID)
	assert.Equal(t, result.ErrorCount, report.ErrorCount)
	assert.Equal(t, result.IsValid, report.IsValid)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "duplicate schema owner", report.Issues[0].Message)
}

func TestQualityReport_MarshaledYAMLOmitsIssueIDAndScope(t *testing.T) {
	issue := models.NewIssue(models.ScopeFlow, models.SeverityError, models.CategoryGraphCompleteness, "dead end")
	result := models.NewResult(models.ScopeFlow, "orders/create", []models.ValidationIssue{issue})

	quality := &QualityReport{
		Report:         "spec-quality-report",
		FlowValidation: resultsToReport([]*models.ValidationResult{result}),
	}

	out, err := yaml.Marshal(quality)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))

	flows := doc["flow_validation"].([]any)
	require.Len(t, flows, 1)
	flow := flows[0].(map[string]any)

	// The result itself legitimately carries "scope" (it's the result's own
	// scope/target, not an issue field) and "target_id".
	assert.Equal(t, "flow", flow["scope"])
	assert.Equal(t, "orders/create", flow["target_id"])

	issues := flow["issues"].([]any)
	require.Len(t, issues, 1)
	reportIssue := issues[0].(map[string]any)

	_, hasID := reportIssue["id"]
	_, hasScope := reportIssue["scope"]
	assert.False(t, hasID, "report issue must not carry id")
	assert.False(t, hasScope, "report issue must not carry scope")
	assert.Equal(t, "dead end", reportIssue["message"])
}
