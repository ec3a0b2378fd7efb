package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/specvalidate/pkg/models"
)

func TestValidateDomain_DuplicateFlowIDs(t *testing.T) {
	domain := &models.DomainConfig{
		Name: "orders",
		Flows: []models.FlowEntry{
			{ID: "create"},
			{ID: "create"},
		},
	}

	result := ValidateDomain("orders", domain, nil, nil)
	require.Equal(t, 1, result.ErrorCount)
	assert.Contains(t, result.Issues[0].Message, `duplicate flow id "create"`)
}

func TestValidateDomain_DuplicateHTTPEndpoint(t *testing.T) {
	httpTrigger := func(method, path string) *models.Node {
		return &models.Node{ID: "trigger", Type: models.NodeKindTrigger, Spec: models.SpecPayload{
			"event": "http_request", "method": method, "path": path,
		}}
	}

	flows := []*models.FlowDocument{
		{Flow: meta("users", "create", models.FlowTypeTraditional), Trigger: httpTrigger("POST", "/users")},
		{Flow: meta("users", "register", models.FlowTypeTraditional), Trigger: httpTrigger("post", "/users")},
	}

	domain := &models.DomainConfig{Name: "users"}
	result := ValidateDomain("users", domain, nil, flows)
	require.Equal(t, 1, result.ErrorCount)
	assert.Contains(t, result.Issues[0].Message, `"create"`)
	assert.Contains(t, result.Issues[0].Message, `"register"`)
}

func TestValidateDomain_EventGroupReference(t *testing.T) {
	domain := &models.DomainConfig{
		Name:        "billing",
		EventGroups: []models.EventGroup{{Name: "invoice"}},
	}
	flows := []*models.FlowDocument{
		{
			Flow:    meta("billing", "onInvoice", models.FlowTypeTraditional),
			Trigger: &models.Node{ID: "t", Type: models.NodeKindTrigger, Spec: models.SpecPayload{"event": "event_group:missing"}},
		},
	}

	result := ValidateDomain("billing", domain, nil, flows)
	require.Equal(t, 1, result.ErrorCount)
	assert.Contains(t, result.Issues[0].Message, `event_group "missing"`)
}

func TestValidateDomain_SchemaReferenceUnowned(t *testing.T) {
	allDomains := map[string]*models.DomainConfig{
		"billing": {Name: "billing", OwnsSchemas: []string{"Invoice"}},
	}
	flows := []*models.FlowDocument{
		{
			Flow:    meta("billing", "f", models.FlowTypeTraditional),
			Trigger: &models.Node{ID: "t", Type: models.NodeKindTrigger, Spec: models.SpecPayload{"event": "manual"}},
			Nodes: []*models.Node{
				{ID: "ds", Type: models.NodeKindDataStore, Spec: models.SpecPayload{"operation": "read", "model": "Unknown"}},
			},
		},
	}

	result := ValidateDomain("billing", allDomains["billing"], allDomains, flows)
	require.Equal(t, 1, result.WarningCount)
	assert.Contains(t, result.Issues[0].Message, `schema "Unknown"`)
}
