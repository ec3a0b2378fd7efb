package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/specvalidate/pkg/models"
	"github.com/smilemakc/specvalidate/pkg/validate"
)

type stubLoader struct {
	flows map[string][]*models.FlowDocument
}

func (s *stubLoader) LoadDomainFlows(domainID string) []*models.FlowDocument {
	return s.flows[domainID]
}

func goodFlow(domain, id string) *models.FlowDocument {
	return &models.FlowDocument{
		Flow: &models.FlowMeta{ID: id, Domain: domain, Type: models.FlowTypeTraditional},
		Trigger: &models.Node{
			ID: "trigger", Type: models.NodeKindTrigger,
			Spec:        models.SpecPayload{"event": "manual"},
			Connections: []models.Connection{{TargetNodeID: "end"}},
		},
		Nodes: []*models.Node{
			{ID: "end", Type: models.NodeKindTerminal},
		},
	}
}

func TestOrchestrator_ValidateCurrentFlow(t *testing.T) {
	o := New(nil, nil)
	result := o.ValidateCurrentFlow(goodFlow("d", "f"))
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
}

func TestOrchestrator_ValidateDomainFlows_SumsCounts(t *testing.T) {
	domains := map[string]*models.DomainConfig{
		"orders": {Name: "orders", Flows: []models.FlowEntry{{ID: "create"}, {ID: "create"}}},
	}
	loader := &stubLoader{flows: map[string][]*models.FlowDocument{
		"orders": {goodFlow("orders", "create")},
	}}

	o := New(domains, loader)
	result := o.ValidateDomainFlows("orders")

	require.NotNil(t, result)
	assert.Equal(t, 1, result.ErrorCount, "the duplicate flow id in domain.yaml should surface")
	assert.True(t, result.ErrorCount > 0 && !result.IsValid)
}

func TestOrchestrator_CheckImplementGate(t *testing.T) {
	domains := map[string]*models.DomainConfig{
		"orders": {Name: "orders"},
	}
	o := New(domains, nil)
	o.ValidateCurrentFlow(goodFlow("orders", "create"))
	o.ValidateDomain("orders")
	o.ValidateSystem(validate.SystemContext{Domains: domains})

	gate := o.CheckImplementGate("orders/create", "orders")
	assert.True(t, gate.CanImplement)
	assert.False(t, gate.HasWarnings)
}

func TestOrchestrator_Reset(t *testing.T) {
	o := New(nil, nil)
	o.ValidateCurrentFlow(goodFlow("d", "f"))
	o.Reset()
	assert.Nil(t, o.GetNodeIssues("d/f", "end"))
}
