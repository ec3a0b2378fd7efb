package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/specvalidate/pkg/models"
)

func TestValidateSystem_EventPayloadMismatch(t *testing.T) {
	domains := map[string]*models.DomainConfig{
		"orders": {
			Name: "orders",
			PublishesEvents: []models.EventWiring{
				{Event: "order.created", Payload: map[string]any{"id": "string", "total": "number"}},
			},
		},
		"billing": {
			Name: "billing",
			ConsumesEvents: []models.EventWiring{
				{Event: "order.created", Payload: map[string]any{"id": "string", "amount": "number"}},
			},
		},
	}

	result := ValidateSystem(SystemContext{Domains: domains})
	require.Equal(t, 0, result.ErrorCount)
	require.Equal(t, 1, result.WarningCount)
	assert.Contains(t, result.Issues[0].Message, `field "amount"`)
}

func TestValidateSystem_ConsumedWithoutPublisher(t *testing.T) {
	domains := map[string]*models.DomainConfig{
		"billing": {
			Name:           "billing",
			ConsumesEvents: []models.EventWiring{{Event: "order.created"}},
		},
	}

	result := ValidateSystem(SystemContext{Domains: domains})
	require.Equal(t, 1, result.ErrorCount)
	assert.Contains(t, result.Issues[0].Message, `"order.created" is consumed but never published`)
}

func TestValidateSystem_PortalTargetUnknown(t *testing.T) {
	domains := map[string]*models.DomainConfig{
		"orders": {
			Name: "orders",
			Layout: &models.LayoutConfig{
				Portals: map[string]models.Position{"nonexistent": {X: 1, Y: 2}},
			},
		},
	}

	result := ValidateSystem(SystemContext{Domains: domains})
	require.Equal(t, 1, result.ErrorCount)
	assert.Contains(t, result.Issues[0].Message, `unknown portal target "nonexistent"`)
}

func TestValidateSystem_SchemaOwnedByMultipleDomains(t *testing.T) {
	domains := map[string]*models.DomainConfig{
		"a": {Name: "a", OwnsSchemas: []string{"User"}},
		"b": {Name: "b", OwnsSchemas: []string{"User"}},
	}

	result := ValidateSystem(SystemContext{Domains: domains})
	require.Equal(t, 1, result.WarningCount)
	assert.Contains(t, result.Issues[0].Message, `schema "User" is owned by more than one domain`)
}

func TestValidateSystem_NamingUniformityMixedStyles(t *testing.T) {
	domains := map[string]*models.DomainConfig{
		"a": {Name: "a", PublishesEvents: []models.EventWiring{{Event: "order.created"}}},
		"b": {Name: "b", PublishesEvents: []models.EventWiring{{Event: "orderCreated"}}},
	}

	result := ValidateSystem(SystemContext{Domains: domains})
	var found bool
	for _, i := range result.Issues {
		if i.Message == "events mix dot-notation and camelCase naming styles" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateSystem_EmptyCorpus(t *testing.T) {
	result := ValidateSystem(SystemContext{Domains: map[string]*models.DomainConfig{}})
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 0, result.WarningCount)
	assert.True(t, result.IsValid)
}
