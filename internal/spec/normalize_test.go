package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/specvalidate/pkg/models"
)

func TestNormalize_FillsIdentityFromPath(t *testing.T) {
	raw := map[string]any{
		"trigger": map[string]any{
			"id":   "trigger",
			"type": "trigger",
			"spec": map[string]any{"event": "manual"},
		},
		"nodes": []any{
			map[string]any{"id": "end", "type": "terminal"},
		},
	}

	doc, err := Normalize(raw, "orders", "create", models.FlowTypeTraditional)
	require.NoError(t, err)

	assert.Equal(t, "orders", doc.Flow.Domain)
	assert.Equal(t, "create", doc.Flow.ID)
	assert.Equal(t, models.FlowTypeTraditional, doc.Flow.Type)
	require.NotNil(t, doc.Trigger)
	assert.Equal(t, "trigger", doc.Trigger.ID)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, "end", doc.Nodes[0].ID)
}

func TestNormalize_PreservesDeclaredFlowType(t *testing.T) {
	raw := map[string]any{
		"flow": map[string]any{"type": "agent"},
	}
	doc, err := Normalize(raw, "support", "triage", models.FlowTypeTraditional)
	require.NoError(t, err)
	assert.Equal(t, models.FlowTypeAgent, doc.Flow.Type)
}

func TestNormalize_UnparsableRawFails(t *testing.T) {
	raw := map[string]any{
		"trigger": map[string]any{"connections": "not-a-list"},
	}
	_, err := Normalize(raw, "orders", "bad", models.FlowTypeTraditional)
	require.Error(t, err)
	var nerr *models.NormalizeError
	assert.ErrorAs(t, err, &nerr)
}
