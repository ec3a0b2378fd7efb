package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/smilemakc/specvalidate/pkg/models"
)

// flowWire is the on-disk shape of a flow document: the same field names
// used by models.FlowDocument/models.Node, since the corpus's wire format
// matches the normalized shape one-to-one (spec.md §6 leaves the
// normalizer's own contract unspecified beyond "satisfies §3's
// invariants" — this validator's normalizer is a thin re-decode rather
// than a structural transform).
type flowWire struct {
	Flow    *models.FlowMeta `yaml:"flow"`
	Trigger *models.Node     `yaml:"trigger"`
	Nodes   []*models.Node   `yaml:"nodes"`
}

// Normalize turns a raw parsed YAML document into a models.FlowDocument.
// The domain and flow id always come from domainID/flowID (the path-derived
// identity, spec.md §4.7), overriding any "flow.domain"/"flow.id" in the
// document so that two flows never collide on a stale "flow.id" left over
// from a copy-paste. The flow type is the document's own "flow.type" when
// set, else flowType.
func Normalize(raw map[string]any, domainID, flowID string, flowType models.FlowType) (*models.FlowDocument, error) {
	encoded, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encode raw flow document: %w", err)
	}

	var wire flowWire
	if err := yaml.Unmarshal(encoded, &wire); err != nil {
		return nil, &models.NormalizeError{DomainID: domainID, FlowID: flowID, Err: err}
	}

	meta := wire.Flow
	if meta == nil {
		meta = &models.FlowMeta{}
	}
	meta.Domain = domainID
	meta.ID = flowID
	if meta.Type == "" {
		meta.Type = flowType
	}

	doc := &models.FlowDocument{
		Flow:    meta,
		Trigger: wire.Trigger,
		Nodes:   wire.Nodes,
	}
	return doc, nil
}
