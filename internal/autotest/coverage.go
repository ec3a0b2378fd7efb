// Package autotest implements the driver described in spec.md §4.7-§4.8: it
// walks a spec corpus, parses and normalizes every flow, runs the full
// validator battery over it, and computes coverage metrics and a quality
// score. Grounded on the teacher's own "walk a project, build a report
// structure, serialize it" shape in pkg/visualization/mermaid.go.
package autotest

import (
	"math"
	"sort"
	"strings"

	"github.com/smilemakc/specvalidate/pkg/models"
)

// NodeTypeCoverage reports which of the 28 closed node kinds actually
// appear in the corpus (spec.md §4.8).
type NodeTypeCoverage struct {
	Used       []string `yaml:"used" json:"used"`
	Unused     []string `yaml:"unused" json:"unused"`
	PercentUsed *float64 `yaml:"percent_used" json:"percent_used"`
	Note       string   `yaml:"note,omitempty" json:"note,omitempty"`
}

// SpecFieldsCoverage totals a handful of spec-completeness signals across
// every node in the corpus.
type SpecFieldsCoverage struct {
	TotalNodes             int `yaml:"total_nodes" json:"total_nodes"`
	NodesWithDescription   int `yaml:"nodes_with_description" json:"nodes_with_description"`
	TriggersWithEvent      int `yaml:"triggers_with_event" json:"triggers_with_event"`
	DecisionsWithCondition int `yaml:"decisions_with_condition" json:"decisions_with_condition"`
}

// ConnectionsCoverage summarizes the corpus's graph connectivity.
type ConnectionsCoverage struct {
	Total          int     `yaml:"total" json:"total"`
	AveragePerNode float64 `yaml:"average_per_node" json:"average_per_node"`
	DeadEnds       int     `yaml:"dead_ends" json:"dead_ends"`
	Orphaned       int     `yaml:"orphaned" json:"orphaned"`
}

// FlowsCoverage buckets the normalized flows by validation outcome.
type FlowsCoverage struct {
	Total                int `yaml:"total" json:"total"`
	Traditional          int `yaml:"traditional" json:"traditional"`
	Agent                int `yaml:"agent" json:"agent"`
	WithErrors           int `yaml:"with_errors" json:"with_errors"`
	WithWarningsNoErrors int `yaml:"with_warnings" json:"with_warnings"`
	Clean                int `yaml:"clean" json:"clean"`
}

// Coverage is the full coverage report computed over the successfully
// normalized flows in a corpus (spec.md §4.8).
type Coverage struct {
	NodeTypes   NodeTypeCoverage    `yaml:"node_types" json:"node_types"`
	SpecFields  SpecFieldsCoverage  `yaml:"spec_fields" json:"spec_fields"`
	Connections ConnectionsCoverage `yaml:"connections" json:"connections"`
	Flows       FlowsCoverage       `yaml:"flows" json:"flows"`
}

const orphanedMessageFragment = "unreachable from the trigger"

// ComputeCoverage implements spec.md §4.8 over the flows that normalized
// successfully, using their already-computed flow-scope ValidationResults
// (keyed by flow.Key()) to derive the orphaned-node count and the
// errors/warnings-with-no-errors/clean buckets.
func ComputeCoverage(flows []*models.FlowDocument, flowResults map[string]*models.ValidationResult, minFlowsForPercent int) Coverage {
	return Coverage{
		NodeTypes:   nodeTypeCoverage(flows, minFlowsForPercent),
		SpecFields:  specFieldsCoverage(flows),
		Connections: connectionsCoverage(flows, flowResults),
		Flows:       flowsCoverage(flows, flowResults),
	}
}

func nodeTypeCoverage(flows []*models.FlowDocument, minFlowsForPercent int) NodeTypeCoverage {
	counts := make(map[models.NodeKind]int)
	for _, flow := range flows {
		for _, n := range flow.AllNodes() {
			counts[n.Type]++
		}
	}

	var used, unused []string
	for _, kind := range models.AllNodeKinds {
		if counts[kind] > 0 {
			used = append(used, string(kind))
		} else {
			unused = append(unused, string(kind))
		}
	}

	cov := NodeTypeCoverage{Used: used, Unused: unused}
	if len(flows) < minFlowsForPercent {
		cov.Note = "Insufficient flows to compute a meaningful coverage percent"
		return cov
	}
	pct := round2(float64(len(used)) / float64(len(models.AllNodeKinds)) * 100)
	cov.PercentUsed = &pct
	return cov
}

func specFieldsCoverage(flows []*models.FlowDocument) SpecFieldsCoverage {
	var sf SpecFieldsCoverage
	for _, flow := range flows {
		for _, n := range flow.AllNodes() {
			sf.TotalNodes++
			if n.Spec.String("description") != "" {
				sf.NodesWithDescription++
			}
			if n.Type == models.NodeKindTrigger && n.Spec.StringOrList("event") {
				sf.TriggersWithEvent++
			}
			if n.Type == models.NodeKindDecision && n.Spec.String("condition") != "" {
				sf.DecisionsWithCondition++
			}
		}
	}
	return sf
}

func connectionsCoverage(flows []*models.FlowDocument, flowResults map[string]*models.ValidationResult) ConnectionsCoverage {
	var cc ConnectionsCoverage
	totalNodes := 0
	for _, flow := range flows {
		for _, n := range flow.AllNodes() {
			totalNodes++
			cc.Total += len(n.Connections)
			if n.Type != models.NodeKindTerminal && n.Type != models.NodeKindLoop &&
				n.Type != models.NodeKindParallel && n.Type != models.NodeKindTrigger &&
				len(n.Connections) == 0 {
				cc.DeadEnds++
			}
		}

		if result, ok := flowResults[flow.Key()]; ok {
			for _, issue := range result.Issues {
				if strings.Contains(issue.Message, orphanedMessageFragment) {
					cc.Orphaned++
				}
			}
		}
	}
	if totalNodes > 0 {
		cc.AveragePerNode = round2(float64(cc.Total) / float64(totalNodes))
	}
	return cc
}

func flowsCoverage(flows []*models.FlowDocument, flowResults map[string]*models.ValidationResult) FlowsCoverage {
	var fc FlowsCoverage
	fc.Total = len(flows)
	for _, flow := range flows {
		if flow.IsAgent() {
			fc.Agent++
		} else {
			fc.Traditional++
		}

		result := flowResults[flow.Key()]
		switch {
		case result == nil:
			fc.Clean++
		case result.ErrorCount > 0:
			fc.WithErrors++
		case result.WarningCount > 0:
			fc.WithWarningsNoErrors++
		default:
			fc.Clean++
		}
	}
	return fc
}

// QualityVerdict classifies a quality score into the four bands of
// spec.md §4.8.
func QualityVerdict(score int) string {
	switch {
	case score >= 90:
		return "EXCELLENT"
	case score >= 70:
		return "GOOD"
	case score >= 50:
		return "NEEDS_IMPROVEMENT"
	default:
		return "POOR"
	}
}

// QualityScore implements spec.md §4.8's formula: 0 when there are no
// flows, otherwise 100 minus a penalty for errors (weight 5) and warnings
// (weight 1), normalized by max(flowCount, 5) and clamped to [0, 100].
func QualityScore(flowCount, errors, warnings int) int {
	if flowCount == 0 {
		return 0
	}
	denom := float64(flowCount)
	if denom < 5 {
		denom = 5
	}
	raw := 100 - (float64(errors)*5+float64(warnings))/denom*10
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	return int(math.Round(raw))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedKeys returns the keys of m sorted lexicographically, used to make
// report generation deterministic (spec.md §5, §8 "deterministic up to
// generated_at").
func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
