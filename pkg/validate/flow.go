// Package validate runs the fixed check battery over flows, domains, and the
// system as a whole, producing ValidationResult values. Every function here
// is pure: it reads its inputs and returns a new result, the way the
// teacher's pkg/builder validators return a plain error from a config map
// rather than mutating anything.
package validate

import (
	"fmt"

	"github.com/smilemakc/specvalidate/pkg/graph"
	"github.com/smilemakc/specvalidate/pkg/models"
)

// flowCtx carries the flow/domain tags that every issue produced for a flow
// must be stamped with (spec invariant: flowId/domainId present at flow
// scope).
type flowCtx struct {
	flow *models.FlowDocument
}

func (fc *flowCtx) issue(sev models.Severity, cat models.Category, msg string, opts ...models.IssueOption) models.ValidationIssue {
	base := []models.IssueOption{
		models.WithFlowID(fc.flow.Flow.ID),
		models.WithDomainID(fc.flow.Flow.Domain),
	}
	base = append(base, opts...)
	return models.NewIssue(models.ScopeFlow, sev, cat, msg, base...)
}

// ValidateFlow runs the full check battery on a single flow document.
// domains is the full set of known domain configs, needed only for the
// sub_flow cross-reference check; it may be nil if cross-reference checking
// isn't available yet.
func ValidateFlow(flow *models.FlowDocument, domains map[string]*models.DomainConfig) *models.ValidationResult {
	fc := &flowCtx{flow: flow}
	targetID := flow.Key()

	if flow.Trigger == nil {
		issue := fc.issue(models.SeverityError, models.CategoryGraphCompleteness, "flow has no trigger node")
		return models.NewResult(models.ScopeFlow, targetID, []models.ValidationIssue{issue})
	}

	var issues []models.ValidationIssue
	issues = append(issues, graphCompleteness(fc)...)
	issues = append(issues, branchHandleCompleteness(fc)...)
	issues = append(issues, specCompleteness(fc)...)
	issues = append(issues, agentFlowRules(fc)...)
	issues = append(issues, orchestrationNodeRules(fc)...)
	issues = append(issues, crossReference(fc, domains)...)

	return models.NewResult(models.ScopeFlow, targetID, issues)
}

// isLoopLike reports whether a node's type is exempt from the "every
// reachable non-terminal node needs an outgoing edge" dead-end rule.
func isLoopLike(k models.NodeKind) bool {
	return k == models.NodeKindLoop || k == models.NodeKindParallel
}

func graphCompleteness(fc *flowCtx) []models.ValidationIssue {
	var issues []models.ValidationIssue
	flow := fc.flow

	hasTerminal := false
	for _, n := range flow.AllNodes() {
		if n.Type == models.NodeKindTerminal {
			hasTerminal = true
			break
		}
	}
	if !hasTerminal {
		issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness, "flow has no terminal nodes"))
	}

	adj := graph.Build(flow)
	reachable := graph.Reachable(flow.Trigger.ID, adj)

	for _, n := range flow.Nodes {
		if n.Type == models.NodeKindTerminal || isLoopLike(n.Type) {
			continue
		}
		if reachable[n.ID] && len(n.Connections) == 0 {
			issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness,
				fmt.Sprintf("dead end: node %q has no outgoing connection", n.ID), models.WithNodeID(n.ID),
				models.WithSuggestion("add an outgoing connection or change this node to a terminal")))
		}
	}

	for _, n := range flow.Nodes {
		if !reachable[n.ID] {
			issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness,
				fmt.Sprintf("node %q is unreachable from the trigger", n.ID), models.WithNodeID(n.ID)))
		}
	}

	if !flow.IsAgent() && graph.HasCycle(flow) {
		issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness, "circular path detected in flow graph"))
	}

	for _, n := range flow.AllNodes() {
		if n.Type != models.NodeKindDecision {
			continue
		}
		handles := n.Handles()
		for _, required := range []string{"true", "false"} {
			if !handles[required] {
				issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness,
					fmt.Sprintf("decision node %q is missing the %q branch", n.ID, required), models.WithNodeID(n.ID),
					models.WithSuggestion(fmt.Sprintf("connect a node on the %q handle", required))))
			}
		}
	}

	for _, n := range flow.AllNodes() {
		if n.Type == models.NodeKindTerminal && len(n.Connections) > 0 {
			issues = append(issues, fc.issue(models.SeverityWarning, models.CategoryGraphCompleteness,
				fmt.Sprintf("terminal node %q has outgoing connections", n.ID), models.WithNodeID(n.ID)))
		}
	}

	for _, n := range flow.AllNodes() {
		if n.Type != models.NodeKindInput {
			continue
		}
		if !hasNonEmpty(n.Spec["validation"]) {
			continue
		}
		handles := n.Handles()
		if !handles["valid"] && !handles["invalid"] {
			issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness,
				fmt.Sprintf("input node %q declares validation but has neither a %q nor %q branch", n.ID, "valid", "invalid"),
				models.WithNodeID(n.ID)))
		}
	}

	return issues
}

// hasNonEmpty reports whether v is a present, non-empty value of the shapes
// the corpus uses for optional scalar/collection spec fields.
func hasNonEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
