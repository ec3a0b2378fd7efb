package validate

import (
	"fmt"

	"github.com/smilemakc/specvalidate/pkg/models"
)

// requiredHandles is the fixed per-kind table of outgoing branch handles a
// node of that kind must expose. Guardrail, parallel, smart_router and
// human_gate handles depend on the node's spec and are checked separately in
// branchHandleCompleteness; the remaining kinds have no required handles.
var requiredHandles = map[models.NodeKind][]string{
	models.NodeKindDataStore:   {"success", "error"},
	models.NodeKindServiceCall: {"success", "error"},
	models.NodeKindIPCCall:     {"success", "error"},
	models.NodeKindLLMCall:     {"success", "error"},
	models.NodeKindParse:       {"success", "error"},
	models.NodeKindCrypto:      {"success", "error"},
	models.NodeKindBatch:       {"done", "error"},
	models.NodeKindAgentLoop:   {"done", "error"},
	models.NodeKindTransaction: {"committed", "rolled_back"},
	models.NodeKindLoop:        {"body", "done"},
	models.NodeKindCache:       {"hit", "miss"},
	models.NodeKindCollection:  {"result", "empty"},
}

// branchHandleCompleteness implements the per-node-kind handle table
// (spec.md §4.3 "Branch-handle completeness by node kind").
func branchHandleCompleteness(fc *flowCtx) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, n := range fc.flow.AllNodes() {
		handles := n.Handles()

		if required, ok := requiredHandles[n.Type]; ok {
			for _, h := range required {
				if !handles[h] {
					issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness,
						fmt.Sprintf("%s node %q is missing the %q handle", n.Type, n.ID, h), models.WithNodeID(n.ID),
						models.WithSuggestion(fmt.Sprintf("connect a node on the %q handle", h))))
				}
			}
		}

		switch n.Type {
		case models.NodeKindGuardrail:
			if !handles["pass"] && !handles["valid"] {
				issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness,
					fmt.Sprintf("guardrail node %q is missing a %q or %q handle", n.ID, "pass", "valid"), models.WithNodeID(n.ID)))
			}
			if !handles["block"] && !handles["invalid"] {
				issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness,
					fmt.Sprintf("guardrail node %q is missing a %q or %q handle", n.ID, "block", "invalid"), models.WithNodeID(n.ID)))
			}

		case models.NodeKindParallel:
			branches := n.Spec.Slice("branches")
			for i := range branches {
				h := fmt.Sprintf("branch-%d", i)
				if !handles[h] {
					issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness,
						fmt.Sprintf("parallel node %q is missing the %q handle", n.ID, h), models.WithNodeID(n.ID)))
				}
			}
			if !handles["done"] {
				issues = append(issues, fc.issue(models.SeverityError, models.CategoryGraphCompleteness,
					fmt.Sprintf("parallel node %q is missing the %q handle", n.ID, "done"), models.WithNodeID(n.ID)))
			}

		case models.NodeKindSmartRouter:
			for _, raw := range n.Spec.Slice("rules") {
				rule, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				route, _ := rule["route"].(string)
				if route == "" {
					continue
				}
				if !handles[route] {
					issues = append(issues, fc.issue(models.SeverityWarning, models.CategoryGraphCompleteness,
						fmt.Sprintf("missing connection for route %s", route), models.WithNodeID(n.ID)))
				}
			}
			if routing := n.Spec.Map("llm_routing"); routing != nil {
				if routes, ok := routing["routes"].(map[string]any); ok {
					for key := range routes {
						if !handles[key] {
							issues = append(issues, fc.issue(models.SeverityWarning, models.CategoryGraphCompleteness,
								fmt.Sprintf("missing connection for llm routing key %s", key), models.WithNodeID(n.ID)))
						}
					}
				}
			}

		case models.NodeKindHumanGate:
			for _, raw := range n.Spec.Slice("approval_options") {
				opt, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				id, _ := opt["id"].(string)
				if id == "" {
					continue
				}
				if !handles[id] {
					issues = append(issues, fc.issue(models.SeverityWarning, models.CategoryGraphCompleteness,
						fmt.Sprintf("human_gate node %q has no connection for approval option %q", n.ID, id), models.WithNodeID(n.ID)))
				}
			}
		}
	}

	return issues
}
