package validate

import (
	"fmt"

	"github.com/smilemakc/specvalidate/pkg/models"
)

var coordinatorKinds = map[models.NodeKind]bool{
	models.NodeKindAgentLoop:    true,
	models.NodeKindAgentGroup:   true,
	models.NodeKindOrchestrator: true,
}

// agentFlowRules implements spec.md §4.3 "Agent flow rules", applied only
// when the flow is declared as an agent flow.
func agentFlowRules(fc *flowCtx) []models.ValidationIssue {
	if !fc.flow.IsAgent() {
		return nil
	}

	var issues []models.ValidationIssue
	var agentLoops []*models.Node
	hasCoordinator := false

	for _, n := range fc.flow.AllNodes() {
		if coordinatorKinds[n.Type] {
			hasCoordinator = true
		}
		if n.Type == models.NodeKindAgentLoop {
			agentLoops = append(agentLoops, n)
		}
	}

	if !hasCoordinator {
		issues = append(issues, fc.issue(models.SeverityError, models.CategoryAgentValidation,
			"agent flow requires at least one of agent_loop, agent_group, or orchestrator"))
		return issues
	}

	if len(agentLoops) == 0 {
		return issues
	}
	if len(agentLoops) > 1 {
		issues = append(issues, fc.issue(models.SeverityWarning, models.CategoryAgentValidation,
			fmt.Sprintf("agent flow has %d agent_loop nodes; only one is expected", len(agentLoops))))
	}

	for _, n := range agentLoops {
		tools := n.Spec.Slice("tools")
		if len(tools) == 0 {
			issues = append(issues, fc.issue(models.SeverityError, models.CategoryAgentValidation,
				fmt.Sprintf("agent_loop node %q requires at least one tool", n.ID), models.WithNodeID(n.ID)))
		}
		hasTerminalTool := false
		for _, raw := range tools {
			tool, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if b, ok := tool["is_terminal"].(bool); ok && b {
				hasTerminalTool = true
				break
			}
		}
		if len(tools) > 0 && !hasTerminalTool {
			issues = append(issues, fc.issue(models.SeverityError, models.CategoryAgentValidation,
				fmt.Sprintf("agent_loop node %q requires at least one tool with is_terminal=true", n.ID), models.WithNodeID(n.ID)))
		}
		if !n.Spec.Has("max_iterations") {
			issues = append(issues, fc.issue(models.SeverityWarning, models.CategoryAgentValidation,
				fmt.Sprintf("agent_loop node %q has no max_iterations set", n.ID), models.WithNodeID(n.ID)))
		}
		if n.Spec.String("model") == "" {
			issues = append(issues, fc.issue(models.SeverityError, models.CategoryAgentValidation,
				fmt.Sprintf("agent_loop node %q requires %q", n.ID, "model"), models.WithNodeID(n.ID)))
		}
	}

	return issues
}

// orchestrationNodeRules implements spec.md §4.3 "Orchestration-node rules",
// applied wherever these node kinds occur regardless of flow type.
func orchestrationNodeRules(fc *flowCtx) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, n := range fc.flow.AllNodes() {
		switch n.Type {
		case models.NodeKindOrchestrator:
			if len(n.Spec.Slice("agents")) < 2 {
				issues = append(issues, fc.issue(models.SeverityError, models.CategoryOrchestrationValidation,
					fmt.Sprintf("orchestrator node %q requires at least 2 agents", n.ID), models.WithNodeID(n.ID)))
			}
			if n.Spec.String("strategy") == "" {
				issues = append(issues, fc.issue(models.SeverityError, models.CategoryOrchestrationValidation,
					fmt.Sprintf("orchestrator node %q requires %q", n.ID, "strategy"), models.WithNodeID(n.ID)))
			}

		case models.NodeKindSmartRouter:
			rules := n.Spec.Slice("rules")
			llmEnabled := n.Spec.Map("llm_routing") != nil && n.Spec.Map("llm_routing")["enabled"] == true
			if len(rules) == 0 && !llmEnabled {
				issues = append(issues, fc.issue(models.SeverityError, models.CategoryOrchestrationValidation,
					fmt.Sprintf("smart_router node %q has no rules and llm_routing is disabled", n.ID), models.WithNodeID(n.ID)))
			}
			if len(n.Spec.StringSlice("fallback_chain")) == 0 && !llmEnabled {
				issues = append(issues, fc.issue(models.SeverityWarning, models.CategoryOrchestrationValidation,
					fmt.Sprintf("smart_router node %q has an empty fallback_chain and llm_routing is disabled", n.ID), models.WithNodeID(n.ID)))
			}
			for _, raw := range rules {
				rule, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				when, _ := rule["when"].(string)
				if when == "" {
					continue
				}
				if warn := checkExprSyntax(when); warn != "" {
					issues = append(issues, fc.issue(models.SeverityWarning, models.CategorySpecCompleteness,
						fmt.Sprintf("smart_router node %q rule condition does not parse as an expression: %s", n.ID, warn), models.WithNodeID(n.ID)))
				}
			}

		case models.NodeKindHandoff:
			target := n.Spec.Map("target")
			if target == nil || target["flow"] == nil || target["flow"] == "" {
				issues = append(issues, fc.issue(models.SeverityError, models.CategoryOrchestrationValidation,
					fmt.Sprintf("handoff node %q requires %q", n.ID, "target.flow"), models.WithNodeID(n.ID)))
			}

		case models.NodeKindAgentGroup:
			if len(n.Spec.Slice("members")) < 2 {
				issues = append(issues, fc.issue(models.SeverityError, models.CategoryOrchestrationValidation,
					fmt.Sprintf("agent_group node %q requires at least 2 members", n.ID), models.WithNodeID(n.ID)))
			}
		}
	}

	return issues
}

// crossReference implements spec.md §4.3 "Cross-reference": a sub_flow's
// flow_ref must resolve to a known domain and flow entry.
func crossReference(fc *flowCtx, domains map[string]*models.DomainConfig) []models.ValidationIssue {
	if domains == nil {
		return nil
	}

	var issues []models.ValidationIssue
	for _, n := range fc.flow.AllNodes() {
		if n.Type != models.NodeKindSubFlow {
			continue
		}
		ref := n.Spec.String("flow_ref")
		domainID, flowID, ok := splitRef(ref)
		if !ok {
			continue
		}
		domain, known := domains[domainID]
		if !known {
			issues = append(issues, fc.issue(models.SeverityError, models.CategoryReferenceIntegrity,
				fmt.Sprintf("sub_flow node %q references unknown domain %q", n.ID, domainID), models.WithNodeID(n.ID)))
			continue
		}
		if !domain.HasFlow(flowID) {
			issues = append(issues, fc.issue(models.SeverityError, models.CategoryReferenceIntegrity,
				fmt.Sprintf("sub_flow node %q references unknown flow %q in domain %q", n.ID, flowID, domainID), models.WithNodeID(n.ID)))
		}
	}
	return issues
}

// splitRef splits a "domain/flow" reference on its first slash.
func splitRef(ref string) (domain, flow string, ok bool) {
	for i, r := range ref {
		if r == '/' {
			return ref[:i], ref[i+1:], true
		}
	}
	return "", "", false
}
