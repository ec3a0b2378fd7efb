package validate

import (
	"fmt"

	"github.com/smilemakc/specvalidate/pkg/models"
)

// specCompleteness implements the per-node-kind required-field rules
// (spec.md §4.3 "Spec completeness").
func specCompleteness(fc *flowCtx) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, n := range fc.flow.AllNodes() {
		switch n.Type {
		case models.NodeKindTrigger:
			issues = append(issues, triggerSpec(fc, n)...)
		case models.NodeKindInput:
			issues = append(issues, inputSpec(fc, n)...)
		case models.NodeKindDecision:
			issues = append(issues, decisionSpec(fc, n)...)
		case models.NodeKindProcess:
			issues = append(issues, processSpec(fc, n)...)
		case models.NodeKindDataStore:
			issues = append(issues, dataStoreSpec(fc, n)...)
		case models.NodeKindServiceCall:
			issues = append(issues, serviceCallSpec(fc, n)...)
		case models.NodeKindIPCCall:
			issues = append(issues, ipcCallSpec(fc, n)...)
		case models.NodeKindEvent:
			issues = append(issues, eventSpec(fc, n)...)
		case models.NodeKindLoop:
			issues = append(issues, loopSpec(fc, n)...)
		case models.NodeKindParallel:
			issues = append(issues, parallelSpec(fc, n)...)
		case models.NodeKindSubFlow:
			issues = append(issues, subFlowSpec(fc, n)...)
		case models.NodeKindLLMCall:
			issues = append(issues, llmCallSpec(fc, n)...)
		case models.NodeKindCollection:
			issues = append(issues, collectionSpec(fc, n)...)
		case models.NodeKindParse:
			issues = append(issues, parseSpec(fc, n)...)
		case models.NodeKindCrypto:
			issues = append(issues, cryptoSpec(fc, n)...)
		case models.NodeKindBatch:
			issues = append(issues, batchSpec(fc, n)...)
		case models.NodeKindTransaction:
			issues = append(issues, transactionSpec(fc, n)...)
		case models.NodeKindCache:
			issues = append(issues, cacheSpec(fc, n)...)
		case models.NodeKindTransform:
			issues = append(issues, transformSpec(fc, n)...)
		case models.NodeKindDelay:
			issues = append(issues, delaySpec(fc, n)...)
		}
	}

	return issues
}

func triggerSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	if !n.Spec.StringOrList("event") {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("trigger node %q requires a non-empty %q field", n.ID, "event"), models.WithNodeID(n.ID)))
	}

	if isHTTPTrigger(n.Spec) {
		if n.Spec.String("method") == "" {
			issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
				fmt.Sprintf("HTTP trigger node %q requires %q", n.ID, "method"), models.WithNodeID(n.ID)))
		}
		if n.Spec.String("path") == "" {
			issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
				fmt.Sprintf("HTTP trigger node %q requires %q", n.ID, "path"), models.WithNodeID(n.ID)))
		}
	}
	return issues
}

var httpEventNames = map[string]bool{"http_request": true, "HTTP": true, "api": true}
var httpSourceNames = map[string]bool{"http": true, "api": true}

// isHTTPTrigger reports whether a trigger's spec marks it as HTTP-driven,
// either via its event name or an explicit source field.
func isHTTPTrigger(spec models.SpecPayload) bool {
	if httpEventNames[spec.String("event")] {
		return true
	}
	for _, v := range spec.Slice("event") {
		if s, ok := v.(string); ok && httpEventNames[s] {
			return true
		}
	}
	return httpSourceNames[spec.String("source")]
}

func inputSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	for _, raw := range n.Spec.Slice("fields") {
		field, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		typ, _ := field["type"].(string)
		if typ == "" {
			name, _ := field["name"].(string)
			issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
				fmt.Sprintf("input node %q field %q requires a non-empty %q", n.ID, name, "type"), models.WithNodeID(n.ID)))
		}
	}
	return issues
}

func decisionSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	condition := n.Spec.String("condition")
	if condition == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("decision node %q requires a non-empty %q", n.ID, "condition"), models.WithNodeID(n.ID)))
		return issues
	}
	if warn := checkExprSyntax(condition); warn != "" {
		issues = append(issues, fc.issue(models.SeverityWarning, models.CategorySpecCompleteness,
			fmt.Sprintf("decision node %q condition does not parse as an expression: %s", n.ID, warn), models.WithNodeID(n.ID)))
	}
	return issues
}

func processSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	if n.Spec.String("description") == "" && n.Spec.String("action") == "" {
		return []models.ValidationIssue{fc.issue(models.SeverityWarning, models.CategorySpecCompleteness,
			fmt.Sprintf("process node %q has neither a description nor an action", n.ID), models.WithNodeID(n.ID))}
	}
	return nil
}

func dataStoreSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	op := n.Spec.String("operation")
	if op == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("data_store node %q requires %q", n.ID, "operation"), models.WithNodeID(n.ID)))
	}

	storeType := n.Spec.String("store_type")
	if storeType == "" {
		storeType = "database"
	}

	memoryOnlyOps := map[string]bool{"get": true, "set": true, "merge": true, "reset": true, "subscribe": true, "update_where": true}
	if memoryOnlyOps[op] && storeType != "memory" {
		issues = append(issues, fc.issue(models.SeverityWarning, models.CategorySpecCompleteness,
			fmt.Sprintf("data_store node %q uses operation %q which expects store_type \"memory\", got %q", n.ID, op, storeType), models.WithNodeID(n.ID)))
	}

	switch storeType {
	case "database":
		if n.Spec.String("model") == "" {
			issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
				fmt.Sprintf("data_store node %q (database) requires %q", n.ID, "model"), models.WithNodeID(n.ID)))
		}
	case "filesystem":
		if n.Spec.String("path") == "" {
			issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
				fmt.Sprintf("data_store node %q (filesystem) requires %q", n.ID, "path"), models.WithNodeID(n.ID)))
		}
	case "memory":
		if n.Spec.String("store") == "" {
			issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
				fmt.Sprintf("data_store node %q (memory) requires %q", n.ID, "store"), models.WithNodeID(n.ID)))
		}
		if op != "reset" && n.Spec.String("selector") == "" {
			issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
				fmt.Sprintf("data_store node %q (memory) requires %q", n.ID, "selector"), models.WithNodeID(n.ID)))
		}
		if op == "update_where" {
			if n.Spec.String("predicate") == "" {
				issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
					fmt.Sprintf("data_store node %q (update_where) requires a non-empty %q", n.ID, "predicate"), models.WithNodeID(n.ID)))
			}
			if n.Spec.String("patch") == "" {
				issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
					fmt.Sprintf("data_store node %q (update_where) requires a non-empty %q", n.ID, "patch"), models.WithNodeID(n.ID)))
			}
		}
	}

	return issues
}

func serviceCallSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	if n.Spec.String("method") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("service_call node %q requires %q", n.ID, "method"), models.WithNodeID(n.ID)))
	}
	if n.Spec.String("url") == "" && !n.Spec.Has("integration") {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("service_call node %q requires %q unless %q is set", n.ID, "url", "integration"), models.WithNodeID(n.ID)))
	}
	return issues
}

func ipcCallSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	if n.Spec.String("command") == "" {
		return []models.ValidationIssue{fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("ipc_call node %q requires %q", n.ID, "command"), models.WithNodeID(n.ID))}
	}
	return nil
}

func eventSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	direction := n.Spec.String("direction")
	if direction != "emit" && direction != "consume" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("event node %q requires %q to be %q or %q", n.ID, "direction", "emit", "consume"), models.WithNodeID(n.ID)))
	}
	if n.Spec.String("event_name") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("event node %q requires a non-empty %q", n.ID, "event_name"), models.WithNodeID(n.ID)))
	}
	return issues
}

func loopSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	if n.Spec.String("collection") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("loop node %q requires %q", n.ID, "collection"), models.WithNodeID(n.ID)))
	}
	if n.Spec.String("iterator") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("loop node %q requires %q", n.ID, "iterator"), models.WithNodeID(n.ID)))
	}
	return issues
}

func parallelSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	branches := n.Spec.Slice("branches")
	if len(branches) < 2 {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("parallel node %q requires at least 2 branches", n.ID), models.WithNodeID(n.ID)))
	}
	if n.Spec.String("join") == "n_of" && n.Spec.Int("join_count") < 1 {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("parallel node %q with join \"n_of\" requires %q", n.ID, "join_count"), models.WithNodeID(n.ID)))
	}
	return issues
}

func subFlowSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	ref := n.Spec.String("flow_ref")
	if ref == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("sub_flow node %q requires %q", n.ID, "flow_ref"), models.WithNodeID(n.ID)))
		return issues
	}
	if !containsSlash(ref) {
		issues = append(issues, fc.issue(models.SeverityWarning, models.CategorySpecCompleteness,
			fmt.Sprintf("sub_flow node %q flow_ref %q does not look like \"domain/flow\"", n.ID, ref), models.WithNodeID(n.ID)))
	}

	contract := n.Spec.Map("contract")
	if contract == nil {
		return issues
	}
	inputNames := stringSet(contract["inputs"])
	outputNames := stringSet(contract["outputs"])
	if inputNames != nil {
		for key := range n.Spec.Map("input_mapping") {
			if !inputNames[key] {
				issues = append(issues, fc.issue(models.SeverityWarning, models.CategorySpecCompleteness,
					fmt.Sprintf("sub_flow node %q input_mapping key %q is not declared in the contract inputs", n.ID, key), models.WithNodeID(n.ID)))
			}
		}
	}
	if outputNames != nil {
		for key := range n.Spec.Map("output_mapping") {
			if !outputNames[key] {
				issues = append(issues, fc.issue(models.SeverityWarning, models.CategorySpecCompleteness,
					fmt.Sprintf("sub_flow node %q output_mapping key %q is not declared in the contract outputs", n.ID, key), models.WithNodeID(n.ID)))
			}
		}
	}
	return issues
}

func llmCallSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	if n.Spec.String("model") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("llm_call node %q requires %q", n.ID, "model"), models.WithNodeID(n.ID)))
	}
	if n.Spec.String("prompt_template") == "" {
		issues = append(issues, fc.issue(models.SeverityWarning, models.CategorySpecCompleteness,
			fmt.Sprintf("llm_call node %q has an empty %q", n.ID, "prompt_template"), models.WithNodeID(n.ID)))
	}
	return issues
}

func collectionSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	if n.Spec.String("operation") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("collection node %q requires %q", n.ID, "operation"), models.WithNodeID(n.ID)))
	}
	if n.Spec.String("input") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("collection node %q requires %q", n.ID, "input"), models.WithNodeID(n.ID)))
	}
	return issues
}

func parseSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	if n.Spec.String("format") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("parse node %q requires %q", n.ID, "format"), models.WithNodeID(n.ID)))
	}
	if n.Spec.String("input") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("parse node %q requires %q", n.ID, "input"), models.WithNodeID(n.ID)))
	}

	strategy := n.Spec.Map("strategy")
	if strategy == nil {
		return issues
	}
	selectors, ok := strategy["selectors"].([]any)
	if !ok {
		return issues
	}
	for _, raw := range selectors {
		sel, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := sel["name"].(string)
		css, _ := sel["css"].(string)
		if name == "" || css == "" {
			issues = append(issues, fc.issue(models.SeverityWarning, models.CategorySpecCompleteness,
				fmt.Sprintf("parse node %q has a selector missing %q or %q", n.ID, "name", "css"), models.WithNodeID(n.ID)))
		}
	}
	return issues
}

var cryptoKeySourceOps = map[string]bool{"encrypt": true, "decrypt": true, "sign": true}
var validKeySources = map[string]bool{"env": true, "vault": true}

func cryptoSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	op := n.Spec.String("operation")
	if op == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("crypto node %q requires %q", n.ID, "operation"), models.WithNodeID(n.ID)))
	}
	if n.Spec.String("algorithm") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("crypto node %q requires %q", n.ID, "algorithm"), models.WithNodeID(n.ID)))
	}
	if cryptoKeySourceOps[op] && !validKeySources[n.Spec.String("key_source")] {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("crypto node %q with operation %q requires key_source \"env\" or \"vault\"", n.ID, op), models.WithNodeID(n.ID)))
	}
	return issues
}

func batchSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	if n.Spec.String("input") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("batch node %q requires %q", n.ID, "input"), models.WithNodeID(n.ID)))
	}
	template := n.Spec.Map("operation_template")
	if template == nil || template["type"] == nil || template["type"] == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("batch node %q requires %q", n.ID, "operation_template.type"), models.WithNodeID(n.ID)))
	}
	return issues
}

func transactionSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	if len(n.Spec.Slice("steps")) < 2 {
		return []models.ValidationIssue{fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("transaction node %q requires at least 2 steps", n.ID), models.WithNodeID(n.ID))}
	}
	return nil
}

func cacheSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	if n.Spec.String("key") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("cache node %q requires %q", n.ID, "key"), models.WithNodeID(n.ID)))
	}
	if n.Spec.String("store") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("cache node %q requires %q", n.ID, "store"), models.WithNodeID(n.ID)))
	}
	return issues
}

func transformSpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	var issues []models.ValidationIssue
	if n.Spec.String("input_schema") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("transform node %q requires %q", n.ID, "input_schema"), models.WithNodeID(n.ID)))
	}
	if n.Spec.String("output_schema") == "" {
		issues = append(issues, fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("transform node %q requires %q", n.ID, "output_schema"), models.WithNodeID(n.ID)))
	}
	return issues
}

func delaySpec(fc *flowCtx, n *models.Node) []models.ValidationIssue {
	if !n.Spec.Has("min_ms") {
		return []models.ValidationIssue{fc.issue(models.SeverityError, models.CategorySpecCompleteness,
			fmt.Sprintf("delay node %q requires %q", n.ID, "min_ms"), models.WithNodeID(n.ID))}
	}
	return nil
}

func containsSlash(s string) bool {
	for _, r := range s {
		if r == '/' {
			return true
		}
	}
	return false
}

func stringSet(v any) map[string]bool {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make(map[string]bool, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out[s] = true
		}
	}
	return out
}
