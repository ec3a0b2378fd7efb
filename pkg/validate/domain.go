package validate

import (
	"fmt"
	"strings"

	"github.com/smilemakc/specvalidate/pkg/models"
)

type domainCtx struct {
	domainID string
}

func (dc *domainCtx) issue(sev models.Severity, cat models.Category, msg string, opts ...models.IssueOption) models.ValidationIssue {
	base := append([]models.IssueOption{models.WithDomainID(dc.domainID)}, opts...)
	return models.NewIssue(models.ScopeDomain, sev, cat, msg, base...)
}

// ValidateDomain implements spec.md §4.4. allDomains is the full set of
// known domain configs (used for the cross-domain schema-ownership check);
// flows is the set of already-normalized flow documents belonging to this
// domain, or nil when the caller only wants the config-level checks
// (spec.md's validateDomain vs validateDomainFlows distinction, §4.6).
func ValidateDomain(domainID string, domain *models.DomainConfig, allDomains map[string]*models.DomainConfig, flows []*models.FlowDocument) *models.ValidationResult {
	dc := &domainCtx{domainID: domainID}
	var issues []models.ValidationIssue

	issues = append(issues, duplicateFlowIDs(dc, domain)...)
	issues = append(issues, duplicateEventGroups(dc, domain)...)
	issues = append(issues, eventGroupReferences(dc, domain, flows)...)

	if flows != nil {
		issues = append(issues, duplicateHTTPEndpoints(dc, flows)...)
		issues = append(issues, schemaReferences(dc, allDomains, flows)...)
		issues = append(issues, memoryStoreReferences(dc, allDomains, flows)...)
	}

	return models.NewResult(models.ScopeDomain, domainID, issues)
}

func duplicateFlowIDs(dc *domainCtx, domain *models.DomainConfig) []models.ValidationIssue {
	var issues []models.ValidationIssue
	seen := make(map[string]bool)
	for _, f := range domain.Flows {
		if seen[f.ID] {
			issues = append(issues, dc.issue(models.SeverityError, models.CategoryDomainConsistency,
				fmt.Sprintf("duplicate flow id %q in domain %q", f.ID, dc.domainID)))
			continue
		}
		seen[f.ID] = true
	}
	return issues
}

func duplicateEventGroups(dc *domainCtx, domain *models.DomainConfig) []models.ValidationIssue {
	var issues []models.ValidationIssue
	seen := make(map[string]bool)
	for _, g := range domain.EventGroups {
		if seen[g.Name] {
			issues = append(issues, dc.issue(models.SeverityError, models.CategoryDomainConsistency,
				fmt.Sprintf("duplicate event_group name %q in domain %q", g.Name, dc.domainID)))
			continue
		}
		seen[g.Name] = true
	}
	return issues
}

const eventGroupTriggerPrefix = "event_group:"

func eventGroupReferences(dc *domainCtx, domain *models.DomainConfig, flows []*models.FlowDocument) []models.ValidationIssue {
	var issues []models.ValidationIssue
	for _, flow := range flows {
		if flow.Trigger == nil {
			continue
		}
		event := flow.Trigger.Spec.String("event")
		if !strings.HasPrefix(event, eventGroupTriggerPrefix) {
			continue
		}
		name := strings.TrimPrefix(event, eventGroupTriggerPrefix)
		if !domain.HasEventGroup(name) {
			issues = append(issues, dc.issue(models.SeverityError, models.CategoryReferenceIntegrity,
				fmt.Sprintf("flow %q triggers on event_group %q which is not declared in domain %q", flow.Flow.ID, name, dc.domainID),
				models.WithFlowID(flow.Flow.ID)))
		}
	}
	return issues
}

func duplicateHTTPEndpoints(dc *domainCtx, flows []*models.FlowDocument) []models.ValidationIssue {
	var issues []models.ValidationIssue
	seen := make(map[string]string) // "METHOD path" -> flow id
	for _, flow := range flows {
		if flow.Trigger == nil || !isHTTPTrigger(flow.Trigger.Spec) {
			continue
		}
		method := normalizeHTTPMethod(flow.Trigger.Spec.String("method"))
		path := flow.Trigger.Spec.String("path")
		key := method + " " + path
		if prior, ok := seen[key]; ok {
			issues = append(issues, dc.issue(models.SeverityError, models.CategoryReferenceIntegrity,
				fmt.Sprintf("duplicate HTTP endpoint %q used by flows %q and %q", key, prior, flow.Flow.ID),
				models.WithFlowID(flow.Flow.ID)))
			continue
		}
		seen[key] = flow.Flow.ID
	}
	return issues
}

func schemaReferences(dc *domainCtx, allDomains map[string]*models.DomainConfig, flows []*models.FlowDocument) []models.ValidationIssue {
	owned := make(map[string]bool)
	for _, d := range allDomains {
		for _, s := range d.OwnsSchemas {
			owned[s] = true
		}
	}

	var issues []models.ValidationIssue
	for _, flow := range flows {
		for _, n := range flow.AllNodes() {
			if n.Type != models.NodeKindDataStore {
				continue
			}
			storeType := n.Spec.String("store_type")
			if storeType == "" {
				storeType = "database"
			}
			model := n.Spec.String("model")
			if storeType == "database" && model != "" && !owned[model] {
				issues = append(issues, dc.issue(models.SeverityWarning, models.CategoryReferenceIntegrity,
					fmt.Sprintf("data_store node %q references schema %q which no domain owns", n.ID, model),
					models.WithFlowID(flow.Flow.ID), models.WithNodeID(n.ID)))
			}
		}
	}
	return issues
}

func memoryStoreReferences(dc *domainCtx, allDomains map[string]*models.DomainConfig, flows []*models.FlowDocument) []models.ValidationIssue {
	declared := make(map[string]bool)
	for _, d := range allDomains {
		for _, s := range d.Stores {
			declared[s.Name] = true
		}
	}

	var issues []models.ValidationIssue
	for _, flow := range flows {
		for _, n := range flow.AllNodes() {
			if n.Type != models.NodeKindDataStore {
				continue
			}
			if n.Spec.String("store_type") != "memory" {
				continue
			}
			store := n.Spec.String("store")
			if store != "" && !declared[store] {
				issues = append(issues, dc.issue(models.SeverityWarning, models.CategoryReferenceIntegrity,
					fmt.Sprintf("data_store node %q references memory store %q which is not declared in any domain", n.ID, store),
					models.WithFlowID(flow.Flow.ID), models.WithNodeID(n.ID)))
			}
		}
	}
	return issues
}
