package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smilemakc/specvalidate/pkg/models"
)

// SystemContext bundles all the cross-domain inputs the system validator
// needs. Schemas, PagesConfig, PageSpecs, and FlowDocs are optional — the
// checks that depend on them are skipped when absent, matching spec.md
// §4.5's "when available" qualifiers.
type SystemContext struct {
	Domains     map[string]*models.DomainConfig
	Schemas     []models.SchemaFile
	PagesConfig *models.PagesConfig
	PageSpecs   map[string]*models.PageSpec
	FlowDocs    []*models.FlowDocument
}

const systemTargetID = "system"

func sysIssue(sev models.Severity, cat models.Category, msg string, opts ...models.IssueOption) models.ValidationIssue {
	return models.NewIssue(models.ScopeSystem, sev, cat, msg, opts...)
}

// ValidateSystem implements spec.md §4.5.
func ValidateSystem(ctx SystemContext) *models.ValidationResult {
	var issues []models.ValidationIssue

	issues = append(issues, eventWiring(ctx)...)
	issues = append(issues, eventNamingUniformity(ctx)...)
	issues = append(issues, portalTargets(ctx)...)
	issues = append(issues, schemaOwnership(ctx)...)
	issues = append(issues, pagesToFlows(ctx)...)
	issues = append(issues, navigationToPages(ctx)...)
	issues = append(issues, schemaFileAvailability(ctx)...)

	return models.NewResult(models.ScopeSystem, systemTargetID, issues)
}

type eventEndpoints struct {
	publishers map[string]map[string]bool // event -> domainIds
	consumers  map[string]map[string]bool
	pubPayload map[string]map[string]bool // event -> union of field names
	conPayload map[string]map[string]bool
}

func collectEvents(ctx SystemContext) eventEndpoints {
	ee := eventEndpoints{
		publishers: make(map[string]map[string]bool),
		consumers:  make(map[string]map[string]bool),
		pubPayload: make(map[string]map[string]bool),
		conPayload: make(map[string]map[string]bool),
	}

	addDomain := func(dst map[string]map[string]bool, event, domainID string) {
		if dst[event] == nil {
			dst[event] = make(map[string]bool)
		}
		dst[event][domainID] = true
	}
	addPayload := func(dst map[string]map[string]bool, event string, payload map[string]any) {
		if dst[event] == nil {
			dst[event] = make(map[string]bool)
		}
		for k := range payload {
			dst[event][k] = true
		}
	}

	for domainID, domain := range ctx.Domains {
		for _, w := range domain.PublishesEvents {
			addDomain(ee.publishers, w.Event, domainID)
			addPayload(ee.pubPayload, w.Event, w.Payload)
		}
		for _, w := range domain.ConsumesEvents {
			addDomain(ee.consumers, w.Event, domainID)
			addPayload(ee.conPayload, w.Event, w.Payload)
		}
	}
	return ee
}

func eventWiring(ctx SystemContext) []models.ValidationIssue {
	ee := collectEvents(ctx)
	var issues []models.ValidationIssue

	for _, event := range sortedEventNames(ee.consumers) {
		if len(ee.publishers[event]) == 0 {
			issues = append(issues, sysIssue(models.SeverityError, models.CategoryEventWiring,
				fmt.Sprintf("event %q is consumed but never published", event)))
		}
	}
	for _, event := range sortedEventNames(ee.publishers) {
		if len(ee.consumers[event]) == 0 {
			issues = append(issues, sysIssue(models.SeverityWarning, models.CategoryEventWiring,
				fmt.Sprintf("event %q is published but never consumed", event)))
		}
	}

	for _, event := range sortedEventNames(ee.publishers) {
		if len(ee.consumers[event]) == 0 {
			continue
		}
		pubFields := ee.pubPayload[event]
		for field := range ee.conPayload[event] {
			if !pubFields[field] {
				issues = append(issues, sysIssue(models.SeverityWarning, models.CategoryEventWiring,
					fmt.Sprintf("event %q consumer field %q is not present on any publisher", event, field)))
			}
		}
	}

	return issues
}

func sortedEventNames(m map[string]map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func eventNamingUniformity(ctx SystemContext) []models.ValidationIssue {
	ee := collectEvents(ctx)
	seenDot, seenCamel := false, false
	for event := range ee.publishers {
		if isDotNotation(event) {
			seenDot = true
		}
		if isCamelCase(event) {
			seenCamel = true
		}
	}
	for event := range ee.consumers {
		if isDotNotation(event) {
			seenDot = true
		}
		if isCamelCase(event) {
			seenCamel = true
		}
	}
	if seenDot && seenCamel {
		return []models.ValidationIssue{sysIssue(models.SeverityWarning, models.CategoryEventWiring,
			"events mix dot-notation and camelCase naming styles")}
	}
	return nil
}

func portalTargets(ctx SystemContext) []models.ValidationIssue {
	var issues []models.ValidationIssue
	for domainID, domain := range ctx.Domains {
		if domain.Layout == nil {
			continue
		}
		for target := range domain.Layout.Portals {
			if _, ok := ctx.Domains[target]; !ok {
				issues = append(issues, sysIssue(models.SeverityError, models.CategoryReferenceIntegrity,
					fmt.Sprintf("domain %q layout references unknown portal target %q", domainID, target),
					models.WithDomainID(domainID)))
			}
		}
	}
	return issues
}

func schemaOwnership(ctx SystemContext) []models.ValidationIssue {
	owners := make(map[string][]string)
	for domainID, domain := range ctx.Domains {
		for _, schema := range domain.OwnsSchemas {
			owners[schema] = append(owners[schema], domainID)
		}
	}

	var issues []models.ValidationIssue
	names := make([]string, 0, len(owners))
	for schema := range owners {
		names = append(names, schema)
	}
	sort.Strings(names)
	for _, schema := range names {
		if len(owners[schema]) > 1 {
			issues = append(issues, sysIssue(models.SeverityWarning, models.CategoryDomainConsistency,
				fmt.Sprintf("schema %q is owned by more than one domain: %s", schema, strings.Join(owners[schema], ", "))))
		}
	}
	return issues
}

func pagesToFlows(ctx SystemContext) []models.ValidationIssue {
	if ctx.PagesConfig == nil || ctx.PageSpecs == nil {
		return nil
	}

	valid := make(map[string]bool)
	for domainID, domain := range ctx.Domains {
		for _, f := range domain.Flows {
			valid[domainID+"/"+f.ID] = true
		}
	}

	var issues []models.ValidationIssue
	checkRef := func(pageID, ref string) {
		if ref == "" || !strings.Contains(ref, "/") {
			return
		}
		if !valid[ref] {
			issues = append(issues, sysIssue(models.SeverityWarning, models.CategoryReferenceIntegrity,
				fmt.Sprintf("page %q references unknown flow %q", pageID, ref)))
		}
	}

	pageIDs := make([]string, 0, len(ctx.PageSpecs))
	for id := range ctx.PageSpecs {
		pageIDs = append(pageIDs, id)
	}
	sort.Strings(pageIDs)

	for _, pageID := range pageIDs {
		page := ctx.PageSpecs[pageID]
		for _, section := range page.Sections {
			checkRef(pageID, section.DataSource)
		}
		for _, form := range page.Forms {
			checkRef(pageID, form.Submit.Flow)
		}
		if page.State != nil {
			for _, ref := range page.State.InitialFetch {
				checkRef(pageID, ref)
			}
		}
	}
	return issues
}

func navigationToPages(ctx SystemContext) []models.ValidationIssue {
	if ctx.PagesConfig == nil || ctx.PageSpecs == nil {
		return nil
	}
	var issues []models.ValidationIssue
	for _, item := range ctx.PagesConfig.Navigation.Items {
		if _, ok := ctx.PageSpecs[item.Page]; !ok {
			issues = append(issues, sysIssue(models.SeverityWarning, models.CategoryReferenceIntegrity,
				fmt.Sprintf("navigation item references unknown page %q", item.Page)))
		}
	}
	return issues
}

func schemaFileAvailability(ctx SystemContext) []models.ValidationIssue {
	if ctx.Schemas == nil || ctx.FlowDocs == nil {
		return nil
	}
	schemaNames := make(map[string]bool, len(ctx.Schemas))
	for _, s := range ctx.Schemas {
		schemaNames[strings.ToLower(s.Name)] = true
	}

	var issues []models.ValidationIssue
	reported := make(map[string]bool)
	for _, flow := range ctx.FlowDocs {
		for _, n := range flow.AllNodes() {
			if n.Type != models.NodeKindDataStore {
				continue
			}
			storeType := n.Spec.String("store_type")
			if storeType == "" {
				storeType = "database"
			}
			if storeType != "database" {
				continue
			}
			model := n.Spec.String("model")
			if model == "" || reported[model] {
				continue
			}
			if !schemaNames[strings.ToLower(model)] {
				reported[model] = true
				issues = append(issues, sysIssue(models.SeverityInfo, models.CategoryReferenceIntegrity,
					fmt.Sprintf("no schema file matches data_store model %q", model)))
			}
		}
	}
	return issues
}
