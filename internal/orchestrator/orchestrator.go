// Package orchestrator caches validation results and answers scoped
// queries over them, grounded on the teacher's executor registry
// (sync.RWMutex-guarded map keyed by a string identifier) repurposed here
// as a result cache instead of an executor lookup table.
package orchestrator

import (
	"sync"

	"github.com/smilemakc/specvalidate/pkg/models"
	"github.com/smilemakc/specvalidate/pkg/validate"
)

// DomainLoader loads the normalized flow documents belonging to a domain.
// The orchestrator treats this as an external collaborator (spec.md §9
// "cross-store queries are plain read-only data passed into validator
// functions"); a failure to load any single flow is absorbed, never
// propagated.
type DomainLoader interface {
	LoadDomainFlows(domainID string) []*models.FlowDocument
}

// Orchestrator maintains the three result caches described in spec.md §4.6
// and serves scoped queries over them. It has no hidden state beyond the
// three maps; an application constructs one instance per session rather
// than relying on a process-wide global (spec.md §9).
type Orchestrator struct {
	mu            sync.RWMutex
	flowResults   map[string]*models.ValidationResult // "domain/flow" -> result
	domainResults map[string]*models.ValidationResult // domainId -> result
	systemResult  *models.ValidationResult

	domains map[string]*models.DomainConfig
	loader  DomainLoader
}

// New constructs an empty Orchestrator over the given domain configs. loader
// may be nil if validateDomainFlows/validateAllDomains are never called.
func New(domains map[string]*models.DomainConfig, loader DomainLoader) *Orchestrator {
	return &Orchestrator{
		flowResults:   make(map[string]*models.ValidationResult),
		domainResults: make(map[string]*models.ValidationResult),
		domains:       domains,
		loader:        loader,
	}
}

// ValidateCurrentFlow re-runs flow validation for a single flow document and
// stores the result under its "domain/flow" key.
func (o *Orchestrator) ValidateCurrentFlow(flow *models.FlowDocument) *models.ValidationResult {
	result := validate.ValidateFlow(flow, o.domains)

	o.mu.Lock()
	o.flowResults[flow.Key()] = result
	o.mu.Unlock()

	return result
}

// ValidateDomain re-runs domain validation without flow docs and stores the
// result by domain id.
func (o *Orchestrator) ValidateDomain(domainID string) *models.ValidationResult {
	domain, ok := o.domains[domainID]
	if !ok {
		return nil
	}
	result := validate.ValidateDomain(domainID, domain, o.domains, nil)

	o.mu.Lock()
	o.domainResults[domainID] = result
	o.mu.Unlock()

	return result
}

// ValidateDomainFlows validates every flow document the loader returns for
// the domain (the loader supplies already-normalized documents, so a flow it
// could not load or normalize is simply absent), then validates the domain
// with those flow docs. The domain result's counts are
// replaced by the sum of its own issues and all its flows' issues.
func (o *Orchestrator) ValidateDomainFlows(domainID string) *models.ValidationResult {
	domain, ok := o.domains[domainID]
	if !ok || o.loader == nil {
		return o.ValidateDomain(domainID)
	}

	flows := o.loader.LoadDomainFlows(domainID)

	var flowResults []*models.ValidationResult
	for _, flow := range flows {
		flowResults = append(flowResults, o.ValidateCurrentFlow(flow))
	}

	domainResult := validate.ValidateDomain(domainID, domain, o.domains, flows)

	merged := domainResult.Merge()
	errCount, warnCount, infoCount := domainResult.ErrorCount, domainResult.WarningCount, domainResult.InfoCount
	for _, fr := range flowResults {
		errCount += fr.ErrorCount
		warnCount += fr.WarningCount
		infoCount += fr.InfoCount
	}
	merged.ErrorCount = errCount
	merged.WarningCount = warnCount
	merged.InfoCount = infoCount
	merged.IsValid = merged.ErrorCount == 0

	o.mu.Lock()
	o.domainResults[domainID] = merged
	o.mu.Unlock()

	return merged
}

// ValidateAllDomains runs ValidateDomainFlows for every known domain. The
// returned map's iteration order is not meaningful; callers needing
// deterministic output should sort the domain ids themselves.
func (o *Orchestrator) ValidateAllDomains() map[string]*models.ValidationResult {
	out := make(map[string]*models.ValidationResult, len(o.domains))
	for domainID := range o.domains {
		out[domainID] = o.ValidateDomainFlows(domainID)
	}
	return out
}

// ValidateSystem runs system validation over the current domain configs and
// caches the single system result.
func (o *Orchestrator) ValidateSystem(ctx validate.SystemContext) *models.ValidationResult {
	if ctx.Domains == nil {
		ctx.Domains = o.domains
	}
	result := validate.ValidateSystem(ctx)

	o.mu.Lock()
	o.systemResult = result
	o.mu.Unlock()

	return result
}

// GetNodeIssues filters the cached result for flowKey down to the issues
// tagged with nodeID.
func (o *Orchestrator) GetNodeIssues(flowKey, nodeID string) []models.ValidationIssue {
	o.mu.RLock()
	result, ok := o.flowResults[flowKey]
	o.mu.RUnlock()
	if !ok {
		return nil
	}
	return result.NodeIssues(nodeID)
}

// ImplementGate is the aggregated answer to "is this flow ready to
// implement" (spec.md §9 Glossary).
type ImplementGate struct {
	CanImplement bool
	HasWarnings  bool
}

// CheckImplementGate aggregates the cached results for a flow, its domain,
// and the system as a whole.
func (o *Orchestrator) CheckImplementGate(flowKey, domainID string) ImplementGate {
	o.mu.RLock()
	flowResult := o.flowResults[flowKey]
	domainResult := o.domainResults[domainID]
	systemResult := o.systemResult
	o.mu.RUnlock()

	errCount, warnCount := 0, 0
	for _, r := range []*models.ValidationResult{flowResult, domainResult, systemResult} {
		if r == nil {
			continue
		}
		errCount += r.ErrorCount
		warnCount += r.WarningCount
	}

	return ImplementGate{
		CanImplement: errCount == 0,
		HasWarnings:  warnCount > 0,
	}
}

// AllFlowResults returns a copy of the cached per-flow results, keyed by
// "domain/flow". Used by report generators that need every cached result at
// once rather than one scoped lookup at a time.
func (o *Orchestrator) AllFlowResults() map[string]*models.ValidationResult {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[string]*models.ValidationResult, len(o.flowResults))
	for k, v := range o.flowResults {
		out[k] = v
	}
	return out
}

// AllDomainResults returns a copy of the cached per-domain results.
func (o *Orchestrator) AllDomainResults() map[string]*models.ValidationResult {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[string]*models.ValidationResult, len(o.domainResults))
	for k, v := range o.domainResults {
		out[k] = v
	}
	return out
}

// SystemResult returns the cached system-scope result, or nil if
// ValidateSystem has not run yet.
func (o *Orchestrator) SystemResult() *models.ValidationResult {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.systemResult
}

// Reset clears all three result caches.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.flowResults = make(map[string]*models.ValidationResult)
	o.domainResults = make(map[string]*models.ValidationResult)
	o.systemResult = nil
}
