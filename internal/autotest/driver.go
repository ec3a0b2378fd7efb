package autotest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smilemakc/specvalidate/internal/config"
	"github.com/smilemakc/specvalidate/internal/logging"
	"github.com/smilemakc/specvalidate/internal/orchestrator"
	"github.com/smilemakc/specvalidate/internal/spec"
	"github.com/smilemakc/specvalidate/pkg/models"
	"github.com/smilemakc/specvalidate/pkg/validate"
)

// domainFlowLoader adapts a map of already-normalized flows, grouped by
// domain, into the orchestrator.DomainLoader interface the orchestrator
// expects (spec.md §4.6's "cross-store queries are plain read-only data").
type domainFlowLoader struct {
	flows map[string][]*models.FlowDocument
}

func (l *domainFlowLoader) LoadDomainFlows(domainID string) []*models.FlowDocument {
	return l.flows[domainID]
}

// Run walks cfg.ProjectPath, parses and normalizes every spec file, runs the
// full validator battery, and returns the two report documents described in
// spec.md §6. Nowhere in this pipeline does a single bad file abort the
// run: parse and normalize failures are recorded and skipped (spec.md §7).
func Run(cfg *config.Config, log *logging.Logger) (*CompatibilityReport, *QualityReport, error) {
	if log == nil {
		log = logging.Default()
	}

	log.WalkStarted(cfg.ProjectPath)
	files, err := spec.Walk(cfg.ProjectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", models.ErrProjectNotFound, cfg.ProjectPath)
	}

	filesByCategory := make(map[string]int, len(files))
	rawByPath := make(map[string]map[string]any, len(files))
	var parseFailures []ParseFailure

	for _, f := range files {
		filesByCategory[string(f.Category)]++

		raw, err := spec.ParseFile(f.Path)
		if err != nil {
			log.ParseFailed(f.Path, err)
			parseFailures = append(parseFailures, ParseFailure{Path: f.Path, Error: err.Error()})
			continue
		}
		rawByPath[f.Path] = raw
	}

	domains := make(map[string]*models.DomainConfig)
	for _, f := range files {
		if f.Category != spec.CategoryDomain {
			continue
		}
		if _, ok := rawByPath[f.Path]; !ok {
			continue // already recorded as a parse failure
		}
		cfgDomain, err := spec.LoadDomainConfig(f.Path)
		if err != nil {
			log.DomainConfigFailed(f.DomainID, err)
			continue
		}
		domains[f.DomainID] = cfgDomain
	}

	flowsByDomain := make(map[string][]*models.FlowDocument)
	var allFlows []*models.FlowDocument
	var normalizeDetails []NormalizeDetail
	var normalizeFailures []NormalizeFailure
	totalFlowFiles := 0

	for _, f := range files {
		if f.Category != spec.CategoryFlow {
			continue
		}
		totalFlowFiles++

		raw, parsed := rawByPath[f.Path]
		if !parsed {
			normalizeFailures = append(normalizeFailures, NormalizeFailure{
				Domain: f.DomainID, Flow: f.FlowID, Error: "skipped: parse failed",
			})
			normalizeDetails = append(normalizeDetails, NormalizeDetail{Domain: f.DomainID, Flow: f.FlowID, Success: false})
			continue
		}

		flowType := declaredFlowType(domains[f.DomainID], f.FlowID)
		doc, err := spec.Normalize(raw, f.DomainID, f.FlowID, flowType)
		if err != nil {
			log.NormalizeFailed(f.DomainID, f.FlowID, err)
			normalizeFailures = append(normalizeFailures, NormalizeFailure{Domain: f.DomainID, Flow: f.FlowID, Error: err.Error()})
			normalizeDetails = append(normalizeDetails, NormalizeDetail{Domain: f.DomainID, Flow: f.FlowID, Success: false})
			continue
		}

		normalizeDetails = append(normalizeDetails, NormalizeDetail{Domain: f.DomainID, Flow: f.FlowID, Success: true})
		flowsByDomain[f.DomainID] = append(flowsByDomain[f.DomainID], doc)
		allFlows = append(allFlows, doc)
	}

	var schemas []models.SchemaFile
	for _, f := range files {
		if f.Category == spec.CategorySchema {
			if _, ok := rawByPath[f.Path]; ok {
				schemas = append(schemas, spec.SchemaFileFromPath(f.Path))
			}
		}
	}

	pagesConfig, pageSpecs := loadPages(files, rawByPath)

	loader := &domainFlowLoader{flows: flowsByDomain}
	orch := orchestrator.New(domains, loader)

	domainResults := orch.ValidateAllDomains()
	systemResult := orch.ValidateSystem(validate.SystemContext{
		Domains:     domains,
		Schemas:     schemas,
		PagesConfig: pagesConfig,
		PageSpecs:   pageSpecs,
		FlowDocs:    allFlows,
	})
	flowResults := orch.AllFlowResults()

	coverage := ComputeCoverage(allFlows, flowResults, cfg.MinFlowsForCoveragePercent)

	totalErrors, totalWarnings, totalInfo := 0, 0, 0
	issuesByCategory := make(map[string]int)
	accumulate := func(r *models.ValidationResult) {
		if r == nil {
			return
		}
		totalErrors += r.ErrorCount
		totalWarnings += r.WarningCount
		totalInfo += r.InfoCount
		for _, issue := range r.Issues {
			issuesByCategory[string(issue.Category)]++
		}
	}
	for _, r := range flowResults {
		accumulate(r)
	}
	for _, r := range domainResults {
		accumulate(r)
	}
	accumulate(systemResult)

	qualityScore := QualityScore(coverage.Flows.Total, totalErrors, totalWarnings)

	generatedAt := time.Now().UTC().Format(time.RFC3339)

	compat := &CompatibilityReport{
		Report:      "tool-compatibility-report",
		GeneratedAt: generatedAt,
		Project:     cfg.ProjectPath,
		Summary: CompatibilitySummary{
			TotalFiles:      len(files),
			FilesByCategory: filesByCategory,
			Parse: ParseSummary{
				Success:        len(files) - len(parseFailures),
				Failed:         len(parseFailures),
				SuccessRatePct: successRate(len(files)-len(parseFailures), len(files)),
			},
			Normalize: NormalizeSummary{
				TotalFlows:     totalFlowFiles,
				Success:        len(allFlows),
				Failed:         totalFlowFiles - len(allFlows),
				SuccessRatePct: successRate(len(allFlows), totalFlowFiles),
			},
		},
		ParseFailures:         parseFailures,
		NormalizeFailures:     normalizeFailures,
		NormalizeDetails:      normalizeDetails,
		CompatibilityVerdict:  compatibilityVerdict(len(parseFailures), len(normalizeFailures)),
	}

	quality := &QualityReport{
		Report:      "spec-quality-report",
		GeneratedAt: generatedAt,
		Project:     cfg.ProjectPath,
		Summary: QualitySummary{
			QualityScore:     qualityScore,
			TotalIssues:      totalErrors + totalWarnings + totalInfo,
			Errors:           totalErrors,
			Warnings:         totalWarnings,
			Info:             totalInfo,
			IssuesByCategory: issuesByCategory,
		},
		Coverage:         coverage,
		FlowValidation:   resultsToReport(sortedResults(flowResults)),
		DomainValidation: resultsToReport(sortedResults(domainResults)),
		SystemValidation: resultToReport(systemResult),
		QualityVerdict:   QualityVerdict(qualityScore),
	}

	if cfg.WriteReports {
		if err := writeReport(cfg.ReportDir, compatibilityReportFileName, compat); err != nil {
			return compat, quality, err
		}
		if err := writeReport(cfg.ReportDir, qualityReportFileName, quality); err != nil {
			return compat, quality, err
		}
		log.ReportsWritten(cfg.ReportDir)
	}

	return compat, quality, nil
}

// declaredFlowType looks up the flow type a domain's own FlowEntry declares
// for flowID, falling back to traditional when the domain or entry is
// unknown (spec.md §3, FlowMeta.Type default).
func declaredFlowType(domain *models.DomainConfig, flowID string) models.FlowType {
	if domain == nil {
		return models.FlowTypeTraditional
	}
	for _, entry := range domain.Flows {
		if entry.ID == flowID && entry.Type != "" {
			return entry.Type
		}
	}
	return models.FlowTypeTraditional
}

func loadPages(files []spec.File, rawByPath map[string]map[string]any) (*models.PagesConfig, map[string]*models.PageSpec) {
	var pagesConfig *models.PagesConfig
	pageSpecs := make(map[string]*models.PageSpec)

	for _, f := range files {
		if f.Category != spec.CategoryUI {
			continue
		}
		if _, ok := rawByPath[f.Path]; !ok {
			continue
		}
		clean := filepath.ToSlash(f.Path)
		base := filepath.Base(clean)
		// spec.md §6 places the pages file flat at <P>/specs/pages.yaml; the
		// /ui/pages.yaml form is also accepted for corpora that nest it under ui/.
		if base == "pages.yaml" || base == "pages.yml" {
			cfg, err := spec.LoadPagesConfig(f.Path)
			if err == nil {
				pagesConfig = cfg
			}
			continue
		}
		page, err := spec.LoadPageSpec(f.Path)
		if err != nil {
			continue
		}
		id := page.ID
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(clean), filepath.Ext(clean))
		}
		pageSpecs[id] = page
	}

	if pagesConfig == nil && len(pageSpecs) == 0 {
		return nil, nil
	}
	return pagesConfig, pageSpecs
}

func successRate(success, total int) float64 {
	if total == 0 {
		return 100
	}
	return round2(float64(success) / float64(total) * 100)
}

func sortedResults(m map[string]*models.ValidationResult) []*models.ValidationResult {
	out := make([]*models.ValidationResult, 0, len(m))
	for _, key := range sortedKeys(m) {
		out = append(out, m[key])
	}
	return out
}

func writeReport(dir, name string, v any) error {
	data, err := spec.MarshalReport(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}
