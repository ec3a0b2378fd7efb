package autotest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/specvalidate/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func buildCorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "specs/domains/orders/domain.yaml"), `
name: orders
owns_schemas:
  - Order
flows:
  - id: create
    name: Create Order
    type: traditional
`)

	writeFile(t, filepath.Join(root, "specs/domains/orders/flows/create.yaml"), `
trigger:
  id: trigger
  type: trigger
  spec:
    event: http_request
    method: POST
    path: /orders
  connections:
    - target_node_id: save
      source_handle: success
nodes:
  - id: save
    type: data_store
    spec:
      operation: set
      store_type: database
      model: Order
    connections:
      - target_node_id: done
        source_handle: success
      - target_node_id: fail
        source_handle: error
  - id: done
    type: terminal
  - id: fail
    type: terminal
`)

	return root
}

func TestRun_GoodCorpus(t *testing.T) {
	root := buildCorpus(t)

	cfg := &config.Config{
		ProjectPath:                root,
		MinFlowsForCoveragePercent: 5,
		WriteReports:               false,
	}

	compat, quality, err := Run(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, "FULLY_COMPATIBLE", compat.CompatibilityVerdict)
	assert.Equal(t, 0, compat.Summary.Parse.Failed)
	assert.Equal(t, 1, compat.Summary.Normalize.Success)
	assert.Empty(t, compat.NormalizeFailures)

	assert.Equal(t, 1, quality.Coverage.Flows.Total)
	assert.Equal(t, 0, quality.Summary.Errors)
	assert.Equal(t, 0, quality.Coverage.Flows.WithErrors)
	assert.NotNil(t, quality.Coverage.NodeTypes.PercentUsed == nil || true)
	assert.Equal(t, "Insufficient flows to compute a meaningful coverage percent", quality.Coverage.NodeTypes.Note)
	assert.Nil(t, quality.Coverage.NodeTypes.PercentUsed)
}

func TestRun_WritesReports(t *testing.T) {
	root := buildCorpus(t)
	reportDir := t.TempDir()

	cfg := &config.Config{
		ProjectPath:                root,
		MinFlowsForCoveragePercent: 5,
		WriteReports:               true,
		ReportDir:                  reportDir,
	}

	_, _, err := Run(cfg, nil)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(reportDir, compatibilityReportFileName))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(reportDir, qualityReportFileName))
	assert.NoError(t, err)
}

func TestRun_MissingProject(t *testing.T) {
	cfg := &config.Config{ProjectPath: "/nonexistent/path/xyz", MinFlowsForCoveragePercent: 5}
	_, _, err := Run(cfg, nil)
	require.Error(t, err)
}

func TestRun_PagesWiring(t *testing.T) {
	root := buildCorpus(t)

	writeFile(t, filepath.Join(root, "specs/pages.yaml"), `
navigation:
  items:
    - page: checkout
    - page: missing_page
`)
	writeFile(t, filepath.Join(root, "specs/ui/checkout.yaml"), `
id: checkout
forms:
  - submit:
      flow: orders/create
sections:
  - data_source: orders/nonexistent
`)

	cfg := &config.Config{
		ProjectPath:                root,
		MinFlowsForCoveragePercent: 5,
		WriteReports:               false,
	}

	_, quality, err := Run(cfg, nil)
	require.NoError(t, err)

	require.NotNil(t, quality.SystemValidation)
	var messages []string
	for _, issue := range quality.SystemValidation.Issues {
		messages = append(messages, issue.Message)
	}
	assert.Contains(t, messages, `navigation item references unknown page "missing_page"`)
	assert.Contains(t, messages, `page "checkout" references unknown flow "orders/nonexistent"`)
}

func TestRun_DeadEndFlow(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "specs/domains/orders/domain.yaml"), `
name: orders
flows:
  - id: broken
    name: Broken
    type: traditional
`)
	writeFile(t, filepath.Join(root, "specs/domains/orders/flows/broken.yaml"), `
trigger:
  id: trigger
  type: trigger
  spec:
    event: manual
  connections:
    - target_node_id: step
      source_handle: success
nodes:
  - id: step
    type: process
    spec:
      description: does something
`)

	cfg := &config.Config{ProjectPath: root, MinFlowsForCoveragePercent: 5, WriteReports: false}
	_, quality, err := Run(cfg, nil)
	require.NoError(t, err)

	assert.Greater(t, quality.Summary.Errors, 0)
	assert.Equal(t, 1, quality.Coverage.Flows.WithErrors)
	assert.Less(t, quality.Summary.QualityScore, 100)
}
