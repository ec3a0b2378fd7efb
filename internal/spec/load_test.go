package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_Success(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: orders\ncount: 3\n"), 0o644))

	raw, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "orders", raw["name"])
	assert.Equal(t, 3, raw["count"])
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadDomainConfig(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "domain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: orders
owns_schemas:
  - Order
flows:
  - id: create
    name: Create
    type: traditional
`), 0o644))

	cfg, err := LoadDomainConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "orders", cfg.Name)
	require.Len(t, cfg.Flows, 1)
	assert.Equal(t, "create", cfg.Flows[0].ID)
}

func TestSchemaFileFromPath(t *testing.T) {
	assert.Equal(t, "Order", SchemaFileFromPath("/a/b/Order.yaml").Name)
	assert.Equal(t, "Order", SchemaFileFromPath("/a/b/Order.yml").Name)
	assert.Equal(t, "Order", SchemaFileFromPath("Order").Name)
}

func TestMarshalReport(t *testing.T) {
	out, err := MarshalReport(map[string]any{"report": "test"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "report: test")
}
