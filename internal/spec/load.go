package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/smilemakc/specvalidate/pkg/models"
)

// ParseFile reads path and unmarshals it into a generic raw document. A
// parse failure is returned as an error for the caller to record as a
// ParseResult (spec.md §7); it never aborts the walk.
func ParseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ParseError{Path: path, Err: err}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &models.ParseError{Path: path, Err: err}
	}
	return raw, nil
}

// LoadDomainConfig parses a domain.yaml file directly into a DomainConfig;
// its shape matches the wire format one-to-one (spec.md §3).
func LoadDomainConfig(path string) (*models.DomainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ParseError{Path: path, Err: err}
	}

	var cfg models.DomainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &models.ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// LoadPagesConfig parses specs/pages.yaml's navigation tree.
func LoadPagesConfig(path string) (*models.PagesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ParseError{Path: path, Err: err}
	}
	var cfg models.PagesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &models.ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// LoadPageSpec parses a single page specification file under specs/ui/pages.
func LoadPageSpec(path string) (*models.PageSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ParseError{Path: path, Err: err}
	}
	var page models.PageSpec
	if err := yaml.Unmarshal(data, &page); err != nil {
		return nil, &models.ParseError{Path: path, Err: err}
	}
	return &page, nil
}

// SchemaFileFromPath derives a SchemaFile's declared name from its filename,
// stripping the yaml/yml extension.
func SchemaFileFromPath(path string) models.SchemaFile {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			base = path[i+1:]
			break
		}
	}
	for _, suffix := range []string{".yaml", ".yml"} {
		if len(base) > len(suffix) && base[len(base)-len(suffix):] == suffix {
			return models.SchemaFile{Name: base[:len(base)-len(suffix)]}
		}
	}
	return models.SchemaFile{Name: base}
}

// MarshalReport serializes v (one of the two report document shapes) to
// YAML for writing to the project root.
func MarshalReport(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return out, nil
}
