// Package spec loads the on-disk specification corpus: a file-discovery
// walker that classifies every YAML file under a project's specs/ tree, and
// thin YAML-unmarshal helpers for the wire shapes the driver consumes.
// Grounded on the filesystem layout in spec.md §6 and the path-based
// classification style used by the pack's CUE/YAML-driven spec loaders.
package spec

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Category classifies a discovered file by its path under <project>/specs.
type Category string

const (
	CategoryFlow           Category = "flow"
	CategoryDomain         Category = "domain"
	CategorySchema         Category = "schema"
	CategorySystem         Category = "system"
	CategoryConfig         Category = "config"
	CategoryUI             Category = "ui"
	CategoryInfrastructure Category = "infrastructure"
	CategoryShared         Category = "shared"
	CategoryOther          Category = "other"
)

// File is a single discovered spec file, classified and (for flows) tagged
// with the domain/flow identity implied by its path.
type File struct {
	Path     string
	Category Category
	DomainID string
	FlowID   string
}

var flowPathPattern = regexp.MustCompile(`^domains/([^/]+)/flows/([^/]+)\.ya?ml$`)
var domainPathPattern = regexp.MustCompile(`^domains/([^/]+)/domain\.ya?ml$`)

// Walk walks <projectRoot>/specs, skipping hidden directories and
// node_modules, and classifies every yaml/yml file it finds (spec.md §4.7).
func Walk(projectRoot string) ([]File, error) {
	root := filepath.Join(projectRoot, "specs")

	var files []File
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		files = append(files, classify(rel, path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func classify(rel, fullPath string) File {
	if m := flowPathPattern.FindStringSubmatch(rel); m != nil {
		return File{Path: fullPath, Category: CategoryFlow, DomainID: m[1], FlowID: m[2]}
	}
	if m := domainPathPattern.FindStringSubmatch(rel); m != nil {
		return File{Path: fullPath, Category: CategoryDomain, DomainID: m[1]}
	}
	switch {
	case strings.HasPrefix(rel, "schemas/"):
		return File{Path: fullPath, Category: CategorySchema}
	case rel == "system.yaml" || rel == "system.yml":
		return File{Path: fullPath, Category: CategorySystem}
	case rel == "config.yaml" || rel == "config.yml" || rel == "architecture.yaml" || rel == "architecture.yml":
		return File{Path: fullPath, Category: CategoryConfig}
	case strings.HasPrefix(rel, "ui/"):
		return File{Path: fullPath, Category: CategoryUI}
	case rel == "pages.yaml" || rel == "pages.yml":
		return File{Path: fullPath, Category: CategoryUI}
	case rel == "infrastructure.yaml" || rel == "infrastructure.yml":
		return File{Path: fullPath, Category: CategoryInfrastructure}
	case strings.HasPrefix(rel, "shared/"):
		return File{Path: fullPath, Category: CategoryShared}
	default:
		return File{Path: fullPath, Category: CategoryOther}
	}
}
