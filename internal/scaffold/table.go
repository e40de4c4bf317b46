package scaffold

import (
	_ "embed"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/proseby/devkit/internal/branding"
	"github.com/proseby/devkit/internal/manifest"
	"go.yaml.in/yaml/v3"
)

//go:embed packages.yaml
var defaultTable []byte

// Table is the declarative description of the workspace packages.
type Table struct {
	Scope    string           `yaml:"scope"`
	Dir      string           `yaml:"dir"`
	Version  string           `yaml:"version"`
	Private  bool             `yaml:"private"`
	Entry    string           `yaml:"entry"`
	Scripts  manifest.Scripts `yaml:"scripts"`
	Packages []string         `yaml:"packages"`
}

// PackageScaffold is one resolved table row.
type PackageScaffold struct {
	Name         string
	Dir          string
	ManifestPath string
	SourceDir    string
	EntryPath    string
	Manifest     *manifest.PackageManifest
}

// DefaultTable returns the embedded package table.
func DefaultTable() (*Table, error) {
	return ParseTable(defaultTable)
}

// ParseTable decodes and checks a package table.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing package table: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Table) validate() error {
	if t.Dir == "" {
		return fmt.Errorf("package table: dir is required")
	}
	if t.Version == "" {
		return fmt.Errorf("package table: version is required")
	}
	if t.Entry == "" || path.IsAbs(t.Entry) || strings.HasPrefix(path.Clean(t.Entry), "..") {
		return fmt.Errorf("package table: entry %q must be a relative path inside the package", t.Entry)
	}
	seen := make(map[string]bool, len(t.Packages))
	for _, name := range t.Packages {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("package table: invalid package name %q", name)
		}
		if seen[name] {
			return fmt.Errorf("package table: duplicate package %q", name)
		}
		seen[name] = true
	}
	return nil
}

// PackageName returns the npm name for a table entry, e.g. "@proseby/ui".
// A table without a scope uses the branded npm scope.
func (t *Table) PackageName(name string) string {
	scope := t.Scope
	if scope == "" {
		scope = branding.NPMScope()
	}
	return scope + "/" + name
}

// Scaffolds resolves every table entry against the workspace root.
func (t *Table) Scaffolds(root string) []PackageScaffold {
	entry := path.Clean(t.Entry)
	out := make([]PackageScaffold, 0, len(t.Packages))
	for _, name := range t.Packages {
		dir := filepath.Join(root, filepath.FromSlash(t.Dir), name)
		entryPath := filepath.Join(dir, filepath.FromSlash(entry))
		out = append(out, PackageScaffold{
			Name:         name,
			Dir:          dir,
			ManifestPath: filepath.Join(dir, manifest.FileName),
			SourceDir:    filepath.Dir(entryPath),
			EntryPath:    entryPath,
			Manifest: &manifest.PackageManifest{
				Name:    t.PackageName(name),
				Version: t.Version,
				Private: t.Private,
				Main:    t.Entry,
				Types:   t.Entry,
				Scripts: t.Scripts,
			},
		})
	}
	return out
}
