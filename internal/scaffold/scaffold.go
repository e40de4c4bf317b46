package scaffold

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/proseby/devkit/internal/logger"
	"github.com/proseby/devkit/internal/manifest"
	"github.com/proseby/devkit/internal/materialize"
	"github.com/proseby/devkit/internal/platform"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var entryTemplate = template.Must(template.ParseFS(templateFS, "templates/index.ts.tmpl"))

// Result holds the outcome of a scaffold run. Paths are relative to the
// workspace root.
type Result struct {
	Created  []string
	Skipped  []string
	Warnings []string
}

// Generate materializes every package in the table under root. Existing
// directories and files are left untouched, so the call is safe to repeat.
func Generate(ctx context.Context, root string, t *Table) (*Result, error) {
	result := &Result{}
	for _, ps := range t.Scaffolds(root) {
		if err := generateOne(ctx, root, ps, result); err != nil {
			return result, fmt.Errorf("scaffolding package %s: %w", ps.Name, err)
		}
	}
	return result, nil
}

func generateOne(ctx context.Context, root string, ps PackageScaffold, result *Result) error {
	log := logger.G(ctx).WithField("package", ps.Name)

	if _, err := materialize.EnsureDir(ctx, ps.SourceDir); err != nil {
		return err
	}

	data, err := manifest.Render(ps.Manifest)
	if err != nil {
		return err
	}
	outcome, err := materialize.EnsureFile(ctx, ps.ManifestPath, data, platform.FilePermNormal)
	if err != nil {
		return err
	}
	result.record(root, ps.ManifestPath, outcome)
	if outcome == materialize.Created {
		result.Warnings = append(result.Warnings, validate(root, ps.ManifestPath, data)...)
	}

	var entry bytes.Buffer
	if err := entryTemplate.Execute(&entry, ps); err != nil {
		return fmt.Errorf("rendering %s: %w", ps.EntryPath, err)
	}
	outcome, err = materialize.EnsureFile(ctx, ps.EntryPath, entry.Bytes(), platform.FilePermNormal)
	if err != nil {
		return err
	}
	result.record(root, ps.EntryPath, outcome)

	log.Debug("package scaffold ensured")
	return nil
}

func validate(root, path string, data []byte) []string {
	rel := relPath(root, path)
	res, err := manifest.Validate(data)
	if err != nil {
		return []string{fmt.Sprintf("%s: could not validate manifest: %v", rel, err)}
	}
	var warnings []string
	for _, issue := range res.Issues {
		warnings = append(warnings, rel+": "+issue.String())
	}
	return warnings
}

func (r *Result) record(root, path string, outcome materialize.Outcome) {
	rel := relPath(root, path)
	if outcome == materialize.Created {
		r.Created = append(r.Created, rel)
		return
	}
	r.Skipped = append(r.Skipped, rel)
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
