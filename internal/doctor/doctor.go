// Package doctor inspects a workspace and reports what setup would change or
// what is broken. It never modifies the workspace.
package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"

	"github.com/proseby/devkit/internal/envfile"
	"github.com/proseby/devkit/internal/githooks"
	"github.com/proseby/devkit/internal/logger"
	"github.com/proseby/devkit/internal/manifest"
	"github.com/proseby/devkit/internal/materialize"
	"github.com/proseby/devkit/internal/runner"
	"github.com/proseby/devkit/internal/scaffold"
	"github.com/proseby/devkit/internal/toolchain"
)

// Status grades a single finding.
type Status int

const (
	OK Status = iota
	// Warn marks something setup would fix.
	Warn
	// Fail marks something that blocks development.
	Fail
)

func (s Status) String() string {
	switch s {
	case OK:
		return "[ OK ]"
	case Warn:
		return "[WARN]"
	default:
		return "[FAIL]"
	}
}

// Finding is the result of one check.
type Finding struct {
	Group  string
	Check  string
	Status Status
	Detail string
}

func (f Finding) String() string {
	if f.Detail == "" {
		return fmt.Sprintf("%s %s", f.Status, f.Check)
	}
	return fmt.Sprintf("%s %s: %s", f.Status, f.Check, f.Detail)
}

// Report collects findings in the order they were made.
type Report struct {
	Findings []Finding
}

func (r *Report) add(group, check string, status Status, detail string) {
	r.Findings = append(r.Findings, Finding{Group: group, Check: check, Status: status, Detail: detail})
}

// Err aggregates every failing finding. It is nil when nothing failed.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, f := range r.Findings {
		if f.Status == Fail {
			result = multierror.Append(result, fmt.Errorf("%s: %s", f.Check, f.Detail))
		}
	}
	return result.ErrorOrNil()
}

// Count returns the number of findings with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, f := range r.Findings {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Write prints the findings grouped under their headings.
func (r *Report) Write(w io.Writer) {
	group := ""
	for _, f := range r.Findings {
		if f.Group != group {
			if group != "" {
				fmt.Fprintln(w)
			}
			group = f.Group
			fmt.Fprintf(w, "%s check:\n", group)
		}
		fmt.Fprintf(w, "  %s\n", f)
	}
}

// Options configures Run.
type Options struct {
	Root   string
	Runner runner.Runner
	// Table lists the packages the workspace is expected to contain.
	// Nil means the embedded default table.
	Table *scaffold.Table
}

// Run executes every check against the workspace.
func Run(ctx context.Context, opts Options) (*Report, error) {
	table := opts.Table
	if table == nil {
		var err error
		if table, err = scaffold.DefaultTable(); err != nil {
			return nil, err
		}
	}

	r := &Report{}
	checkToolchain(ctx, r, opts.Runner)
	checkHooks(r, opts.Root)
	checkEnv(r, opts.Root)
	if err := checkPackages(ctx, r, opts.Root, table); err != nil {
		return nil, err
	}
	return r, nil
}

func checkToolchain(ctx context.Context, r *Report, run runner.Runner) {
	const group = "Toolchain"

	req := toolchain.NodeRequirement
	if v, err := req.Check(ctx, run); err != nil {
		r.add(group, req.Name, Fail, err.Error())
	} else {
		r.add(group, req.Name, OK, v)
	}

	if v, err := toolchain.DetectPnpm(ctx, run); err != nil || v == "" {
		r.add(group, "pnpm", Warn, "not found (setup installs pnpm@"+toolchain.PnpmVersion+")")
	} else {
		r.add(group, "pnpm", OK, v)
	}

	if out, err := run.Output(ctx, runner.Cmd("git", "--version")); err != nil {
		r.add(group, "git", Fail, "not found")
	} else {
		r.add(group, "git", OK, strings.TrimSpace(out))
	}
}

func checkHooks(r *Report, root string) {
	if githooks.HasPreCommit(root) {
		r.add("Git hooks", githooks.PreCommitPath, OK, "")
		return
	}
	r.add("Git hooks", githooks.PreCommitPath, Warn, "missing (run setup)")
}

func checkEnv(r *Report, root string) {
	const group = "Environment"

	if !materialize.Exists(filepath.Join(root, envfile.TemplateFile)) {
		r.add(group, envfile.TemplateFile, Fail, "missing")
		return
	}
	r.add(group, envfile.TemplateFile, OK, "")

	if !materialize.Exists(filepath.Join(root, envfile.LocalFile)) {
		r.add(group, envfile.LocalFile, Warn, "missing (run setup)")
		return
	}

	missing, err := envfile.MissingKeys(root)
	switch {
	case err != nil:
		r.add(group, envfile.LocalFile, Fail, err.Error())
	case len(missing) > 0:
		r.add(group, envfile.LocalFile, Warn, "missing keys: "+strings.Join(missing, ", "))
	default:
		r.add(group, envfile.LocalFile, OK, "")
	}
}

func checkPackages(ctx context.Context, r *Report, root string, table *scaffold.Table) error {
	const group = "Packages"

	pattern := table.Dir + "/*/" + manifest.FileName
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return fmt.Errorf("globbing %s: %w", pattern, err)
	}
	logger.G(ctx).WithField("pattern", pattern).WithField("matches", len(matches)).Debug("discovered package manifests")

	found := make(map[string]bool, len(matches))
	for _, rel := range matches {
		found[filepath.Dir(filepath.FromSlash(rel))] = true
		checkManifest(r, group, root, rel)
	}

	for _, s := range table.Scaffolds(root) {
		rel, err := filepath.Rel(root, s.Dir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", s.Dir, err)
		}
		if !found[rel] {
			r.add(group, table.PackageName(s.Name), Warn, "not scaffolded (run setup)")
		}
	}
	return nil
}

func checkManifest(r *Report, group, root, rel string) {
	result, err := manifest.ValidateFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		r.add(group, rel, Fail, err.Error())
		return
	}
	if result.Valid {
		r.add(group, rel, OK, "")
		return
	}

	issues := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, issue.String())
	}
	r.add(group, rel, Fail, strings.Join(issues, "; "))
}
