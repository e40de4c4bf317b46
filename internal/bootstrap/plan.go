package bootstrap

import (
	"context"
	"fmt"

	"github.com/proseby/devkit/internal/envfile"
	"github.com/proseby/devkit/internal/githooks"
	"github.com/proseby/devkit/internal/materialize"
	"github.com/proseby/devkit/internal/presenter"
	"github.com/proseby/devkit/internal/runner"
	"github.com/proseby/devkit/internal/scaffold"
	"github.com/proseby/devkit/internal/toolchain"
)

// Options configures a setup run.
type Options struct {
	// Root is the workspace root; every path is resolved against it.
	Root   string
	Runner runner.Runner
	Out    presenter.Presenter
	// Table overrides the embedded package table.
	Table *scaffold.Table
}

// New builds the setup procedure for opts.
func New(opts Options) (*Procedure, error) {
	table := opts.Table
	if table == nil {
		var err error
		if table, err = scaffold.DefaultTable(); err != nil {
			return nil, err
		}
	}

	out, run, root := opts.Out, opts.Runner, opts.Root
	return &Procedure{
		Out: out,
		Steps: []Step{
			{
				Description: "Checking Node.js version",
				Run: func(ctx context.Context) error {
					v, err := toolchain.NodeRequirement.Check(ctx, run)
					if err != nil {
						return err
					}
					out.Success(fmt.Sprintf("Node.js %s detected", v))
					out.Blank()
					return nil
				},
			},
			{
				Description: "Installing pnpm",
				Run: func(ctx context.Context) error {
					if v, err := toolchain.DetectPnpm(ctx, run); err == nil {
						out.Success(fmt.Sprintf("pnpm %s detected", v))
						out.Blank()
						return nil
					}
					out.Step("Installing pnpm")
					if err := toolchain.InstallPnpm(ctx, run); err != nil {
						return err
					}
					out.Success("Installing pnpm completed")
					out.Blank()
					return nil
				},
			},
			commandStep(out, run, "Installing dependencies", runner.Cmd("pnpm", "install")),
			{
				Description: "Setting up git hooks",
				Run: func(ctx context.Context) error {
					out.Step("Setting up git hooks")
					if err := githooks.Install(ctx, run); err != nil {
						return err
					}
					out.Success("Setting up git hooks completed")
					out.Blank()
					return nil
				},
			},
			{
				Description: "Adding pre-commit hook",
				Run: func(ctx context.Context) error {
					added, err := githooks.EnsurePreCommit(ctx, run, root)
					if err != nil {
						return err
					}
					if added {
						out.Success("Pre-commit hook added (" + githooks.PreCommitCommand + ")")
					} else {
						out.Success(githooks.PreCommitPath + " already present")
					}
					out.Blank()
					return nil
				},
			},
			{
				Description: "Creating " + envfile.LocalFile,
				Run: func(ctx context.Context) error {
					return ensureEnvFile(ctx, out, root)
				},
			},
			{
				Description: "Scaffolding workspace packages",
				Run: func(ctx context.Context) error {
					return scaffoldPackages(ctx, out, root, table)
				},
			},
		},
	}, nil
}

// Run builds and executes the setup procedure, then prints the next steps.
func Run(ctx context.Context, opts Options) error {
	p, err := New(opts)
	if err != nil {
		return err
	}
	opts.Out.Info("🚀 Setting up Proseby monorepo...")
	opts.Out.Blank()
	if err := p.Run(ctx); err != nil {
		return err
	}
	PrintSummary(opts.Out)
	return nil
}

func commandStep(out presenter.Presenter, run runner.Runner, desc string, cmd runner.Command) Step {
	return Step{
		Description: desc,
		Run: func(ctx context.Context) error {
			return command(ctx, out, run, desc, cmd)
		},
	}
}

func command(ctx context.Context, out presenter.Presenter, run runner.Runner, desc string, cmd runner.Command) error {
	out.Step(desc)
	if err := run.Run(ctx, cmd); err != nil {
		return err
	}
	out.Success(desc + " completed")
	out.Blank()
	return nil
}

func ensureEnvFile(ctx context.Context, out presenter.Presenter, root string) error {
	outcome, err := envfile.Materialize(ctx, root)
	if err != nil {
		return err
	}
	if outcome == materialize.Skipped {
		out.Success(envfile.LocalFile + " already exists")
		out.Blank()
		return nil
	}
	out.Success(fmt.Sprintf("%s created from %s", envfile.LocalFile, envfile.TemplateFile))
	out.Warning("Please update " + envfile.LocalFile + " with your actual credentials")
	out.Blank()
	return nil
}

func scaffoldPackages(ctx context.Context, out presenter.Presenter, root string, table *scaffold.Table) error {
	out.Step("Scaffolding workspace packages")
	result, err := scaffold.Generate(ctx, root, table)
	if err != nil {
		return err
	}
	for _, f := range result.Created {
		out.Info("   + " + f)
	}
	for _, w := range result.Warnings {
		out.Warning(w)
	}
	out.Success(fmt.Sprintf("Workspace packages ready (%d files created, %d already present)",
		len(result.Created), len(result.Skipped)))
	out.Blank()
	return nil
}
