// Package githooks installs husky and registers the workspace pre-commit hook.
package githooks

import (
	"context"
	"path/filepath"

	"github.com/proseby/devkit/internal/materialize"
	"github.com/proseby/devkit/internal/runner"
)

// PreCommitPath is the hook file husky manages, relative to the workspace root.
const PreCommitPath = ".husky/pre-commit"

// PreCommitCommand is the command the pre-commit hook runs.
const PreCommitCommand = "pnpm lint-staged"

// InstallCommand installs husky's git hooks.
func InstallCommand() runner.Command {
	return runner.Cmd("pnpm", "dlx", "husky", "install")
}

// AddPreCommitCommand registers the pre-commit hook.
func AddPreCommitCommand() runner.Command {
	return runner.Cmd("pnpm", "dlx", "husky", "add", PreCommitPath, PreCommitCommand)
}

// Install runs the husky installer.
func Install(ctx context.Context, run runner.Runner) error {
	return run.Run(ctx, InstallCommand())
}

// HasPreCommit reports whether the pre-commit hook file exists under root.
func HasPreCommit(root string) bool {
	return materialize.Exists(filepath.Join(root, filepath.FromSlash(PreCommitPath)))
}

// EnsurePreCommit adds the pre-commit hook unless it is already present.
// It reports whether the hook was added.
func EnsurePreCommit(ctx context.Context, run runner.Runner, root string) (bool, error) {
	if HasPreCommit(root) {
		return false, nil
	}
	if err := run.Run(ctx, AddPreCommitCommand()); err != nil {
		return false, err
	}
	return true, nil
}
