package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/proseby/devkit/internal/bootstrap"
	"github.com/proseby/devkit/internal/presenter"
	"github.com/proseby/devkit/internal/runner"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the monorepo in the current directory",
	Long: `Check Node.js, install pnpm and dependencies, install git hooks,
create .env.local from .env.example and scaffold the workspace packages.

Every step is safe to repeat: existing files are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	err = bootstrap.Run(cmd.Context(), bootstrap.Options{
		Root:   root,
		Runner: runner.New(root),
		Out:    presenter.NewFor(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	})
	var stepErr *bootstrap.StepError
	if errors.As(err, &stepErr) {
		return reported(err)
	}
	return err
}
