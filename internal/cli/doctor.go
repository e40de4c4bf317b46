package cli

import (
	"fmt"
	"os"

	"github.com/proseby/devkit/internal/doctor"
	"github.com/proseby/devkit/internal/runner"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report on the health of the current checkout",
	Long: `Run read-only diagnostic checks on the toolchain, git hooks, environment
files and workspace packages. Nothing is installed or written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}

		report, err := doctor.Run(cmd.Context(), doctor.Options{
			Root:   root,
			Runner: runner.New(root),
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		report.Write(w)
		fmt.Fprintf(w, "\n%d ok, %d warnings, %d failures\n",
			report.Count(doctor.OK), report.Count(doctor.Warn), report.Count(doctor.Fail))
		return reported(report.Err())
	},
}
