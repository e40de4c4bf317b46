package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/proseby/devkit/internal/branding"
	"github.com/proseby/devkit/internal/config"
	"github.com/proseby/devkit/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` bootstraps a fresh checkout of the monorepo: it checks the toolchain,
installs dependencies and git hooks, seeds .env.local and scaffolds the workspace packages.

Running it without a subcommand is the same as running "setup".`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configure,
	RunE:              runSetup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "warn", "Diagnostic log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Diagnostic log format (text, json)")
	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
}

// configure loads user settings and applies the logging flags.
func configure(cmd *cobra.Command, args []string) error {
	config.Load()
	logger.SetLogFormat(viper.GetString(config.KeyLogFormat))
	if err := logger.SetLogLevel(viper.GetString(config.KeyLogLevel)); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.G(cmd.Context()).WithField("command", cmd.CommandPath()).Debug("starting command")
	return nil
}

// reportedError marks an error the command already showed to the user.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// Execute runs the root command with build info injected via ldflags.
// Errors not already shown by the failing command are printed to stderr.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	var shown *reportedError
	if err != nil && !errors.As(err, &shown) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
