package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/proseby/devkit/internal/config"
	"github.com/proseby/devkit/internal/dbcheck"
	"github.com/proseby/devkit/internal/envfile"
	"github.com/proseby/devkit/internal/logger"
	"github.com/proseby/devkit/internal/presenter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dbcheckURL     string
	dbcheckTimeout time.Duration
)

func init() {
	dbcheckCmd.Flags().StringVar(&dbcheckURL, "url", "", "Connection string (overrides "+dbcheck.EnvVar+")")
	dbcheckCmd.Flags().DurationVar(&dbcheckTimeout, "timeout", 10*time.Second, "Maximum time to wait for the connection")
	rootCmd.AddCommand(dbcheckCmd)
}

var dbcheckCmd = &cobra.Command{
	Use:   "dbcheck",
	Short: "Verify that the development database is reachable",
	Long: `Open one connection to the database named by ` + dbcheck.EnvVar + `, ping it and close it.

The connection string is taken from --url, then the ` + dbcheck.EnvVar + ` environment
variable, then .env.local in the current directory. postgres://, mysql:// and
sqlite:// (or file:) connection strings are supported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, source, err := resolveDatabaseURL(dbcheckURL)
		if err != nil {
			return err
		}
		logger.G(cmd.Context()).WithField("source", source).Debug("resolved connection string")

		ctx, cancel := context.WithTimeout(cmd.Context(), dbcheckTimeout)
		defer cancel()

		out := presenter.NewFor(cmd.OutOrStdout(), cmd.ErrOrStderr())
		res := dbcheck.Check(ctx, dsn)
		if !res.OK() {
			out.Error(res.Err, "Database connection failed")
			return reported(res.Err)
		}
		out.Success("Database connected!")
		return nil
	},
}

// resolveDatabaseURL picks the connection string from the flag, the process
// environment, .env.local and finally the user config, in that order. An
// empty result is left for dbcheck.Check to report.
func resolveDatabaseURL(flag string) (dsn, source string, err error) {
	if flag != "" {
		return flag, "--url", nil
	}
	if v, ok := os.LookupEnv(dbcheck.EnvVar); ok {
		return v, dbcheck.EnvVar, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("resolving working directory: %w", err)
	}
	v, ok, err := envfile.Lookup(wd, dbcheck.EnvVar)
	if err != nil {
		return "", "", err
	}
	if ok {
		return v, envfile.LocalFile, nil
	}

	if v := viper.GetString(config.KeyDatabaseURL); v != "" {
		return v, config.FilePath(), nil
	}
	return "", "", nil
}
