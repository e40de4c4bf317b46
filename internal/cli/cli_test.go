package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		versionShort, versionJSON = false, false
		dbcheckURL, dbcheckTimeout = "", 10*time.Second
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "proseby version 1.2.3 (commit: abc123, built: 2026-01-01)\n", out)
}

func TestVersion_Short(t *testing.T) {
	buildVersion = "1.2.3"

	out, _, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestVersion_JSON(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	out, _, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, map[string]string{"version": "1.2.3", "commit": "abc123", "date": "2026-01-01"}, info)
}

func TestDBCheck_Connected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.db")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	out, _, err := execute(t, "dbcheck", "--url", "sqlite://"+path)
	require.NoError(t, err)
	assert.Equal(t, "✅ Database connected!\n", out)
}

func TestDBCheck_Failed(t *testing.T) {
	_, errOut, err := execute(t, "dbcheck", "--url", "postgres://%zz", "--timeout", "2s")
	require.Error(t, err)

	var shown *reportedError
	assert.True(t, errors.As(err, &shown), "failure should be marked as already reported")
	assert.Contains(t, errOut, "❌ Database connection failed: invalid postgres connection string")
}

func TestDBCheck_EmptyConnectionString(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")

	_, errOut, err := execute(t, "dbcheck")
	require.Error(t, err)
	assert.Contains(t, errOut, "connection string is empty")
}

func TestDoctor_FailureIsReportedOnce(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "doctor")
	require.Error(t, err)

	var shown *reportedError
	assert.True(t, errors.As(err, &shown), "doctor failures are printed by the report itself")
	assert.Contains(t, out, "[FAIL] .env.example: missing")
	assert.Contains(t, out, "failures\n")
}

func TestResolveDatabaseURL(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("DATABASE_URL=sqlite://from-file.db\n"), 0600))

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "sqlite://from-env.db")
		dsn, source, err := resolveDatabaseURL("sqlite://from-flag.db")
		require.NoError(t, err)
		assert.Equal(t, "sqlite://from-flag.db", dsn)
		assert.Equal(t, "--url", source)
	})

	t.Run("environment before env file", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "sqlite://from-env.db")
		dsn, _, err := resolveDatabaseURL("")
		require.NoError(t, err)
		assert.Equal(t, "sqlite://from-env.db", dsn)
	})

	t.Run("env file", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		require.NoError(t, os.Unsetenv("DATABASE_URL"))
		dsn, source, err := resolveDatabaseURL("")
		require.NoError(t, err)
		assert.Equal(t, "sqlite://from-file.db", dsn)
		assert.Equal(t, ".env.local", source)
	})
}

func TestRoot_RejectsArguments(t *testing.T) {
	_, _, err := execute(t, "unexpected")
	assert.Error(t, err)
}
