package toolchain

import (
	"context"
	"errors"
	"testing"

	"github.com/proseby/devkit/internal/runner"
	"github.com/proseby/devkit/internal/runner/runnertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementLabel(t *testing.T) {
	assert.Equal(t, "18+", NodeRequirement.Label())
	assert.Equal(t, "20.11.0+", Requirement{Name: "Node.js", Minimum: "20.11.0"}.Label())
}

func TestSatisfied(t *testing.T) {
	tests := []struct {
		detected string
		wantErr  bool
	}{
		{"v18.0.0", false},
		{"v18.0.0-nightly20220419bde889bd4e", false},
		{"v18.0.0-rc.1", false},
		{"v20.11.1", false},
		{"18.19.0", false},
		{"v16.20.2", true},
		{"v17.9.1", true},
		{"v17.99.99-nightly", true},
		{"garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.detected, func(t *testing.T) {
			err := NodeRequirement.Satisfied(tt.detected)
			if tt.wantErr {
				var verr *VersionError
				require.True(t, errors.As(err, &verr), "expected *VersionError, got %v", err)
				assert.Equal(t, tt.detected, verr.Detected)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSatisfied_FullMinimumComparesSemver(t *testing.T) {
	req := Requirement{Name: "Node.js", Minimum: "20.11.0"}
	assert.NoError(t, req.Satisfied("v20.11.0"))
	assert.Error(t, req.Satisfied("v20.10.0"))
	assert.Error(t, req.Satisfied("v20.11.0-rc.1"))
}

func TestVersionErrorMessage(t *testing.T) {
	err := NodeRequirement.Satisfied("v16.20.2")
	require.Error(t, err)
	assert.Equal(t, "Node.js 18+ required. Current: v16.20.2", err.Error())
}

func TestCheck(t *testing.T) {
	fake := runnertest.New().Script("node --version", runnertest.Response{Output: "v20.11.1\n"})

	got, err := NodeRequirement.Check(context.Background(), fake)
	require.NoError(t, err)
	assert.Equal(t, "v20.11.1", got)
}

func TestCheck_NodeMissing(t *testing.T) {
	fake := runnertest.New().Script("node --version", runnertest.Response{Err: errors.New("executable file not found")})

	_, err := NodeRequirement.Check(context.Background(), fake)
	var verr *VersionError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, verr.Detected)
	assert.Contains(t, err.Error(), "Current: not found")
}

func TestDetectPnpm(t *testing.T) {
	fake := runnertest.New().Script("pnpm --version", runnertest.Response{Output: "8.15.1"})

	v, err := DetectPnpm(context.Background(), fake)
	require.NoError(t, err)
	assert.Equal(t, "8.15.1", v)
}

func TestInstallPnpm(t *testing.T) {
	fake := runnertest.New()
	require.NoError(t, InstallPnpm(context.Background(), fake))
	assert.Equal(t, []string{"npm install -g pnpm@8.15.1"}, fake.Calls())
}

func TestInstallPnpm_Failure(t *testing.T) {
	fake := runnertest.New().Fail("npm", 1, "install", "-g", "pnpm@8.15.1")

	err := InstallPnpm(context.Background(), fake)
	var exitErr *runner.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
}
