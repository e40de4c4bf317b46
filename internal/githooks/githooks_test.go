package githooks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/proseby/devkit/internal/runner/runnertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	fake := runnertest.New()
	require.NoError(t, Install(context.Background(), fake))
	assert.Equal(t, []string{"pnpm dlx husky install"}, fake.Calls())
}

func TestEnsurePreCommit_AddsWhenMissing(t *testing.T) {
	root := t.TempDir()
	fake := runnertest.New()

	added, err := EnsurePreCommit(context.Background(), fake, root)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{`pnpm dlx husky add .husky/pre-commit "pnpm lint-staged"`}, fake.Calls())
}

func TestEnsurePreCommit_SkipsWhenPresent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".husky"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".husky", "pre-commit"), []byte("pnpm lint-staged\n"), 0755))
	fake := runnertest.New()

	added, err := EnsurePreCommit(context.Background(), fake, root)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, fake.Calls())
}

func TestEnsurePreCommit_Failure(t *testing.T) {
	fake := runnertest.New().Fail("pnpm", 1, "dlx", "husky", "add", PreCommitPath, PreCommitCommand)

	added, err := EnsurePreCommit(context.Background(), fake, t.TempDir())
	assert.Error(t, err)
	assert.False(t, added)
}
