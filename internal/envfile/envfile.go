// Package envfile manages the workspace's local environment file. The local
// file is seeded from the checked-in template exactly once and is never
// overwritten afterwards.
package envfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/proseby/devkit/internal/materialize"
	"github.com/proseby/devkit/internal/platform"
	"github.com/subosito/gotenv"
)

const (
	// LocalFile holds developer credentials and is not checked in.
	LocalFile = ".env.local"
	// TemplateFile is the checked-in template LocalFile is seeded from.
	TemplateFile = ".env.example"
)

// Materialize copies TemplateFile to LocalFile under root unless LocalFile
// already exists.
func Materialize(ctx context.Context, root string) (materialize.Outcome, error) {
	return materialize.CopyFile(ctx,
		filepath.Join(root, TemplateFile),
		filepath.Join(root, LocalFile),
		platform.FilePermSecure,
	)
}

// Read parses a dotenv file into a key/value map.
func Read(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing env file %s: %w", path, err)
	}
	return env, nil
}

// Lookup returns the value of key from LocalFile under root. A missing file
// is reported as not found rather than as an error.
func Lookup(root, key string) (string, bool, error) {
	path := filepath.Join(root, LocalFile)
	if !materialize.Exists(path) {
		return "", false, nil
	}
	env, err := Read(path)
	if err != nil {
		return "", false, err
	}
	v, ok := env[key]
	return v, ok, nil
}

// MissingKeys lists keys declared in TemplateFile but absent from LocalFile,
// sorted by name.
func MissingKeys(root string) ([]string, error) {
	want, err := Read(filepath.Join(root, TemplateFile))
	if err != nil {
		return nil, err
	}
	have, err := Read(filepath.Join(root, LocalFile))
	if err != nil {
		return nil, err
	}

	var missing []string
	for k := range want {
		if _, ok := have[k]; !ok {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing, nil
}
