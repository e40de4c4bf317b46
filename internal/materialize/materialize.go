// Package materialize implements the write-if-absent primitive shared by every
// generated artifact: given a target path and desired content, create it only
// when nothing exists there yet, otherwise leave the existing entry untouched.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/proseby/devkit/internal/logger"
	"github.com/proseby/devkit/internal/platform"
)

// Outcome reports what a materialization did.
type Outcome int

const (
	// Skipped means the target already existed and was left as is.
	Skipped Outcome = iota
	// Created means the target was written by this call.
	Created
)

func (o Outcome) String() string {
	if o == Created {
		return "created"
	}
	return "skipped"
}

// EnsureDir creates path and any missing parents. An existing directory is
// skipped; an existing non-directory is an error.
func EnsureDir(ctx context.Context, path string) (Outcome, error) {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return Skipped, fmt.Errorf("%s exists but is not a directory", path)
		}
		logger.G(ctx).WithField("path", path).Debug("directory already exists")
		return Skipped, nil
	}

	if err := os.MkdirAll(path, platform.DirPermNormal); err != nil {
		return Skipped, fmt.Errorf("creating directory %s: %w", path, err)
	}
	logger.G(ctx).WithField("path", path).Debug("created directory")
	return Created, nil
}

// EnsureFile writes content to path unless path already exists. The file is
// opened with O_EXCL, so an existing file is never truncated even if it
// appears after the caller last looked.
func EnsureFile(ctx context.Context, path string, content []byte, perm os.FileMode) (Outcome, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if errors.Is(err, fs.ErrExist) {
		logger.G(ctx).WithField("path", path).Debug("file already exists")
		return Skipped, nil
	}
	if err != nil {
		return Skipped, fmt.Errorf("creating file %s: %w", path, err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		// A partial file would be skipped on the next run forever.
		_ = os.Remove(path)
		return Skipped, fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return Skipped, fmt.Errorf("closing file %s: %w", path, err)
	}
	// The umask may have narrowed perm.
	if err := platform.Chmod(path, perm); err != nil {
		return Created, fmt.Errorf("setting permissions on %s: %w", path, err)
	}

	logger.G(ctx).WithField("path", path).Debug("created file")
	return Created, nil
}

// CopyFile copies src to dst unless dst already exists. src is only read when
// a copy is needed, so a missing template is not an error once dst exists.
func CopyFile(ctx context.Context, src, dst string, perm os.FileMode) (Outcome, error) {
	if _, err := os.Lstat(dst); err == nil {
		logger.G(ctx).WithField("path", dst).Debug("copy target already exists")
		return Skipped, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return Skipped, fmt.Errorf("reading template %s: %w", src, err)
	}
	return EnsureFile(ctx, dst, data, perm)
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
