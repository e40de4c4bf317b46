package platform

import (
	"os"
	"runtime"
)

// Permission modes for generated files and directories.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
	// FilePermSecure is used for files that hold credentials.
	FilePermSecure os.FileMode = 0600
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
