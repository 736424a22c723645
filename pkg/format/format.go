// Package format holds shared filesystem permission constants and helpers.
package format

import "os"

const (
	// FileUserReadWrite is the mode for files only the current user touches.
	FileUserReadWrite os.FileMode = 0o600
	// DirUserGroupRead is the mode for generated output directories.
	DirUserGroupRead os.FileMode = 0o750
)

// IsDirectory reports whether path exists and is a directory.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
