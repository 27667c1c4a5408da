// Package utils provides small filesystem helpers shared by the CLI commands.
package utils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileExists returns a boolean indicating whether a regular file exists at the provided path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// WriteFileWithDirs writes data to the provided file path, creating any missing parent directories
// first. Returns an error if one occurs.
func WriteFileWithDirs(path string, data []byte) error {
	directory := filepath.Dir(path)
	if directory != "." {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return errors.WithStack(err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
