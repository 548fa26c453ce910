// Package projectroot locates the package a command operates on.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Marker is the file that identifies a package root.
const Marker = "package.json"

// ErrNotFound is returned when no ancestor of the start directory
// contains Marker.
var ErrNotFound = errors.New("package.json not found in the current directory or any parent")

// Find walks up from start to the nearest directory containing Marker.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		info, err := os.Stat(filepath.Join(dir, Marker))
		if err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}
