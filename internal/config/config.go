package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultSourceRoot is where the build step leaves its packages. Expand
	// it with ExpandHome before use.
	DefaultSourceRoot = "~/apk-artifacts"

	// DefaultDestRoot is relative to the working directory.
	DefaultDestRoot = "repo/apk"
)

// DestRoot returns the destination directory.
func DestRoot() string {
	return DefaultDestRoot
}

// ExpandHome replaces a leading ~ with the current user's home directory.
// It fails when the path needs a home directory that cannot be resolved.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}
