// Package fileutil provides file and path helpers shared by the CLI and config loader.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// StdinPath is the conventional argument meaning "read standard input".
const StdinPath = "-"

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "capsule" -> false (config name)
//   - "./gmi.yaml" -> true (relative path)
//   - "/etc/gmi/site.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// HasExtension reports whether path ends in one of exts (case-insensitive).
// Extensions include the leading dot, e.g. ".gmi".
func HasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// IsHidden reports whether the base name of path starts with a dot.
// "." and ".." are not hidden.
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return base != "." && base != ".." && strings.HasPrefix(base, ".")
}
