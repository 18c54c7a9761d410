package util

import (
	"path/filepath"
	"strings"
)

func ToRelativePath(rootPath, fullPath string) string {
	relPath, err := filepath.Rel(rootPath, fullPath)
	if err != nil {
		return fullPath
	}
	return relPath
}

// FirstPathElement returns the leading directory of a slash or OS separated relative path
func FirstPathElement(relPath string) string {
	relPath = filepath.ToSlash(relPath)
	if idx := strings.Index(relPath, "/"); idx >= 0 {
		return relPath[:idx]
	}
	return relPath
}

// IsHidden reports whether a file or directory name starts with a dot
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
