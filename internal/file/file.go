// Package file contains file utilities
package file

import (
	"path/filepath"
	"strings"
)

func ExtractSuffix(s string) (suffix string, idx int) {
	idx = strings.LastIndex(s, ".")
	if idx == -1 {
		return s, idx
	}
	return s[idx:], idx
}

// SplitName splits a file name into its stem and lowercased extension.
// Directories are dropped.
func SplitName(name string) (stem, ext string) {
	name = filepath.Base(filepath.ToSlash(name))
	if name == "." || name == "/" {
		return "", ""
	}
	suffix, idx := ExtractSuffix(name)
	if idx <= 0 {
		return name, ""
	}
	return name[:idx], strings.ToLower(suffix)
}
