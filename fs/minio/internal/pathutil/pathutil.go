// Package pathutil provides path normalization and manipulation utilities
// for MinIO/S3 object keys.
package pathutil

import (
	"path"
	"strings"
)

// Normalize cleans a path and ensures forward slashes.
// It applies: backslashes to slashes → Clean → Trim slashes
// Returns "." for empty paths and the root.
func Normalize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.Trim(path.Clean("/"+name), "/")
	if name == "" {
		return "."
	}
	return name
}

// NormalizePrefix normalizes the bucket prefix. It returns an empty string
// if prefix is "." or empty.
func NormalizePrefix(prefix string) string {
	prefix = Normalize(prefix)
	if prefix == "." {
		return ""
	}
	return prefix
}

// JoinPath joins a prefix with a name to create a full S3 key.
// The root name maps to the prefix itself.
func JoinPath(prefix, name string) string {
	name = Normalize(name)
	switch {
	case name == ".":
		return prefix
	case prefix == "":
		return name
	default:
		return prefix + "/" + name
	}
}

// DirPrefix returns the listing prefix for the directory key: the key with a
// trailing slash, or the empty string for the bucket root.
func DirPrefix(key string) string {
	if key == "" {
		return ""
	}
	return key + "/"
}

// IsWithin reports whether key lies strictly below the directory dir.
func IsWithin(key, dir string) bool {
	if dir == "" {
		return key != ""
	}
	return strings.HasPrefix(key, dir+"/")
}
