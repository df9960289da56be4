// Package fstest provides a conformance test suite for validating primitive
// providers against the core.Primitives contract.
//
// This package contains test functions that can be imported and executed by
// provider packages to verify they honor the open modes, handle behavior,
// copy and removal semantics, and directory helpers the scriptfs facade
// relies on.
//
// The test suite is designed to validate interface contracts, not
// backend-specific behavior. Object stores have virtual directories, and
// FSTestConfig adapts the tests to that documented difference.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() core.Primitives {
//	        return myprovider.New()
//	    })
//	}
package fstest

import (
	"slices"
	"testing"

	"github.com/jmgilman/scriptfs/fs/core"
)

// FSTestConfig configures the test suite to match filesystem behavior characteristics.
type FSTestConfig struct {
	// VirtualDirectories indicates directories are virtual (e.g., S3 prefixes).
	// When true, a directory exists as long as something lives below it.
	VirtualDirectories bool

	// ImplicitParentDirs indicates files and directories can be created
	// without their parent directories.
	ImplicitParentDirs bool

	// SkipTests lists specific test names to skip (for edge cases).
	// Format: "TestGroup/SubTest" (e.g., "FileFS/CreateInMissingDir").
	SkipTests []string
}

// POSIXTestConfig returns configuration for POSIX-like filesystems (local, memory).
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{}
}

// S3TestConfig returns configuration for S3-like filesystems (MinIO, S3).
func S3TestConfig() FSTestConfig {
	return FSTestConfig{
		VirtualDirectories: true,
		ImplicitParentDirs: true,
	}
}

func (c FSTestConfig) skip(t *testing.T, name string) {
	t.Helper()
	if slices.Contains(c.SkipTests, name) {
		t.Skip("Skipped by provider configuration")
	}
}

// TestSuite runs all conformance tests against a provider.
// The newFS function should return a fresh, empty provider for each group.
// Uses POSIXTestConfig() by default.
func TestSuite(t *testing.T, newFS func() core.Primitives) {
	TestSuiteWithConfig(t, newFS, POSIXTestConfig())
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newFS func() core.Primitives, config FSTestConfig) {
	groups := []struct {
		name string
		run  func(*testing.T, core.Primitives, FSTestConfig)
	}{
		{"FileFS", TestFileFSWithConfig},
		{"Handle", TestHandleWithConfig},
		{"TreeFS", TestTreeFSWithConfig},
		{"DirFS", TestDirFSWithConfig},
		{"PathFS", TestPathFSWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			config.skip(t, g.name)
			g.run(t, newFS(), config)
		})
	}
}

// subtest runs fn as a named subtest unless the configuration skips it.
func subtest(t *testing.T, config FSTestConfig, group, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		config.skip(t, group+"/"+name)
		fn(t)
	})
}
