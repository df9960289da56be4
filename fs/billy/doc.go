// Package billy provides go-billy-backed implementations of the
// core.Primitives contract.
//
// This package wraps go-billy's osfs (local) and memfs (in-memory)
// filesystems. Handles returned by Open are shared handle.Handle values
// driving the native billy.File, so charset transcoding and line I/O behave
// the same on every backend.
//
// Usage:
//
//	// Local filesystem rooted at a directory
//	native := billy.NewLocal("/srv/data")
//	fs := scriptfs.New(native)
//
//	// Unwrap for direct go-billy access
//	bfs := native.Unwrap()
//
// # Memory Filesystem
//
// For testing or temporary storage, use the in-memory filesystem:
//
//	native := billy.NewMemory()
//
// # Paths
//
// Paths are slash separated and resolved relative to the filesystem root.
// A leading slash is ignored, so "/a/b" and "a/b" name the same file.
//
// # Thread Safety
//
// FS instances are safe for concurrent use by multiple goroutines to the
// extent the wrapped billy.Filesystem is. Handles are not safe for concurrent
// use.
package billy
