// Package core defines the primitive contract that filesystem providers
// implement for the scriptfs facade.
//
// The facade never touches storage directly. It brokers every call through
// Primitives, a set of small interfaces a provider composes:
//
//   - FileFS: file access (Open, Size)
//   - TreeFS: copies and removals (Copy, CopyTree, Remove, RemoveDirectory, RemoveTree)
//   - DirFS: directory helpers (Exists, List, MakeDirectory, MakeTree)
//   - PathFS: separator normalization (FromNativeSeparators)
//
// Open takes an Options record (mode string plus charset name) and returns a
// Handle, the per-open resource exposing whole-content reads, line I/O,
// seeking and close. ParseMode turns the mode string into a Mode and the
// os.OpenFile flags it implies.
//
// # Design Philosophy
//
//   - Zero dependencies: only the Go standard library
//   - Interface composition: small focused interfaces compose into Primitives
//   - Errors are *fs.PathError values wrapping io/fs or core sentinels
//
// # Provider Implementations
//
//   - github.com/jmgilman/scriptfs/fs/billy - go-billy local and in-memory providers
//   - github.com/jmgilman/scriptfs/fs/minio - MinIO/S3 provider
//
// Providers are checked with the conformance suite in
// github.com/jmgilman/scriptfs/fs/fstest.
package core
