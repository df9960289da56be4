// Package scriptfs is a convenience layer over a filesystem primitive set.
//
// A FileSystem wraps a core.Primitives provider (go-billy local or memory,
// MinIO/S3) and exposes ergonomic calls that open, read and write files,
// copy, move and remove files and directory trees, query sizes and
// manipulate slash separated paths. Every failure is returned as an
// errors.PlatformError naming the operation and the path(s) involved, with a
// code derived from the provider's cause.
//
// Usage:
//
//	fs := scriptfs.New(billy.NewLocal("/srv/data"))
//
//	if err := fs.Write("notes/today.txt", "hello", nil); err != nil {
//	    return err
//	}
//	content, err := fs.Read("notes/today.txt", nil)
//
// # Open Modes
//
// Open, Read and Write accept a ModeOrOptions: either an OpenMode such as
// OpenMode("rw") or an OpenOptions record carrying a mode and a charset.
// Read treats OpenMode("b") as the binary flag and any other OpenMode as a
// charset name:
//
//	raw, err := fs.Read("image.png", scriptfs.OpenMode("b"))
//	text, err := fs.Read("legacy.txt", scriptfs.OpenMode("ISO-8859-1"))
//
// # Move
//
// Move is a copy followed by a remove of the source. It is not atomic: when
// the remove fails the copy stays at the destination and the source is kept.
// WithVerifiedMoves compares BLAKE3 digests of both files before the source
// is removed.
package scriptfs
