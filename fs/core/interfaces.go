package core

// FSType represents the underlying type of a provider.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local filesystem (e.g., disk-backed).
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates a remote filesystem (e.g., S3, cloud storage).
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Primitives is the complete primitive set a provider supplies to the
// scriptfs facade.
//
// Every method reports failure through its error return; there are no
// sentinel results. Errors should be *fs.PathError values wrapping the io/fs
// sentinels or the sentinels of this package so callers can use errors.Is.
type Primitives interface {
	FileFS
	TreeFS
	DirFS
	PathFS

	// Type returns the underlying filesystem type.
	Type() FSType
}

// FileFS defines per-file access.
type FileFS interface {
	// Open opens the named file according to opts and returns a Handle.
	//
	// The mode is parsed with ParseMode; a mode granting neither read nor
	// write access fails with ErrInvalidMode. Opening a missing file for
	// read-only access fails with ErrNotExist. Write modes create the file.
	// An unknown charset fails with ErrInvalidCharset.
	Open(name string, opts Options) (Handle, error)

	// Size returns the size of the named file in bytes.
	Size(name string) (int64, error)
}

// TreeFS defines copy and removal operations.
//
// None of these operations are atomic across multiple entries. A failure
// part way through a tree operation leaves the entries processed so far.
type TreeFS interface {
	// Copy copies a single file. It fails with ErrExist if dst exists and
	// with ErrIsDir if src is a directory.
	Copy(src, dst string) error

	// CopyTree recursively copies the directory src to dst, creating dst
	// if needed. It fails with ErrNotExist if src does not exist.
	CopyTree(src, dst string) error

	// Remove removes a single file. It fails with ErrIsDir for directories
	// and ErrNotExist for missing paths.
	Remove(name string) error

	// RemoveDirectory removes an empty directory. It fails with ErrNotEmpty
	// if the directory has entries.
	RemoveDirectory(name string) error

	// RemoveTree removes the directory and everything below it. Unlike
	// os.RemoveAll it fails with ErrNotExist for missing paths.
	RemoveTree(name string) error
}

// DirFS defines directory helpers.
type DirFS interface {
	// Exists reports whether the named file or directory exists.
	Exists(name string) bool

	// List returns the names of the entries in the directory, sorted.
	List(name string) ([]string, error)

	// MakeDirectory creates a single directory. Providers with real
	// directories require the parent to exist.
	MakeDirectory(name string) error

	// MakeTree creates a directory along with any necessary parents.
	MakeTree(name string) error
}

// PathFS defines separator handling.
type PathFS interface {
	// FromNativeSeparators converts the provider's native separators in
	// name to forward slashes.
	FromNativeSeparators(name string) string
}

// Handle is an open file returned by FileFS.Open.
//
// Content crosses the handle as strings. In text modes the bytes are
// transcoded through the handle's charset; in binary modes each byte is
// passed through untouched.
//
// Handles are not safe for concurrent use.
type Handle interface {
	// Name returns the name the handle was opened with.
	Name() string

	// Read returns the whole content from the start of the file. The
	// current position is left where it was.
	Read() (string, error)

	// ReadN reads up to n characters (bytes in binary mode) from the
	// current position. A negative n behaves like Read.
	ReadN(n int) (string, error)

	// ReadLine reads the next line without its line terminator. It
	// returns io.EOF when there is nothing left to read.
	ReadLine() (string, error)

	// Write writes content at the current position (at the end in append modes).
	Write(content string) error

	// WriteLine writes content followed by a newline.
	WriteLine(content string) error

	// Seek moves the position to the absolute byte offset pos.
	Seek(pos int64) error

	// AtEnd reports whether the position is at the end of the file.
	AtEnd() bool

	// Flush commits buffered writes to the provider.
	Flush() error

	// Close flushes and releases the handle. Closing twice returns ErrClosed.
	Close() error
}

// Syncer allows syncing written content to stable storage.
//
// Native files that buffer writes (object store uploads, OS files) implement
// it; handles call Sync on Flush when it is available:
//
//	if s, ok := file.(Syncer); ok {
//	    err := s.Sync()
//	}
type Syncer interface {
	// Sync commits the current contents of the file to stable storage.
	Sync() error
}
