package scriptfs

import (
	"log/slog"

	"github.com/jmgilman/scriptfs/fs/core"
)

// FileSystem is the facade over a primitive provider. It holds no mutable
// state and is safe for concurrent use when the provider is.
type FileSystem struct {
	native      core.Primitives
	logger      *slog.Logger
	verifyMoves bool
}

// New returns a FileSystem delegating to native.
func New(native core.Primitives, opts ...Option) *FileSystem {
	f := &FileSystem{
		native: native,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Native returns the wrapped provider.
func (f *FileSystem) Native() core.Primitives {
	return f.native
}

// Open opens path and returns its handle. The caller must close it.
func (f *FileSystem) Open(path string, modeOrOpts ModeOrOptions) (core.Handle, error) {
	return f.open(path, normalizeOptions(modeOrOpts))
}

func (f *FileSystem) open(path string, opts core.Options) (core.Handle, error) {
	f.logger.Debug("open", "path", path, "mode", opts.Mode, "charset", opts.Charset)

	h, err := f.native.Open(path, opts)
	if err != nil {
		return nil, f.fail(err, pathContext("open", path), "unable to open file '%s'", path)
	}
	return h, nil
}

// Read returns the whole content of path. Read access is always added to
// the mode; OpenMode("b") reads in binary mode and any other OpenMode is
// taken as a charset name.
func (f *FileSystem) Read(path string, modeOrOpts ModeOrOptions) (content string, err error) {
	h, err := f.open(path, readOptions(modeOrOpts))
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil && err == nil {
			err = f.fail(cerr, pathContext("read", path), "unable to close file '%s'", path)
		}
	}()

	content, err = h.Read()
	if err != nil {
		return "", f.fail(err, pathContext("read", path), "unable to read file '%s'", path)
	}
	return content, nil
}

// Write writes content to path. Write access is always added to the mode,
// so without an append flag the file is truncated first.
func (f *FileSystem) Write(path, content string, modeOrOpts ModeOrOptions) (err error) {
	h, err := f.open(path, writeOptions(modeOrOpts))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil && err == nil {
			err = f.fail(cerr, pathContext("write", path), "unable to close file '%s'", path)
		}
	}()

	if err := h.Write(content); err != nil {
		return f.fail(err, pathContext("write", path), "unable to write file '%s'", path)
	}
	return nil
}

// Touch creates path if it does not exist. Existing content is unchanged.
func (f *FileSystem) Touch(path string) error {
	return f.Write(path, "", OpenMode("a"))
}

// Size returns the size of path in bytes.
func (f *FileSystem) Size(path string) (int64, error) {
	f.logger.Debug("size", "path", path)

	size, err := f.native.Size(path)
	if err != nil {
		return 0, f.fail(err, pathContext("size", path), "unable to read file '%s' size", path)
	}
	return size, nil
}

// Copy copies the file src to dst. It fails if dst exists.
func (f *FileSystem) Copy(src, dst string) error {
	f.logger.Debug("copy", "source", src, "destination", dst)

	if err := f.native.Copy(src, dst); err != nil {
		return f.fail(err, copyContext("copy", src, dst), "unable to copy file '%s' at '%s'", src, dst)
	}
	return nil
}

// CopyTree recursively copies the directory src to dst.
func (f *FileSystem) CopyTree(src, dst string) error {
	f.logger.Debug("copytree", "source", src, "destination", dst)

	if err := f.native.CopyTree(src, dst); err != nil {
		return f.fail(err, copyContext("copytree", src, dst), "unable to copy directory tree '%s' at '%s'", src, dst)
	}
	return nil
}

// Move copies src to dst and then removes src.
//
// Move is not atomic and never rolls back. If removing src fails after the
// copy succeeded, dst keeps the copy, src is kept and the remove error is
// returned.
func (f *FileSystem) Move(src, dst string) error {
	f.logger.Debug("move", "source", src, "destination", dst)

	if err := f.Copy(src, dst); err != nil {
		return err
	}
	if f.verifyMoves {
		if err := f.verify(src, dst); err != nil {
			return err
		}
	}
	if err := f.Remove(src); err != nil {
		f.logger.Warn("move left source and destination in place", "source", src, "destination", dst, "error", err)
		return err
	}
	return nil
}

// Remove removes the file at path. Directories are rejected.
func (f *FileSystem) Remove(path string) error {
	f.logger.Debug("remove", "path", path)

	if err := f.native.Remove(path); err != nil {
		return f.fail(err, pathContext("remove", path), "unable to remove file '%s'", path)
	}
	return nil
}

// RemoveDirectory removes the empty directory at path.
func (f *FileSystem) RemoveDirectory(path string) error {
	f.logger.Debug("rmdir", "path", path)

	if err := f.native.RemoveDirectory(path); err != nil {
		return f.fail(err, pathContext("rmdir", path), "unable to remove directory '%s'", path)
	}
	return nil
}

// RemoveTree removes the directory at path and everything below it. It
// fails if path does not exist.
func (f *FileSystem) RemoveTree(path string) error {
	f.logger.Debug("rmtree", "path", path)

	if err := f.native.RemoveTree(path); err != nil {
		return f.fail(err, pathContext("rmtree", path), "unable to remove directory tree '%s'", path)
	}
	return nil
}

// Exists reports whether a file or directory exists at path.
func (f *FileSystem) Exists(path string) bool {
	return f.native.Exists(path)
}

// List returns the sorted entry names of the directory at path.
func (f *FileSystem) List(path string) ([]string, error) {
	f.logger.Debug("list", "path", path)

	names, err := f.native.List(path)
	if err != nil {
		return nil, f.fail(err, pathContext("list", path), "unable to list directory '%s'", path)
	}
	return names, nil
}

// MakeDirectory creates the directory at path.
func (f *FileSystem) MakeDirectory(path string) error {
	f.logger.Debug("mkdir", "path", path)

	if err := f.native.MakeDirectory(path); err != nil {
		return f.fail(err, pathContext("mkdir", path), "unable to create directory '%s'", path)
	}
	return nil
}

// MakeTree creates the directory at path along with any missing parents.
func (f *FileSystem) MakeTree(path string) error {
	f.logger.Debug("mkdirall", "path", path)

	if err := f.native.MakeTree(path); err != nil {
		return f.fail(err, pathContext("mkdirall", path), "unable to create directory tree '%s'", path)
	}
	return nil
}
