package billy

import (
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/jmgilman/scriptfs/fs/core"
	"github.com/jmgilman/scriptfs/fs/handle"
)

// File adapts a billy.File to the handle.Stream a handle.Handle drives.
//
// memfs only positions append-mode files at the end when they are opened, so
// File moves to the end before every write in append mode.
type File struct {
	file   billy.File
	append bool
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	if f.append {
		if _, err := f.file.Seek(0, io.SeekEnd); err != nil {
			return 0, err
		}
	}
	return f.file.Write(p)
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Close implements io.Closer.
func (f *File) Close() error {
	return f.file.Close()
}

// Sync implements core.Syncer. Backends without Sync (e.g., memfs) make
// this a no-op.
func (f *File) Sync() error {
	if syncer, ok := f.file.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

// Compile-time interface checks.
var (
	_ handle.Stream = (*File)(nil)
	_ core.Syncer   = (*File)(nil)
)
