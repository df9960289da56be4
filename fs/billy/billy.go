package billy

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/jmgilman/scriptfs/fs/core"
	"github.com/jmgilman/scriptfs/fs/handle"
	"golang.org/x/text/encoding"
)

const (
	defaultFilePerm fs.FileMode = 0o644
	defaultDirPerm  fs.FileMode = 0o755
)

// FS implements core.Primitives on top of a billy.Filesystem.
type FS struct {
	bfs    billy.Filesystem
	fsType core.FSType
	cfg    config
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	filePerm fs.FileMode
	dirPerm  fs.FileMode
}

// WithFilePerm sets the permission bits used when creating files.
func WithFilePerm(perm fs.FileMode) Option {
	return func(c *config) {
		c.filePerm = perm
	}
}

// WithDirPerm sets the permission bits used when creating directories.
func WithDirPerm(perm fs.FileMode) Option {
	return func(c *config) {
		c.dirPerm = perm
	}
}

// NewLocal creates a go-billy-backed local filesystem rooted at root.
// An empty root means the filesystem root ("/").
func NewLocal(root string, opts ...Option) *FS {
	if root == "" {
		root = "/"
	}
	return New(osfs.New(root), core.FSTypeLocal, opts...)
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory(opts ...Option) *FS {
	bfs := memfs.New()
	// memfs has no root entry until something is created below it.
	_ = bfs.MkdirAll("/", defaultDirPerm)
	return New(bfs, core.FSTypeMemory, opts...)
}

// New wraps an existing billy.Filesystem.
func New(bfs billy.Filesystem, fsType core.FSType, opts ...Option) *FS {
	cfg := config{
		filePerm: defaultFilePerm,
		dirPerm:  defaultDirPerm,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FS{bfs: bfs, fsType: fsType, cfg: cfg}
}

// Unwrap returns the underlying billy.Filesystem.
func (f *FS) Unwrap() billy.Filesystem {
	return f.bfs
}

// Type returns the filesystem type given at construction.
func (f *FS) Type() core.FSType {
	return f.fsType
}

// normalize converts paths to a clean, slash separated form anchored at the
// filesystem root. memfs keys "a" and "/a" differently and only tracks
// children of "/" correctly, so every path is made absolute.
func normalize(name string) string {
	return path.Clean("/" + filepath.ToSlash(name))
}

// pathError reports err against the caller's name instead of the backend's
// resolved path.
func pathError(op, name string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// Open opens the named file according to opts.
func (f *FS) Open(name string, opts core.Options) (core.Handle, error) {
	mode, err := core.ParseMode(opts.Mode)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	enc, err := f.charset(mode, opts.Charset)
	if err != nil {
		return nil, pathError("open", name, err)
	}

	p := normalize(name)
	info, err := f.bfs.Stat(p)
	switch {
	case err == nil && info.IsDir():
		return nil, pathError("open", name, core.ErrIsDir)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, pathError("open", name, err)
	case err != nil && !mode.Write:
		return nil, pathError("open", name, core.ErrNotExist)
	case err != nil:
		// Both backends create missing parents on O_CREATE.
		if err := f.requireParent(p); err != nil {
			return nil, pathError("open", name, err)
		}
	}

	file, err := f.bfs.OpenFile(p, mode.Flags(), f.cfg.filePerm)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	return handle.New(name, &File{file: file, append: mode.Append}, mode, enc), nil
}

// charset resolves the handle encoding. Binary modes never transcode.
func (f *FS) charset(mode core.Mode, name string) (encoding.Encoding, error) {
	if mode.Binary {
		return nil, nil
	}
	return handle.LookupCharset(name)
}

// Size returns the size of the named file in bytes.
func (f *FS) Size(name string) (int64, error) {
	info, err := f.bfs.Stat(normalize(name))
	if err != nil {
		return 0, pathError("size", name, err)
	}
	if info.IsDir() {
		return 0, pathError("size", name, core.ErrIsDir)
	}
	return info.Size(), nil
}

// Copy copies the file src to dst. dst must not exist and its parent must.
func (f *FS) Copy(src, dst string) error {
	s, d := normalize(src), normalize(dst)

	info, err := f.bfs.Stat(s)
	if err != nil {
		return pathError("copy", src, err)
	}
	if info.IsDir() {
		return pathError("copy", src, core.ErrIsDir)
	}
	if f.Exists(d) {
		return pathError("copy", dst, core.ErrExist)
	}
	if err := f.requireParent(d); err != nil {
		return pathError("copy", dst, err)
	}

	return f.copyFile(s, d, info.Mode().Perm())
}

func (f *FS) copyFile(src, dst string, perm fs.FileMode) (err error) {
	in, err := f.bfs.Open(src)
	if err != nil {
		return pathError("copy", src, err)
	}
	defer func() { _ = in.Close() }()

	if perm == 0 {
		perm = f.cfg.filePerm
	}
	out, err := f.bfs.OpenFile(dst, core.Mode{Write: true}.Flags(), perm)
	if err != nil {
		return pathError("copy", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = pathError("copy", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return pathError("copy", dst, err)
	}
	return nil
}

// CopyTree recursively copies the directory src into dst, creating dst and
// any missing directories below it. Existing files in dst are not
// overwritten; the first conflict aborts the copy.
func (f *FS) CopyTree(src, dst string) error {
	s, d := normalize(src), normalize(dst)

	info, err := f.bfs.Stat(s)
	if err != nil {
		return pathError("copytree", src, err)
	}
	if !info.IsDir() {
		return pathError("copytree", src, core.ErrNotDir)
	}
	if d == s || s == "/" || strings.HasPrefix(d, s+"/") {
		return pathError("copytree", dst, fs.ErrInvalid)
	}

	return f.copyTree(s, d)
}

func (f *FS) copyTree(src, dst string) error {
	if err := f.bfs.MkdirAll(dst, f.cfg.dirPerm); err != nil {
		return pathError("copytree", dst, err)
	}

	entries, err := f.bfs.ReadDir(src)
	if err != nil {
		return pathError("copytree", src, err)
	}
	for _, entry := range entries {
		from := path.Join(src, entry.Name())
		to := path.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := f.copyTree(from, to); err != nil {
				return err
			}
			continue
		}
		if f.Exists(to) {
			return pathError("copytree", to, core.ErrExist)
		}
		if err := f.copyFile(from, to, entry.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

// Remove removes a single file.
func (f *FS) Remove(name string) error {
	p := normalize(name)
	info, err := f.bfs.Stat(p)
	if err != nil {
		return pathError("remove", name, err)
	}
	if info.IsDir() {
		return pathError("remove", name, core.ErrIsDir)
	}
	if err := f.bfs.Remove(p); err != nil {
		return pathError("remove", name, err)
	}
	return nil
}

// RemoveDirectory removes an empty directory.
func (f *FS) RemoveDirectory(name string) error {
	p := normalize(name)
	if p == "/" {
		return pathError("rmdir", name, fs.ErrInvalid)
	}
	if err := f.requireDir(p); err != nil {
		return pathError("rmdir", name, err)
	}

	entries, err := f.bfs.ReadDir(p)
	if err != nil {
		return pathError("rmdir", name, err)
	}
	if len(entries) > 0 {
		return pathError("rmdir", name, core.ErrNotEmpty)
	}
	if err := f.bfs.Remove(p); err != nil {
		return pathError("rmdir", name, err)
	}
	return nil
}

// RemoveTree removes the directory and everything below it. Unlike
// os.RemoveAll it fails when the directory does not exist.
func (f *FS) RemoveTree(name string) error {
	p := normalize(name)
	if err := f.requireDir(p); err != nil {
		return pathError("rmtree", name, err)
	}
	return f.removeAll(p)
}

// removeAll removes path depth-first. billy has no RemoveAll.
func (f *FS) removeAll(p string) error {
	entries, err := f.bfs.ReadDir(p)
	if err != nil {
		return pathError("rmtree", p, err)
	}
	for _, entry := range entries {
		child := path.Join(p, entry.Name())
		if entry.IsDir() {
			if err := f.removeAll(child); err != nil {
				return err
			}
			continue
		}
		if err := f.bfs.Remove(child); err != nil {
			return pathError("rmtree", child, err)
		}
	}
	if p == "/" {
		return nil
	}
	if err := f.bfs.Remove(p); err != nil {
		return pathError("rmtree", p, err)
	}
	return nil
}

// Exists reports whether the named file or directory exists.
func (f *FS) Exists(name string) bool {
	_, err := f.bfs.Stat(normalize(name))
	return err == nil
}

// List returns the names of the entries in the directory, sorted.
func (f *FS) List(name string) ([]string, error) {
	p := normalize(name)
	if err := f.requireDir(p); err != nil {
		return nil, pathError("list", name, err)
	}

	entries, err := f.bfs.ReadDir(p)
	if err != nil {
		return nil, pathError("list", name, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// MakeDirectory creates a single directory. Unlike MakeTree this fails if
// the parent directory does not exist or the directory already exists.
func (f *FS) MakeDirectory(name string) error {
	p := normalize(name)
	if f.Exists(p) {
		return pathError("mkdir", name, core.ErrExist)
	}
	if err := f.requireParent(p); err != nil {
		return pathError("mkdir", name, err)
	}
	if err := f.bfs.MkdirAll(p, f.cfg.dirPerm); err != nil {
		return pathError("mkdir", name, err)
	}
	return nil
}

// MakeTree creates a directory along with any necessary parents. An
// existing directory is not an error.
func (f *FS) MakeTree(name string) error {
	p := normalize(name)
	info, err := f.bfs.Stat(p)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return pathError("mkdirall", name, core.ErrNotDir)
	}
	for dir := path.Dir(p); dir != "/"; dir = path.Dir(dir) {
		if info, err := f.bfs.Stat(dir); err == nil && !info.IsDir() {
			return pathError("mkdirall", name, core.ErrNotDir)
		}
	}
	if err := f.bfs.MkdirAll(p, f.cfg.dirPerm); err != nil {
		return pathError("mkdirall", name, err)
	}
	return nil
}

// FromNativeSeparators converts the host separators to forward slashes.
func (f *FS) FromNativeSeparators(name string) string {
	return filepath.ToSlash(name)
}

// requireDir returns nil if p is an existing directory.
func (f *FS) requireDir(p string) error {
	info, err := f.bfs.Stat(p)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return core.ErrNotDir
	}
	return nil
}

// requireParent returns nil if the parent of p is an existing directory.
func (f *FS) requireParent(p string) error {
	parent := path.Dir(p)
	if parent == "/" {
		return nil
	}
	return f.requireDir(parent)
}

// Compile-time interface check.
var _ core.Primitives = (*FS)(nil)
