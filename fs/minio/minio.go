package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmgilman/scriptfs/fs/core"
	"github.com/jmgilman/scriptfs/fs/handle"
	"github.com/jmgilman/scriptfs/fs/minio/internal/errs"
	"github.com/jmgilman/scriptfs/fs/minio/internal/pathutil"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
)

// MinioFS implements core.Primitives for MinIO/S3-compatible storage.
//
// Directories are virtual: a directory exists while any object lives below
// its prefix. MakeDirectory and MakeTree store an empty "dir/" marker object
// so empty directories survive.
//
//nolint:revive // MinioFS name is intentional to match naming pattern across fs implementations
type MinioFS struct {
	client             *minio.Client
	bucket             string
	prefix             string // Optional prefix for all keys
	multipartThreshold int64  // Part size for uploads
	copyConcurrency    int    // Max concurrent copies during CopyTree
	cfg                Config
}

// NewMinIO creates a MinIO-backed filesystem.
// Returns error if configuration is invalid or connection fails.
func NewMinIO(cfg Config) (*MinioFS, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	multipartThreshold := cfg.MultipartThreshold
	if multipartThreshold == 0 {
		multipartThreshold = minPartSize
	}

	copyConcurrency := cfg.MaxCopyConcurrency
	if copyConcurrency == 0 {
		copyConcurrency = 10
	}

	return &MinioFS{
		client:             client,
		bucket:             cfg.Bucket,
		prefix:             pathutil.NormalizePrefix(cfg.Prefix),
		multipartThreshold: multipartThreshold,
		copyConcurrency:    copyConcurrency,
		cfg:                cfg,
	}, nil
}

// Type returns FSTypeRemote.
func (m *MinioFS) Type() core.FSType {
	return core.FSTypeRemote
}

// joinPath joins the filesystem prefix with the given name.
func (m *MinioFS) joinPath(name string) string {
	return pathutil.JoinPath(m.prefix, name)
}

// isRoot reports whether name refers to the filesystem root.
func isRoot(name string) bool {
	return pathutil.Normalize(name) == "."
}

// context returns the context for a single primitive call.
func (m *MinioFS) context() (context.Context, context.CancelFunc) {
	if m.cfg.OperationTimeout > 0 {
		return context.WithTimeout(context.Background(), m.cfg.OperationTimeout)
	}
	return context.WithCancel(context.Background())
}

// statFile reports whether an object exists at key. Missing objects are not
// an error.
func (m *MinioFS) statFile(ctx context.Context, key string) (minio.ObjectInfo, bool, error) {
	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return info, true, nil
	}
	if err = errs.Translate(err); errors.Is(err, fs.ErrNotExist) {
		return minio.ObjectInfo{}, false, nil
	}
	return minio.ObjectInfo{}, false, err
}

// isDir reports whether any object, marker included, lives below key.
func (m *MinioFS) isDir(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    pathutil.DirPrefix(key),
		Recursive: true,
		MaxKeys:   1,
	}) {
		if object.Err != nil {
			return false, errs.Translate(object.Err)
		}
		return true, nil
	}
	return false, nil
}

// missing returns the error for a key with no object: ErrIsDir when a
// directory lives there, ErrNotExist otherwise.
func (m *MinioFS) missing(ctx context.Context, key string) error {
	dir, err := m.isDir(ctx, key)
	if err != nil {
		return err
	}
	if dir {
		return core.ErrIsDir
	}
	return core.ErrNotExist
}

// Open opens the named file according to opts.
//
// Objects cannot be modified in place, so handles work on an in-memory copy
// of the object. Write modes upload the whole content on Flush and Close.
func (m *MinioFS) Open(name string, opts core.Options) (core.Handle, error) {
	mode, err := core.ParseMode(opts.Mode)
	if err != nil {
		return nil, errs.PathError("open", name, err)
	}
	var enc encoding.Encoding
	if !mode.Binary {
		if enc, err = handle.LookupCharset(opts.Charset); err != nil {
			return nil, errs.PathError("open", name, err)
		}
	}
	if isRoot(name) {
		return nil, errs.PathError("open", name, core.ErrIsDir)
	}

	ctx, cancel := m.context()
	defer cancel()

	key := m.joinPath(name)
	_, exists, err := m.statFile(ctx, key)
	if err != nil {
		return nil, errs.PathError("open", name, err)
	}
	if !exists {
		if err := m.missing(ctx, key); !errors.Is(err, core.ErrNotExist) || !mode.Write {
			return nil, errs.PathError("open", name, err)
		}
	}

	var data []byte
	if exists && (mode.Read || mode.Append) {
		if data, err = m.getObject(ctx, key); err != nil {
			return nil, errs.PathError("open", name, err)
		}
	}

	var commit func([]byte) error
	if mode.Write {
		commit = func(content []byte) error {
			return m.putObject(key, content)
		}
	}

	return handle.New(name, handle.NewBuffer(data, mode.Append, commit), mode, enc), nil
}

func (m *MinioFS) getObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.Translate(err)
	}
	defer func() {
		_ = obj.Close()
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errs.Translate(err)
	}
	return data, nil
}

// putObject uploads content to key. It runs outside the Open call, so it
// gets its own context.
func (m *MinioFS) putObject(key string, content []byte) error {
	ctx, cancel := m.context()
	defer cancel()

	_, err := m.client.PutObject(
		ctx,
		m.bucket,
		key,
		bytes.NewReader(content),
		int64(len(content)),
		minio.PutObjectOptions{
			ContentType: "application/octet-stream",
			PartSize:    uint64(m.multipartThreshold),
		},
	)
	return errs.Translate(err)
}

// putMarker stores the empty marker object for the directory key.
func (m *MinioFS) putMarker(ctx context.Context, key string) error {
	_, err := m.client.PutObject(ctx, m.bucket, pathutil.DirPrefix(key), bytes.NewReader(nil), 0,
		minio.PutObjectOptions{ContentType: "application/x-directory"})
	return errs.Translate(err)
}

// Size returns the size of the named object in bytes.
func (m *MinioFS) Size(name string) (int64, error) {
	if isRoot(name) {
		return 0, errs.PathError("size", name, core.ErrIsDir)
	}

	ctx, cancel := m.context()
	defer cancel()

	key := m.joinPath(name)
	info, exists, err := m.statFile(ctx, key)
	if err != nil {
		return 0, errs.PathError("size", name, err)
	}
	if !exists {
		return 0, errs.PathError("size", name, m.missing(ctx, key))
	}
	return info.Size, nil
}

// Copy copies the object src to dst with a server-side copy. dst must not exist.
func (m *MinioFS) Copy(src, dst string) error {
	ctx, cancel := m.context()
	defer cancel()

	srcKey, dstKey := m.joinPath(src), m.joinPath(dst)
	if isRoot(src) {
		return errs.PathError("copy", src, core.ErrIsDir)
	}
	_, exists, err := m.statFile(ctx, srcKey)
	if err != nil {
		return errs.PathError("copy", src, err)
	}
	if !exists {
		return errs.PathError("copy", src, m.missing(ctx, srcKey))
	}

	if isRoot(dst) || m.exists(ctx, dstKey) {
		return errs.PathError("copy", dst, core.ErrExist)
	}

	_, err = m.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: m.bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: m.bucket, Object: srcKey},
	)
	return errs.PathError("copy", dst, errs.Translate(err))
}

// CopyTree copies every object below src to the same relative key below
// dst. Copies run in parallel, bounded by MaxCopyConcurrency. Existing
// objects in dst are not overwritten; directory markers merge.
//
// IMPORTANT: This operation is NOT atomic. If a copy fails, the objects
// copied so far remain at dst.
func (m *MinioFS) CopyTree(src, dst string) error {
	ctx, cancel := m.context()
	defer cancel()

	srcKey, dstKey := m.joinPath(src), m.joinPath(dst)
	if isRoot(src) || srcKey == dstKey || pathutil.IsWithin(dstKey, srcKey) {
		return errs.PathError("copytree", dst, fs.ErrInvalid)
	}

	_, exists, err := m.statFile(ctx, srcKey)
	if err != nil {
		return errs.PathError("copytree", src, err)
	}
	if exists {
		return errs.PathError("copytree", src, core.ErrNotDir)
	}

	copied, err := m.parallelCopy(ctx, pathutil.DirPrefix(srcKey), pathutil.DirPrefix(dstKey))
	if err != nil {
		return errs.PathError("copytree", src, err)
	}
	if copied == 0 {
		return errs.PathError("copytree", src, core.ErrNotExist)
	}
	return nil
}

// parallelCopy copies objects from old to new prefix using a worker pool.
// Returns the number of objects seen below the old prefix.
func (m *MinioFS) parallelCopy(ctx context.Context, oldPrefix, newPrefix string) (int, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(m.copyConcurrency)

	seen := 0
	for object := range m.client.ListObjects(egCtx, m.bucket, minio.ListObjectsOptions{
		Prefix:    oldPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			_ = eg.Wait()
			return seen, errs.Translate(object.Err)
		}
		seen++

		objectKey := object.Key
		eg.Go(func() error {
			newKey := newPrefix + strings.TrimPrefix(objectKey, oldPrefix)

			_, exists, err := m.statFile(egCtx, newKey)
			if err != nil {
				return err
			}
			if exists {
				if strings.HasSuffix(newKey, "/") {
					return nil
				}
				return fmt.Errorf("copy object %s to %s: %w", objectKey, newKey, core.ErrExist)
			}

			_, err = m.client.CopyObject(egCtx,
				minio.CopyDestOptions{Bucket: m.bucket, Object: newKey},
				minio.CopySrcOptions{Bucket: m.bucket, Object: objectKey},
			)
			if err != nil {
				return fmt.Errorf("copy object %s to %s: %w", objectKey, newKey, errs.Translate(err))
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return seen, fmt.Errorf("parallel copy failed: %w", err)
	}
	return seen, nil
}

// Remove removes a single object.
func (m *MinioFS) Remove(name string) error {
	if isRoot(name) {
		return errs.PathError("remove", name, core.ErrIsDir)
	}

	ctx, cancel := m.context()
	defer cancel()

	key := m.joinPath(name)
	_, exists, err := m.statFile(ctx, key)
	if err != nil {
		return errs.PathError("remove", name, err)
	}
	if !exists {
		return errs.PathError("remove", name, m.missing(ctx, key))
	}

	err = m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	return errs.PathError("remove", name, errs.Translate(err))
}

// RemoveDirectory removes the marker of an empty directory.
func (m *MinioFS) RemoveDirectory(name string) error {
	if isRoot(name) {
		return errs.PathError("rmdir", name, fs.ErrInvalid)
	}

	ctx, cancel := m.context()
	defer cancel()

	key := m.joinPath(name)
	marker := pathutil.DirPrefix(key)
	hasMarker, hasEntries := false, false

	listCtx, stop := context.WithCancel(ctx)
	defer stop()
	for object := range m.client.ListObjects(listCtx, m.bucket, minio.ListObjectsOptions{
		Prefix:    marker,
		Recursive: true,
	}) {
		if object.Err != nil {
			return errs.PathError("rmdir", name, errs.Translate(object.Err))
		}
		if object.Key == marker {
			hasMarker = true
			continue
		}
		hasEntries = true
		break
	}

	switch {
	case hasEntries:
		return errs.PathError("rmdir", name, core.ErrNotEmpty)
	case !hasMarker:
		if _, exists, err := m.statFile(ctx, key); err != nil || exists {
			if err == nil {
				err = core.ErrNotDir
			}
			return errs.PathError("rmdir", name, err)
		}
		return errs.PathError("rmdir", name, core.ErrNotExist)
	}

	err := m.client.RemoveObject(ctx, m.bucket, marker, minio.RemoveObjectOptions{})
	return errs.PathError("rmdir", name, errs.Translate(err))
}

// RemoveTree removes every object below name using the batch delete API.
// Removing the root empties the filesystem.
func (m *MinioFS) RemoveTree(name string) error {
	ctx, cancel := m.context()
	defer cancel()

	key := m.joinPath(name)
	if !isRoot(name) {
		if _, exists, err := m.statFile(ctx, key); err != nil || exists {
			if err == nil {
				err = core.ErrNotDir
			}
			return errs.PathError("rmtree", name, err)
		}
	}

	listCtx, stopList := context.WithCancel(ctx)
	defer stopList()

	objectsCh := make(chan minio.ObjectInfo, 100)
	listDone := make(chan struct{})

	var listErr error
	listed := 0
	go func() {
		defer close(listDone)
		defer close(objectsCh)
		for object := range m.client.ListObjects(listCtx, m.bucket, minio.ListObjectsOptions{
			Prefix:    pathutil.DirPrefix(key),
			Recursive: true,
		}) {
			if object.Err != nil {
				listErr = object.Err
				return
			}
			select {
			case objectsCh <- object:
				listed++
			case <-listCtx.Done():
				return
			}
		}
	}()

	var errList []error
	for err := range m.client.RemoveObjects(ctx, m.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if err.Err != nil {
			errList = append(errList, err.Err)
		}
	}

	// RemoveObjects may stop before draining objectsCh.
	stopList()
	<-listDone

	if len(errList) > 0 {
		return errs.PathError("rmtree", name, errs.Translate(errList[0]))
	}
	if listErr != nil {
		return errs.PathError("rmtree", name, errs.Translate(listErr))
	}
	if listed == 0 && !isRoot(name) {
		return errs.PathError("rmtree", name, core.ErrNotExist)
	}
	return nil
}

// Exists reports whether an object or a virtual directory exists at name.
func (m *MinioFS) Exists(name string) bool {
	if isRoot(name) {
		return true
	}

	ctx, cancel := m.context()
	defer cancel()

	return m.exists(ctx, m.joinPath(name))
}

func (m *MinioFS) exists(ctx context.Context, key string) bool {
	if _, exists, err := m.statFile(ctx, key); err == nil && exists {
		return true
	}
	dir, err := m.isDir(ctx, key)
	return err == nil && dir
}

// List returns the names of the entries in the virtual directory, sorted.
func (m *MinioFS) List(name string) ([]string, error) {
	ctx, cancel := m.context()
	defer cancel()

	key := m.joinPath(name)
	if !isRoot(name) {
		if _, exists, err := m.statFile(ctx, key); err != nil || exists {
			if err == nil {
				err = core.ErrNotDir
			}
			return nil, errs.PathError("list", name, err)
		}
	}

	prefix := pathutil.DirPrefix(key)
	found := false
	names := []string{}
	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if object.Err != nil {
			return nil, errs.PathError("list", name, errs.Translate(object.Err))
		}
		found = true

		// Skip the directory marker itself
		if object.Key == prefix {
			continue
		}
		if rel := strings.TrimSuffix(strings.TrimPrefix(object.Key, prefix), "/"); rel != "" {
			names = append(names, rel)
		}
	}

	if !found && !isRoot(name) {
		return nil, errs.PathError("list", name, core.ErrNotExist)
	}

	// MinIO typically returns results sorted by key, but we enforce it
	sort.Strings(names)
	return names, nil
}

// MakeDirectory creates a directory marker. Parent directories are virtual,
// so they are not required to exist.
func (m *MinioFS) MakeDirectory(name string) error {
	if isRoot(name) {
		return errs.PathError("mkdir", name, core.ErrExist)
	}

	ctx, cancel := m.context()
	defer cancel()

	key := m.joinPath(name)
	if m.exists(ctx, key) {
		return errs.PathError("mkdir", name, core.ErrExist)
	}
	return errs.PathError("mkdir", name, m.putMarker(ctx, key))
}

// MakeTree creates a directory marker unless the directory already exists.
func (m *MinioFS) MakeTree(name string) error {
	if isRoot(name) {
		return nil
	}

	ctx, cancel := m.context()
	defer cancel()

	key := m.joinPath(name)
	_, exists, err := m.statFile(ctx, key)
	switch {
	case err != nil:
		return errs.PathError("mkdirall", name, err)
	case exists:
		return errs.PathError("mkdirall", name, core.ErrNotDir)
	}

	dir, err := m.isDir(ctx, key)
	if err != nil {
		return errs.PathError("mkdirall", name, err)
	}
	if dir {
		return nil
	}
	return errs.PathError("mkdirall", name, m.putMarker(ctx, key))
}

// FromNativeSeparators converts backslashes to forward slashes. Object keys
// have no native separator other than "/".
func (m *MinioFS) FromNativeSeparators(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}

// Compile-time interface check.
var _ core.Primitives = (*MinioFS)(nil)
