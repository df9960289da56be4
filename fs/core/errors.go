package core

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a file or directory already exists.
	// Re-exported from io/fs for convenience.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when permission is denied.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrClosed is returned when an operation is performed on a closed handle.
	// Re-exported from io/fs for convenience.
	ErrClosed = fs.ErrClosed

	// ErrUnsupported is returned when a provider cannot perform an operation,
	// such as writing through a read-only handle on an object store.
	ErrUnsupported = errors.ErrUnsupported

	// ErrNotEmpty is returned when removing a directory that still has entries.
	ErrNotEmpty = errors.New("directory not empty")

	// ErrIsDir is returned when a file operation targets a directory.
	ErrIsDir = errors.New("is a directory")

	// ErrNotDir is returned when a directory operation targets a file.
	ErrNotDir = errors.New("not a directory")

	// ErrInvalidMode is returned when an open mode contains none of r, w, a or +.
	ErrInvalidMode = fmt.Errorf("%w: open mode must contain r, w, a or +", fs.ErrInvalid)

	// ErrInvalidCharset is returned when a charset name is unknown.
	ErrInvalidCharset = fmt.Errorf("%w: unknown charset", fs.ErrInvalid)
)
