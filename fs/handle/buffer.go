package handle

import (
	"errors"
	"io"
	"io/fs"
)

// Buffer is an in-memory seekable stream for providers without native
// random-access files.
//
// Writes accumulate in memory; the commit function receives the full
// content on Sync and on Close whenever something changed since the last
// commit. A Buffer created with a commit function starts out dirty so that
// opening an object for writing creates it even if nothing is written.
type Buffer struct {
	data   []byte
	pos    int64
	append bool
	commit func(data []byte) error
	dirty  bool
	closed bool
}

// NewBuffer returns a Buffer holding data. In append mode every write lands
// at the end of the content. commit may be nil for read-only buffers.
func NewBuffer(data []byte, appendMode bool, commit func(data []byte) error) *Buffer {
	return &Buffer{
		data:   data,
		append: appendMode,
		commit: commit,
		dirty:  commit != nil,
	}
}

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.closed {
		return 0, fs.ErrClosed
	}
	if b.pos >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Write implements io.Writer. Writing past the end pads with zero bytes.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.closed {
		return 0, fs.ErrClosed
	}
	if b.commit == nil {
		return 0, errors.ErrUnsupported
	}
	if b.append {
		b.pos = int64(len(b.data))
	}

	end := b.pos + int64(len(p))
	if end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:end], p)
	b.pos = end
	b.dirty = true
	return len(p), nil
}

// Seek implements io.Seeker.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	if b.closed {
		return 0, fs.ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.pos + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, fs.ErrInvalid
	}
	if abs < 0 {
		return 0, fs.ErrInvalid
	}
	b.pos = abs
	return abs, nil
}

// Sync hands the content to the commit function if it changed.
func (b *Buffer) Sync() error {
	if b.closed {
		return fs.ErrClosed
	}
	return b.sync()
}

func (b *Buffer) sync() error {
	if !b.dirty || b.commit == nil {
		return nil
	}
	if err := b.commit(b.data); err != nil {
		return err
	}
	b.dirty = false
	return nil
}

// Close commits pending changes and releases the buffer.
func (b *Buffer) Close() error {
	if b.closed {
		return fs.ErrClosed
	}
	err := b.sync()
	b.closed = true
	return err
}

// Bytes returns the current content.
func (b *Buffer) Bytes() []byte {
	return b.data
}
