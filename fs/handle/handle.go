package handle

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/jmgilman/scriptfs/fs/core"
	"golang.org/x/text/encoding"
)

// Stream is the native file a Handle drives.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
}

// Handle implements core.Handle on top of a Stream.
type Handle struct {
	name   string
	stream Stream
	mode   core.Mode
	enc    encoding.Encoding // nil passes bytes through
	r      *bufio.Reader     // lazily created for ReadN, ReadLine and AtEnd
	closed bool
}

// New wraps stream in a Handle. enc is ignored for binary modes and may be
// nil for UTF-8 content; use LookupCharset to resolve a charset name.
func New(name string, stream Stream, mode core.Mode, enc encoding.Encoding) *Handle {
	if mode.Binary {
		enc = nil
	}
	return &Handle{
		name:   name,
		stream: stream,
		mode:   mode,
		enc:    enc,
	}
}

// Name returns the name the handle was opened with.
func (h *Handle) Name() string {
	return h.name
}

// Read returns the whole content from the start of the file and restores
// the current position.
func (h *Handle) Read() (string, error) {
	if err := h.check("read", h.mode.Read); err != nil {
		return "", err
	}
	if err := h.dropReader(); err != nil {
		return "", h.pathError("read", err)
	}

	pos, err := h.stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", h.pathError("read", err)
	}
	if _, err := h.stream.Seek(0, io.SeekStart); err != nil {
		return "", h.pathError("read", err)
	}
	data, err := io.ReadAll(h.stream)
	if err != nil {
		return "", h.pathError("read", err)
	}
	if _, err := h.stream.Seek(pos, io.SeekStart); err != nil {
		return "", h.pathError("read", err)
	}

	return h.decode(data)
}

// ReadN reads up to n characters from the current position. In binary mode
// n counts bytes. A negative n reads the whole content like Read.
func (h *Handle) ReadN(n int) (string, error) {
	if n < 0 {
		return h.Read()
	}
	if err := h.check("read", h.mode.Read); err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}

	r := h.reader()
	if h.mode.Binary {
		buf := make([]byte, n)
		read, err := io.ReadFull(r, buf)
		if read == 0 && err != nil {
			return "", h.eofOrPathError("read", err)
		}
		return string(buf[:read]), nil
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		c, _, err := r.ReadRune()
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				break
			}
			return b.String(), h.eofOrPathError("read", err)
		}
		b.WriteRune(c)
	}
	return b.String(), nil
}

// ReadLine reads the next line without its "\n" or "\r\n" terminator.
// It returns io.EOF once nothing is left.
func (h *Handle) ReadLine() (string, error) {
	if err := h.check("readline", h.mode.Read); err != nil {
		return "", err
	}

	line, err := h.reader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", h.eofOrPathError("readline", err)
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Write writes content at the current position, or at the end in append modes.
func (h *Handle) Write(content string) error {
	if err := h.check("write", h.mode.Write); err != nil {
		return err
	}
	if err := h.dropReader(); err != nil {
		return h.pathError("write", err)
	}

	data := []byte(content)
	if h.enc != nil {
		encoded, err := h.enc.NewEncoder().Bytes(data)
		if err != nil {
			return h.pathError("write", err)
		}
		data = encoded
	}

	if _, err := h.stream.Write(data); err != nil {
		return h.pathError("write", err)
	}
	return nil
}

// WriteLine writes content followed by a newline.
func (h *Handle) WriteLine(content string) error {
	return h.Write(content + "\n")
}

// Seek moves the position to the absolute byte offset pos.
func (h *Handle) Seek(pos int64) error {
	if h.closed {
		return h.pathError("seek", fs.ErrClosed)
	}
	h.r = nil
	if _, err := h.stream.Seek(pos, io.SeekStart); err != nil {
		return h.pathError("seek", err)
	}
	return nil
}

// AtEnd reports whether nothing is left to read. Handles without read
// access are never at the end.
func (h *Handle) AtEnd() bool {
	if h.closed || !h.mode.Read {
		return false
	}
	_, err := h.reader().Peek(1)
	return errors.Is(err, io.EOF)
}

// Flush commits written data to the provider when the stream supports it.
func (h *Handle) Flush() error {
	if h.closed {
		return h.pathError("flush", fs.ErrClosed)
	}
	if s, ok := h.stream.(core.Syncer); ok {
		if err := s.Sync(); err != nil {
			return h.pathError("flush", err)
		}
	}
	return nil
}

// Close flushes and closes the stream.
func (h *Handle) Close() error {
	if h.closed {
		return h.pathError("close", fs.ErrClosed)
	}
	flushErr := h.Flush()
	h.closed = true
	h.r = nil
	if err := h.stream.Close(); err != nil {
		return h.pathError("close", err)
	}
	return flushErr
}

func (h *Handle) check(op string, allowed bool) error {
	if h.closed {
		return h.pathError(op, fs.ErrClosed)
	}
	if !allowed {
		return h.pathError(op, fs.ErrInvalid)
	}
	return nil
}

// reader returns the buffered reader used by the incremental read methods.
func (h *Handle) reader() *bufio.Reader {
	if h.r == nil {
		var src io.Reader = h.stream
		if h.enc != nil {
			src = h.enc.NewDecoder().Reader(h.stream)
		}
		h.r = bufio.NewReader(src)
	}
	return h.r
}

// dropReader discards the buffered reader and moves the stream back to the
// logical read position. With a transcoding charset the decoder's own
// buffering makes that position unknowable, so the stream stays where the
// decoder left it.
func (h *Handle) dropReader() error {
	if h.r == nil {
		return nil
	}
	buffered := h.r.Buffered()
	h.r = nil
	if h.enc != nil || buffered == 0 {
		return nil
	}
	_, err := h.stream.Seek(-int64(buffered), io.SeekCurrent)
	return err
}

func (h *Handle) decode(data []byte) (string, error) {
	if h.enc == nil {
		return string(data), nil
	}
	decoded, err := h.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", h.pathError("read", err)
	}
	return string(decoded), nil
}

func (h *Handle) eofOrPathError(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return io.EOF
	}
	return h.pathError(op, err)
}

func (h *Handle) pathError(op string, err error) error {
	return &fs.PathError{Op: op, Path: h.name, Err: err}
}

// Compile-time interface check.
var _ core.Handle = (*Handle)(nil)
