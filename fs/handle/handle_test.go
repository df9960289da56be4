package handle

import (
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/scriptfs/fs/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandle(t *testing.T, content string, mode string, charset string) (*Handle, *Buffer) {
	t.Helper()

	m, err := core.ParseMode(mode)
	require.NoError(t, err)
	enc, err := LookupCharset(charset)
	require.NoError(t, err)

	var commit func([]byte) error
	if m.Write {
		commit = func([]byte) error { return nil }
	}
	buf := NewBuffer([]byte(content), m.Append, commit)
	return New("test.txt", buf, m, enc), buf
}

func TestHandle_ReadRestoresPosition(t *testing.T) {
	h, _ := newTestHandle(t, "line one\nline two\n", "r", "")

	line, err := h.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "line one", line)

	all, err := h.Read()
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", all)

	line, err = h.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "line two", line)

	_, err = h.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, h.AtEnd())
}

func TestHandle_ReadLine_Terminators(t *testing.T) {
	h, _ := newTestHandle(t, "a\r\nb\nlast", "r", "")

	var lines []string
	for {
		line, err := h.ReadLine()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
	assert.Equal(t, []string{"a", "b", "last"}, lines)
}

func TestHandle_ReadN(t *testing.T) {
	h, _ := newTestHandle(t, "héllo", "r", "")

	got, err := h.ReadN(2)
	require.NoError(t, err)
	assert.Equal(t, "hé", got, "text mode counts characters")

	got, err = h.ReadN(10)
	require.NoError(t, err)
	assert.Equal(t, "llo", got)

	_, err = h.ReadN(1)
	assert.ErrorIs(t, err, io.EOF)

	got, err = h.ReadN(-1)
	require.NoError(t, err)
	assert.Equal(t, "héllo", got)
}

func TestHandle_ReadN_Binary(t *testing.T) {
	h, _ := newTestHandle(t, "héllo", "rb", "")

	got, err := h.ReadN(2)
	require.NoError(t, err)
	assert.Equal(t, "h\xc3", got, "binary mode counts bytes")
}

func TestHandle_WriteAndSeek(t *testing.T) {
	h, buf := newTestHandle(t, "", "rw", "")

	require.NoError(t, h.WriteLine("first"))
	require.NoError(t, h.Write("second"))
	require.NoError(t, h.Seek(0))

	line, err := h.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	require.NoError(t, h.Close())
	assert.Equal(t, "first\nsecond", string(buf.Bytes()))
}

func TestHandle_WriteAfterLineReadContinuesAtLogicalPosition(t *testing.T) {
	h, buf := newTestHandle(t, "aaa\nbbb\n", "rw", "")

	_, err := h.ReadLine()
	require.NoError(t, err)
	require.NoError(t, h.Write("BBB"))

	assert.Equal(t, "aaa\nBBB\n", string(buf.Bytes()))
}

func TestHandle_AppendMode(t *testing.T) {
	h, buf := newTestHandle(t, "keep", "a", "")

	require.NoError(t, h.Write("+more"))
	require.NoError(t, h.Close())
	assert.Equal(t, "keep+more", string(buf.Bytes()))
}

func TestHandle_Charset(t *testing.T) {
	h, buf := newTestHandle(t, "", "rw", "ISO-8859-1")

	require.NoError(t, h.Write("café"))
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, buf.Bytes())

	got, err := h.Read()
	require.NoError(t, err)
	assert.Equal(t, "café", got)

	require.NoError(t, h.Seek(0))
	line, err := h.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "café", line)
}

func TestHandle_BinaryIgnoresCharset(t *testing.T) {
	h, buf := newTestHandle(t, "", "wb", "ISO-8859-1")

	require.NoError(t, h.Write("\x00\xff"))
	assert.Equal(t, []byte{0x00, 0xff}, buf.Bytes())
}

func TestHandle_AccessChecks(t *testing.T) {
	ro, _ := newTestHandle(t, "x", "r", "")
	assert.ErrorIs(t, ro.Write("y"), fs.ErrInvalid)

	wo, _ := newTestHandle(t, "x", "w", "")
	_, err := wo.Read()
	assert.ErrorIs(t, err, fs.ErrInvalid)
	assert.False(t, wo.AtEnd())

	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "read", pathErr.Op)
	assert.Equal(t, "test.txt", pathErr.Path)
}

func TestHandle_Close(t *testing.T) {
	h, _ := newTestHandle(t, "x", "r", "")

	require.NoError(t, h.Close())
	assert.ErrorIs(t, h.Close(), fs.ErrClosed)
	_, err := h.Read()
	assert.ErrorIs(t, err, fs.ErrClosed)
	assert.ErrorIs(t, h.Flush(), fs.ErrClosed)
	assert.False(t, h.AtEnd())
}

func TestHandle_Name(t *testing.T) {
	h, _ := newTestHandle(t, "", "r", "")
	assert.Equal(t, "test.txt", h.Name())
}
