package scriptfs

import (
	"bytes"
	stderrors "errors"
	"io"

	"github.com/jmgilman/scriptfs/errors"
	"github.com/zeebo/blake3"
)

const digestChunk = 64 * 1024

// verify compares the BLAKE3 digests of src and dst.
func (f *FileSystem) verify(src, dst string) error {
	srcSum, err := f.digest(src)
	if err != nil {
		return err
	}
	dstSum, err := f.digest(dst)
	if err != nil {
		return err
	}

	if !bytes.Equal(srcSum, dstSum) {
		f.logger.Warn("move verification failed", "source", src, "destination", dst)
		err := errors.Newf(errors.CodeConflict, "unable to verify copy of '%s' at '%s'", src, dst)
		return errors.WithContextMap(err, copyContext("move", src, dst))
	}
	return nil
}

// digest hashes the content of path read in binary mode.
func (f *FileSystem) digest(path string) (sum []byte, err error) {
	h, err := f.open(path, OpenOptions{Mode: "rb"}.options())
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = h.Close()
	}()

	hasher := blake3.New()
	for {
		chunk, err := h.ReadN(digestChunk)
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, f.fail(err, pathContext("move", path), "unable to read file '%s'", path)
		}
		_, _ = hasher.WriteString(chunk)
	}
	return hasher.Sum(nil), nil
}
