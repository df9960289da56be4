package fstest

import (
	"io/fs"
	"testing"

	"github.com/jmgilman/scriptfs/fs/core"
)

// TestFileFS tests Open modes and Size.
// Uses POSIXTestConfig() by default.
func TestFileFS(t *testing.T, p core.Primitives) {
	TestFileFSWithConfig(t, p, POSIXTestConfig())
}

// TestFileFSWithConfig tests Open modes and Size with behavior configuration.
func TestFileFSWithConfig(t *testing.T, p core.Primitives, config FSTestConfig) {
	mkdirAll(t, p, "files")

	run := func(name string, fn func(t *testing.T)) {
		subtest(t, config, "FileFS", name, fn)
	}

	run("WriteThenRead", func(t *testing.T) {
		writeFile(t, p, "files/basic.txt", "hello world")
		if got := readFile(t, p, "files/basic.txt"); got != "hello world" {
			t.Errorf("Read(files/basic.txt): got %q, want %q", got, "hello world")
		}
	})

	run("WriteTruncates", func(t *testing.T) {
		writeFile(t, p, "files/trunc.txt", "a long first version")
		writeFile(t, p, "files/trunc.txt", "short")
		if got := readFile(t, p, "files/trunc.txt"); got != "short" {
			t.Errorf("Read(files/trunc.txt): got %q, want %q", got, "short")
		}
	})

	run("AppendMode", func(t *testing.T) {
		writeFile(t, p, "files/append.txt", "one")
		for _, mode := range []string{"a", "+", "wa"} {
			h, err := p.Open("files/append.txt", core.Options{Mode: mode})
			if !wantNoErr(t, "Open(files/append.txt, "+mode+")", err) {
				return
			}
			if err := h.Write("," + mode); err != nil {
				t.Errorf("Write(): got error %v", err)
			}
			if err := h.Close(); err != nil {
				t.Errorf("Close(): got error %v", err)
			}
		}
		want := "one,a,+,wa"
		if got := readFile(t, p, "files/append.txt"); got != want {
			t.Errorf("Read(files/append.txt): got %q, want %q", got, want)
		}
	})

	run("AppendCreates", func(t *testing.T) {
		h, err := p.Open("files/touched.txt", core.Options{Mode: "a"})
		if !wantNoErr(t, "Open(files/touched.txt, a)", err) {
			return
		}
		if err := h.Close(); err != nil {
			t.Errorf("Close(): got error %v", err)
		}
		size, err := p.Size("files/touched.txt")
		if wantNoErr(t, "Size(files/touched.txt)", err) && size != 0 {
			t.Errorf("Size(files/touched.txt): got %d, want 0", size)
		}
	})

	run("ReadWriteKeepsContent", func(t *testing.T) {
		writeFile(t, p, "files/rw.txt", "abcdef")
		h, err := p.Open("files/rw.txt", core.Options{Mode: "rw"})
		if !wantNoErr(t, "Open(files/rw.txt, rw)", err) {
			return
		}
		if err := h.Write("XY"); err != nil {
			t.Errorf("Write(): got error %v", err)
		}
		got, err := h.Read()
		if wantNoErr(t, "Read()", err) && got != "XYcdef" {
			t.Errorf("Read(): got %q, want %q", got, "XYcdef")
		}
		if err := h.Close(); err != nil {
			t.Errorf("Close(): got error %v", err)
		}
		if got := readFile(t, p, "files/rw.txt"); got != "XYcdef" {
			t.Errorf("Read(files/rw.txt): got %q, want %q", got, "XYcdef")
		}
	})

	run("ModeIsCaseInsensitive", func(t *testing.T) {
		h, err := p.Open("files/upper.txt", core.Options{Mode: "W"})
		if !wantNoErr(t, "Open(files/upper.txt, W)", err) {
			return
		}
		_ = h.Write("upper")
		_ = h.Close()

		h, err = p.Open("files/upper.txt", core.Options{Mode: "R"})
		if !wantNoErr(t, "Open(files/upper.txt, R)", err) {
			return
		}
		defer func() { _ = h.Close() }()
		got, err := h.Read()
		if wantNoErr(t, "Read()", err) && got != "upper" {
			t.Errorf("Read(): got %q, want %q", got, "upper")
		}
	})

	run("InvalidMode", func(t *testing.T) {
		writeFile(t, p, "files/mode.txt", "x")
		for _, mode := range []string{"", "b", "x", "B"} {
			_, err := p.Open("files/mode.txt", core.Options{Mode: mode})
			wantErr(t, "Open(files/mode.txt, "+mode+")", err, core.ErrInvalidMode)
		}
	})

	run("InvalidCharset", func(t *testing.T) {
		_, err := p.Open("files/charset.txt", core.Options{Mode: "w", Charset: "no-such-charset"})
		wantErr(t, "Open(files/charset.txt)", err, core.ErrInvalidCharset)
		if p.Exists("files/charset.txt") {
			t.Error("Open with an invalid charset must not create the file")
		}
	})

	run("Charset", func(t *testing.T) {
		opts := core.Options{Mode: "w", Charset: "ISO-8859-1"}
		h, err := p.Open("files/latin1.txt", opts)
		if !wantNoErr(t, "Open(files/latin1.txt)", err) {
			return
		}
		_ = h.Write("café")
		_ = h.Close()

		size, err := p.Size("files/latin1.txt")
		if wantNoErr(t, "Size(files/latin1.txt)", err) && size != 4 {
			t.Errorf("Size(files/latin1.txt): got %d, want 4", size)
		}

		h, err = p.Open("files/latin1.txt", core.Options{Mode: "r", Charset: "iso-8859-1"})
		if !wantNoErr(t, "Open(files/latin1.txt)", err) {
			return
		}
		defer func() { _ = h.Close() }()
		got, err := h.Read()
		if wantNoErr(t, "Read()", err) && got != "café" {
			t.Errorf("Read(): got %q, want %q", got, "café")
		}
	})

	run("Binary", func(t *testing.T) {
		raw := "\x00\x01\xfe\xff"
		h, err := p.Open("files/blob.bin", core.Options{Mode: "wb", Charset: "ISO-8859-1"})
		if !wantNoErr(t, "Open(files/blob.bin, wb)", err) {
			return
		}
		_ = h.Write(raw)
		_ = h.Close()

		h, err = p.Open("files/blob.bin", core.Options{Mode: "rb"})
		if !wantNoErr(t, "Open(files/blob.bin, rb)", err) {
			return
		}
		defer func() { _ = h.Close() }()
		got, err := h.Read()
		if wantNoErr(t, "Read()", err) && got != raw {
			t.Errorf("Read(): got %q, want %q", got, raw)
		}
	})

	run("OpenMissingForRead", func(t *testing.T) {
		_, err := p.Open("files/missing.txt", core.Options{Mode: "r"})
		wantErr(t, "Open(files/missing.txt, r)", err, fs.ErrNotExist)
	})

	run("OpenDirectory", func(t *testing.T) {
		mkdirAll(t, p, "files/subdir")
		writeFile(t, p, "files/subdir/inner.txt", "x")
		_, err := p.Open("files/subdir", core.Options{Mode: "r"})
		wantErr(t, "Open(files/subdir, r)", err, core.ErrIsDir)
	})

	run("CreateInMissingDir", func(t *testing.T) {
		h, err := p.Open("nodir/child.txt", core.Options{Mode: "w"})
		if config.ImplicitParentDirs {
			if wantNoErr(t, "Open(nodir/child.txt, w)", err) {
				_ = h.Close()
			}
			return
		}
		wantErr(t, "Open(nodir/child.txt, w)", err, fs.ErrNotExist)
	})

	run("Size", func(t *testing.T) {
		writeFile(t, p, "files/sized.txt", "12345")
		size, err := p.Size("files/sized.txt")
		if wantNoErr(t, "Size(files/sized.txt)", err) && size != 5 {
			t.Errorf("Size(files/sized.txt): got %d, want 5", size)
		}

		_, err = p.Size("files/nothing.txt")
		wantErr(t, "Size(files/nothing.txt)", err, fs.ErrNotExist)

		mkdirAll(t, p, "files/sizedir")
		writeFile(t, p, "files/sizedir/f.txt", "x")
		_, err = p.Size("files/sizedir")
		wantErr(t, "Size(files/sizedir)", err, core.ErrIsDir)
	})
}
