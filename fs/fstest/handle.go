package fstest

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/scriptfs/fs/core"
)

// TestHandle tests the handle returned by Open: line I/O, partial reads,
// seeking and close semantics.
// Uses POSIXTestConfig() by default.
func TestHandle(t *testing.T, p core.Primitives) {
	TestHandleWithConfig(t, p, POSIXTestConfig())
}

// TestHandleWithConfig tests handle behavior with behavior configuration.
func TestHandleWithConfig(t *testing.T, p core.Primitives, config FSTestConfig) {
	mkdirAll(t, p, "handles")

	run := func(name string, fn func(t *testing.T)) {
		subtest(t, config, "Handle", name, fn)
	}

	run("Name", func(t *testing.T) {
		h, err := p.Open("handles/name.txt", core.Options{Mode: "w"})
		if !wantNoErr(t, "Open(handles/name.txt)", err) {
			return
		}
		defer func() { _ = h.Close() }()
		if h.Name() != "handles/name.txt" {
			t.Errorf("Name(): got %q, want %q", h.Name(), "handles/name.txt")
		}
	})

	run("Lines", func(t *testing.T) {
		h, err := p.Open("handles/lines.txt", core.Options{Mode: "w"})
		if !wantNoErr(t, "Open(handles/lines.txt, w)", err) {
			return
		}
		for _, line := range []string{"alpha", "beta", "gamma"} {
			if err := h.WriteLine(line); err != nil {
				t.Errorf("WriteLine(%q): got error %v", line, err)
			}
		}
		if err := h.Close(); err != nil {
			t.Fatalf("Close(): got error %v", err)
		}

		h, err = p.Open("handles/lines.txt", core.Options{Mode: "r"})
		if !wantNoErr(t, "Open(handles/lines.txt, r)", err) {
			return
		}
		defer func() { _ = h.Close() }()

		var got []string
		for !h.AtEnd() {
			line, err := h.ReadLine()
			if err != nil {
				t.Fatalf("ReadLine(): got error %v", err)
			}
			got = append(got, line)
		}
		if len(got) != 3 || got[0] != "alpha" || got[2] != "gamma" {
			t.Errorf("ReadLine(): got %q, want [alpha beta gamma]", got)
		}
		if _, err := h.ReadLine(); !errors.Is(err, io.EOF) {
			t.Errorf("ReadLine() at end: got %v, want io.EOF", err)
		}
	})

	run("ReadNAndSeek", func(t *testing.T) {
		writeFile(t, p, "handles/seek.txt", "0123456789")
		h, err := p.Open("handles/seek.txt", core.Options{Mode: "r"})
		if !wantNoErr(t, "Open(handles/seek.txt)", err) {
			return
		}
		defer func() { _ = h.Close() }()

		got, err := h.ReadN(3)
		if wantNoErr(t, "ReadN(3)", err) && got != "012" {
			t.Errorf("ReadN(3): got %q, want %q", got, "012")
		}
		if err := h.Seek(7); err != nil {
			t.Fatalf("Seek(7): got error %v", err)
		}
		got, err = h.ReadN(10)
		if wantNoErr(t, "ReadN(10)", err) && got != "789" {
			t.Errorf("ReadN(10): got %q, want %q", got, "789")
		}
		if !h.AtEnd() {
			t.Error("AtEnd(): got false after reading everything")
		}
	})

	run("WriteOnlyCannotRead", func(t *testing.T) {
		h, err := p.Open("handles/wo.txt", core.Options{Mode: "w"})
		if !wantNoErr(t, "Open(handles/wo.txt, w)", err) {
			return
		}
		defer func() { _ = h.Close() }()
		_, err = h.Read()
		wantErr(t, "Read() on write-only handle", err, fs.ErrInvalid)
	})

	run("ReadOnlyCannotWrite", func(t *testing.T) {
		writeFile(t, p, "handles/ro.txt", "x")
		h, err := p.Open("handles/ro.txt", core.Options{Mode: "r"})
		if !wantNoErr(t, "Open(handles/ro.txt, r)", err) {
			return
		}
		defer func() { _ = h.Close() }()
		wantErr(t, "Write() on read-only handle", h.Write("y"), fs.ErrInvalid)
	})

	run("FlushMakesContentVisible", func(t *testing.T) {
		h, err := p.Open("handles/flush.txt", core.Options{Mode: "w"})
		if !wantNoErr(t, "Open(handles/flush.txt, w)", err) {
			return
		}
		defer func() { _ = h.Close() }()
		_ = h.Write("flushed")
		if err := h.Flush(); err != nil {
			t.Fatalf("Flush(): got error %v", err)
		}
		if got := readFile(t, p, "handles/flush.txt"); got != "flushed" {
			t.Errorf("Read(handles/flush.txt): got %q, want %q", got, "flushed")
		}
	})

	run("CloseTwice", func(t *testing.T) {
		h, err := p.Open("handles/close.txt", core.Options{Mode: "w"})
		if !wantNoErr(t, "Open(handles/close.txt, w)", err) {
			return
		}
		if err := h.Close(); err != nil {
			t.Fatalf("Close(): got error %v", err)
		}
		wantErr(t, "second Close()", h.Close(), fs.ErrClosed)
	})
}
