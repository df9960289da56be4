package fstest

import (
	"errors"
	"testing"

	"github.com/jmgilman/scriptfs/fs/core"
)

// writeFile creates or truncates name with content through the provider.
func writeFile(t *testing.T, p core.Primitives, name, content string) {
	t.Helper()
	h, err := p.Open(name, core.Options{Mode: "w"})
	if err != nil {
		t.Fatalf("Open(%q, w): setup failed: %v", name, err)
	}
	if err := h.Write(content); err != nil {
		t.Fatalf("Write(%q): setup failed: %v", name, err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close(%q): setup failed: %v", name, err)
	}
}

// readFile returns the content of name read through the provider.
func readFile(t *testing.T, p core.Primitives, name string) string {
	t.Helper()
	h, err := p.Open(name, core.Options{Mode: "r"})
	if err != nil {
		t.Fatalf("Open(%q, r): got error %v, want nil", name, err)
	}
	defer func() {
		if err := h.Close(); err != nil {
			t.Errorf("Close(%q): got error %v", name, err)
		}
	}()
	content, err := h.Read()
	if err != nil {
		t.Fatalf("Read(%q): got error %v, want nil", name, err)
	}
	return content
}

// mkdirAll creates name and its parents, failing the test on error.
func mkdirAll(t *testing.T, p core.Primitives, name string) {
	t.Helper()
	if err := p.MakeTree(name); err != nil {
		t.Fatalf("MakeTree(%q): setup failed: %v", name, err)
	}
}

// wantErr reports a test error unless err matches target.
func wantErr(t *testing.T, call string, err, target error) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: got nil error, want %v", call, target)
		return
	}
	if !errors.Is(err, target) {
		t.Errorf("%s: got error %v, want %v", call, err, target)
	}
}

// wantNoErr reports a test error if err is non-nil.
func wantNoErr(t *testing.T, call string, err error) bool {
	t.Helper()
	if err != nil {
		t.Errorf("%s: got error %v, want nil", call, err)
		return false
	}
	return true
}
