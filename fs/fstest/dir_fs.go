package fstest

import (
	"io/fs"
	"slices"
	"testing"

	"github.com/jmgilman/scriptfs/fs/core"
)

// TestDirFS tests Exists, List, MakeDirectory and MakeTree.
// Uses POSIXTestConfig() by default.
func TestDirFS(t *testing.T, p core.Primitives) {
	TestDirFSWithConfig(t, p, POSIXTestConfig())
}

// TestDirFSWithConfig tests the directory helpers with behavior configuration.
func TestDirFSWithConfig(t *testing.T, p core.Primitives, config FSTestConfig) {
	run := func(name string, fn func(t *testing.T)) {
		subtest(t, config, "DirFS", name, fn)
	}

	run("MakeDirectory", func(t *testing.T) {
		if !wantNoErr(t, "MakeDirectory(dirs)", p.MakeDirectory("dirs")) {
			return
		}
		if !p.Exists("dirs") {
			t.Error("Exists(dirs): got false after MakeDirectory")
		}
		wantErr(t, "MakeDirectory(dirs) again", p.MakeDirectory("dirs"), fs.ErrExist)
	})

	run("MakeDirectoryMissingParent", func(t *testing.T) {
		err := p.MakeDirectory("orphan/child")
		if config.ImplicitParentDirs {
			wantNoErr(t, "MakeDirectory(orphan/child)", err)
			return
		}
		wantErr(t, "MakeDirectory(orphan/child)", err, fs.ErrNotExist)
	})

	run("MakeTree", func(t *testing.T) {
		if !wantNoErr(t, "MakeTree(mk/a/b/c)", p.MakeTree("mk/a/b/c")) {
			return
		}
		for _, name := range []string{"mk", "mk/a", "mk/a/b", "mk/a/b/c"} {
			if !p.Exists(name) {
				t.Errorf("Exists(%s): got false after MakeTree", name)
			}
		}
		wantNoErr(t, "MakeTree(mk/a/b/c) again", p.MakeTree("mk/a/b/c"))
	})

	run("List", func(t *testing.T) {
		mkdirAll(t, p, "ls/sub")
		writeFile(t, p, "ls/sub/inner.txt", "x")
		writeFile(t, p, "ls/b.txt", "b")
		writeFile(t, p, "ls/a.txt", "a")

		names, err := p.List("ls")
		if !wantNoErr(t, "List(ls)", err) {
			return
		}
		want := []string{"a.txt", "b.txt", "sub"}
		if !slices.Equal(names, want) {
			t.Errorf("List(ls): got %q, want %q", names, want)
		}
	})

	run("ListEmpty", func(t *testing.T) {
		mkdirAll(t, p, "ls-empty")
		names, err := p.List("ls-empty")
		if wantNoErr(t, "List(ls-empty)", err) && len(names) != 0 {
			t.Errorf("List(ls-empty): got %q, want none", names)
		}
	})

	run("ListMissing", func(t *testing.T) {
		_, err := p.List("ls-missing")
		wantErr(t, "List(ls-missing)", err, fs.ErrNotExist)
	})

	run("ListFile", func(t *testing.T) {
		writeFile(t, p, "plain.txt", "x")
		_, err := p.List("plain.txt")
		wantErr(t, "List(plain.txt)", err, core.ErrNotDir)
	})

	run("Exists", func(t *testing.T) {
		writeFile(t, p, "exists.txt", "x")
		if !p.Exists("exists.txt") {
			t.Error("Exists(exists.txt): got false, want true")
		}
		if p.Exists("does-not-exist.txt") {
			t.Error("Exists(does-not-exist.txt): got true, want false")
		}
	})
}

// TestPathFS tests separator conversion.
func TestPathFS(t *testing.T, p core.Primitives) {
	TestPathFSWithConfig(t, p, POSIXTestConfig())
}

// TestPathFSWithConfig tests separator conversion with behavior configuration.
func TestPathFSWithConfig(t *testing.T, p core.Primitives, config FSTestConfig) {
	subtest(t, config, "PathFS", "ForwardSlashesUnchanged", func(t *testing.T) {
		for _, name := range []string{"a/b/c", "/abs/path", "", "trailing/"} {
			if got := p.FromNativeSeparators(name); got != name {
				t.Errorf("FromNativeSeparators(%q): got %q, want unchanged", name, got)
			}
		}
	})
}
