package fstest

import (
	"io/fs"
	"testing"

	"github.com/jmgilman/scriptfs/fs/core"
)

// TestTreeFS tests Copy, CopyTree and the three removal primitives.
// Uses POSIXTestConfig() by default.
func TestTreeFS(t *testing.T, p core.Primitives) {
	TestTreeFSWithConfig(t, p, POSIXTestConfig())
}

// TestTreeFSWithConfig tests copy and removal with behavior configuration.
func TestTreeFSWithConfig(t *testing.T, p core.Primitives, config FSTestConfig) {
	mkdirAll(t, p, "tree")

	run := func(name string, fn func(t *testing.T)) {
		subtest(t, config, "TreeFS", name, fn)
	}

	run("Copy", func(t *testing.T) {
		writeFile(t, p, "tree/src.txt", "copy me")
		if !wantNoErr(t, "Copy(tree/src.txt, tree/dst.txt)", p.Copy("tree/src.txt", "tree/dst.txt")) {
			return
		}
		if got := readFile(t, p, "tree/dst.txt"); got != "copy me" {
			t.Errorf("Read(tree/dst.txt): got %q, want %q", got, "copy me")
		}
		if !p.Exists("tree/src.txt") {
			t.Error("Copy removed the source")
		}
	})

	run("CopyOntoExisting", func(t *testing.T) {
		writeFile(t, p, "tree/a.txt", "a")
		writeFile(t, p, "tree/b.txt", "b")
		wantErr(t, "Copy(tree/a.txt, tree/b.txt)", p.Copy("tree/a.txt", "tree/b.txt"), fs.ErrExist)
		if got := readFile(t, p, "tree/b.txt"); got != "b" {
			t.Errorf("Copy overwrote the destination: got %q", got)
		}
	})

	run("CopyMissing", func(t *testing.T) {
		wantErr(t, "Copy(tree/none.txt)", p.Copy("tree/none.txt", "tree/other.txt"), fs.ErrNotExist)
	})

	run("CopyDirectory", func(t *testing.T) {
		mkdirAll(t, p, "tree/adir")
		writeFile(t, p, "tree/adir/f.txt", "x")
		wantErr(t, "Copy(tree/adir)", p.Copy("tree/adir", "tree/bdir"), core.ErrIsDir)
	})

	run("CopyTree", func(t *testing.T) {
		mkdirAll(t, p, "tree/ct/src/nested/deep")
		writeFile(t, p, "tree/ct/src/top.txt", "top")
		writeFile(t, p, "tree/ct/src/nested/mid.txt", "mid")
		writeFile(t, p, "tree/ct/src/nested/deep/low.txt", "low")

		if !wantNoErr(t, "CopyTree(tree/ct/src, tree/ct/dst)", p.CopyTree("tree/ct/src", "tree/ct/dst")) {
			return
		}
		for name, want := range map[string]string{
			"tree/ct/dst/top.txt":             "top",
			"tree/ct/dst/nested/mid.txt":      "mid",
			"tree/ct/dst/nested/deep/low.txt": "low",
		} {
			if got := readFile(t, p, name); got != want {
				t.Errorf("Read(%s): got %q, want %q", name, got, want)
			}
		}
		if !p.Exists("tree/ct/src/nested/deep/low.txt") {
			t.Error("CopyTree removed the source")
		}
	})

	run("CopyTreeMissing", func(t *testing.T) {
		wantErr(t, "CopyTree(tree/nothing)", p.CopyTree("tree/nothing", "tree/else"), fs.ErrNotExist)
	})

	run("CopyTreeOfFile", func(t *testing.T) {
		writeFile(t, p, "tree/single.txt", "x")
		wantErr(t, "CopyTree(tree/single.txt)", p.CopyTree("tree/single.txt", "tree/single"), core.ErrNotDir)
	})

	run("Remove", func(t *testing.T) {
		writeFile(t, p, "tree/gone.txt", "x")
		if !wantNoErr(t, "Remove(tree/gone.txt)", p.Remove("tree/gone.txt")) {
			return
		}
		if p.Exists("tree/gone.txt") {
			t.Error("Remove(tree/gone.txt): file still exists")
		}
		wantErr(t, "Remove(tree/gone.txt) again", p.Remove("tree/gone.txt"), fs.ErrNotExist)
	})

	run("RemoveDirectoryWithRemove", func(t *testing.T) {
		mkdirAll(t, p, "tree/keepdir")
		writeFile(t, p, "tree/keepdir/f.txt", "x")
		wantErr(t, "Remove(tree/keepdir)", p.Remove("tree/keepdir"), core.ErrIsDir)
	})

	run("RemoveDirectory", func(t *testing.T) {
		mkdirAll(t, p, "tree/empty")
		if !wantNoErr(t, "RemoveDirectory(tree/empty)", p.RemoveDirectory("tree/empty")) {
			return
		}
		if p.Exists("tree/empty") {
			t.Error("RemoveDirectory(tree/empty): directory still exists")
		}
		wantErr(t, "RemoveDirectory(tree/empty) again", p.RemoveDirectory("tree/empty"), fs.ErrNotExist)
	})

	run("RemoveDirectoryNotEmpty", func(t *testing.T) {
		mkdirAll(t, p, "tree/full")
		writeFile(t, p, "tree/full/f.txt", "x")
		wantErr(t, "RemoveDirectory(tree/full)", p.RemoveDirectory("tree/full"), core.ErrNotEmpty)
		if !p.Exists("tree/full/f.txt") {
			t.Error("RemoveDirectory removed entries of a non-empty directory")
		}
	})

	run("RemoveTree", func(t *testing.T) {
		mkdirAll(t, p, "tree/rt/a/b")
		writeFile(t, p, "tree/rt/a/b/c.txt", "x")
		writeFile(t, p, "tree/rt/top.txt", "x")
		if !wantNoErr(t, "RemoveTree(tree/rt)", p.RemoveTree("tree/rt")) {
			return
		}
		for _, name := range []string{"tree/rt", "tree/rt/a", "tree/rt/a/b/c.txt", "tree/rt/top.txt"} {
			if p.Exists(name) {
				t.Errorf("RemoveTree(tree/rt): %s still exists", name)
			}
		}
	})

	run("RemoveTreeMissing", func(t *testing.T) {
		wantErr(t, "RemoveTree(tree/never)", p.RemoveTree("tree/never"), fs.ErrNotExist)
	})
}
