package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// local runs a command against the local backend rooted at root.
func local(t *testing.T, root string, args ...string) result {
	t.Helper()
	return execute(t, "", append([]string{"--root", root}, args...)...)
}

func TestCommands_FileLifecycle(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, local(t, root, "write", "notes.txt", "hello").err)
	require.NoError(t, local(t, root, "write", "--append", "notes.txt", " world").err)

	res := local(t, root, "read", "notes.txt")
	require.NoError(t, res.err)
	assert.Equal(t, "hello world", res.stdout)

	res = local(t, root, "size", "notes.txt")
	require.NoError(t, res.err)
	assert.Equal(t, "11\n", res.stdout)

	require.NoError(t, local(t, root, "copy", "notes.txt", "copy.txt").err)
	require.NoError(t, local(t, root, "move", "copy.txt", "moved.txt").err)
	assert.NoFileExists(t, filepath.Join(root, "copy.txt"))
	assert.FileExists(t, filepath.Join(root, "moved.txt"))

	require.NoError(t, local(t, root, "rm", "notes.txt", "moved.txt").err)
	res = local(t, root, "exists", "notes.txt")
	require.NoError(t, res.err)
	assert.Equal(t, "false\n", res.stdout)
}

func TestCommands_WriteFromStdin(t *testing.T) {
	root := t.TempDir()

	res := execute(t, "piped\ncontent", "--root", root, "write", "stdin.txt")
	require.NoError(t, res.err)

	data, err := os.ReadFile(filepath.Join(root, "stdin.txt"))
	require.NoError(t, err)
	assert.Equal(t, "piped\ncontent", string(data))
}

func TestCommands_Charset(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, local(t, root, "write", "--charset", "ISO-8859-1", "latin.txt", "café").err)

	data, err := os.ReadFile(filepath.Join(root, "latin.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9"), data)

	res := local(t, root, "read", "--charset", "ISO-8859-1", "latin.txt")
	require.NoError(t, res.err)
	assert.Equal(t, "café", res.stdout)
}

func TestCommands_SizeHuman(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.bin"), make([]byte, 2048), 0o644))

	res := local(t, root, "size", "--human", "big.bin")
	require.NoError(t, res.err)
	assert.Equal(t, "2.0 KiB\n", res.stdout)
}

func TestCommands_Directories(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, local(t, root, "mkdir", "-p", "src/a/b").err)
	require.NoError(t, local(t, root, "mkdir", "src/empty").err)
	require.NoError(t, local(t, root, "touch", "src/a/one.txt", "src/a/b/two.txt").err)

	res := local(t, root, "ls", "src")
	require.NoError(t, res.err)
	assert.Equal(t, "a\nempty\n", res.stdout)

	require.NoError(t, local(t, root, "copy-tree", "src", "dst").err)
	assert.FileExists(t, filepath.Join(root, "dst", "a", "b", "two.txt"))

	require.NoError(t, local(t, root, "rmdir", "dst/empty").err)
	require.NoError(t, local(t, root, "rm-tree", "src").err)
	assert.NoDirExists(t, filepath.Join(root, "src"))

	res = local(t, root, "rmdir", "dst")
	require.Error(t, res.err)
	assert.Equal(t, "CONFLICT", errorCode(res.err))
}

func TestCommands_JoinSplit(t *testing.T) {
	res := execute(t, "", "--backend", "memory", "join", "a", "", "b")
	require.NoError(t, res.err)
	assert.Equal(t, "a/b\n", res.stdout)

	res = execute(t, "", "--backend", "memory", "split", "a//b/c/")
	require.NoError(t, res.err)
	assert.Equal(t, "a\nb\nc\n", res.stdout)
}

func TestCommands_Errors(t *testing.T) {
	root := t.TempDir()

	res := local(t, root, "size", "missing.txt")
	require.Error(t, res.err)
	assert.Equal(t, "NOT_FOUND", errorCode(res.err))

	var buf bytes.Buffer
	printError(&buf, res.err)
	assert.Contains(t, buf.String(), "error [NOT_FOUND]: ")
	assert.Contains(t, buf.String(), "unable to read file 'missing.txt' size")

	res = execute(t, "", "--backend", "ftp", "exists", "x")
	assert.ErrorContains(t, res.err, "unknown backend")
	assert.Empty(t, errorCode(res.err))
}

func TestCommands_ConfigPrecedence(t *testing.T) {
	fromFile, fromEnvFile, fromEnv, fromFlag := t.TempDir(), t.TempDir(), t.TempDir(), t.TempDir()
	config := writeTemp(t, "scriptfs.toml", "root = '"+fromFile+"'\n")
	envFile := writeTemp(t, ".env", "SCRIPTFS_ROOT="+fromEnvFile+"\n")

	require.NoError(t, execute(t, "", "--config", config, "touch", "a").err)
	assert.FileExists(t, filepath.Join(fromFile, "a"))

	require.NoError(t, execute(t, "", "--config", config, "--env-file", envFile, "touch", "b").err)
	assert.FileExists(t, filepath.Join(fromEnvFile, "b"))

	t.Setenv("SCRIPTFS_ROOT", fromEnv)
	require.NoError(t, execute(t, "", "--config", config, "--env-file", envFile, "touch", "c").err)
	assert.FileExists(t, filepath.Join(fromEnv, "c"))

	require.NoError(t, execute(t, "", "--config", config, "--root", fromFlag, "touch", "d").err)
	assert.FileExists(t, filepath.Join(fromFlag, "d"))
}

func TestCommands_VerboseLogging(t *testing.T) {
	res := execute(t, "", "--backend", "memory", "--verbose", "touch", "x")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "configured")
	assert.Contains(t, res.stderr, "open")
}
