package minio

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jmgilman/scriptfs/fs/core"
	"github.com/jmgilman/scriptfs/fs/fstest"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testBucket = "test-bucket"

// setupMinIOContainer starts a MinIO container and returns a client for it.
func setupMinIOContainer(t *testing.T) *minio.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	}

	minioC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start MinIO container")
	t.Cleanup(func() {
		_ = minioC.Terminate(ctx)
	})

	endpoint, err := minioC.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get container endpoint")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err, "failed to create MinIO client")

	err = client.MakeBucket(ctx, testBucket, minio.MakeBucketOptions{})
	require.NoError(t, err, "failed to create test bucket")

	return client
}

var prefixCounter atomic.Int64

// setupMinIOFS creates a MinioFS namespaced under a fresh prefix, so every
// instance starts empty.
func setupMinIOFS(t *testing.T, client *minio.Client, cfg Config) *MinioFS {
	t.Helper()

	cfg.Client = client
	cfg.Bucket = testBucket
	cfg.Prefix = fmt.Sprintf("fs-%d", prefixCounter.Add(1))

	fs, err := NewMinIO(cfg)
	require.NoError(t, err, "failed to create MinioFS")
	return fs
}

// TestMinioConformance runs fstest.TestSuite conformance tests with S3 configuration.
func TestMinioConformance(t *testing.T) {
	client := setupMinIOContainer(t)

	fstest.TestSuiteWithConfig(t, func() core.Primitives {
		return setupMinIOFS(t, client, Config{})
	}, fstest.S3TestConfig())
}

// TestCopyTreeParallel copies many objects with a small worker pool.
func TestCopyTreeParallel(t *testing.T) {
	client := setupMinIOContainer(t)
	fs := setupMinIOFS(t, client, Config{MaxCopyConcurrency: 3})

	const count = 40
	for i := 0; i < count; i++ {
		h, err := fs.Open(fmt.Sprintf("src/dir%d/file%d.txt", i%4, i), core.Options{Mode: "w"})
		require.NoError(t, err)
		require.NoError(t, h.Write(fmt.Sprintf("content %d", i)))
		require.NoError(t, h.Close())
	}

	require.NoError(t, fs.CopyTree("src", "dst"))

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("dst/dir%d/file%d.txt", i%4, i)
		h, err := fs.Open(name, core.Options{Mode: "r"})
		require.NoError(t, err, name)
		got, err := h.Read()
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("content %d", i), got)
		require.NoError(t, h.Close())
	}

	names, err := fs.List("dst")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir0", "dir1", "dir2", "dir3"}, names)

	// A second copy collides with the files written by the first.
	err = fs.CopyTree("src", "dst")
	assert.ErrorIs(t, err, core.ErrExist)
}

// TestRemoveTreeBatch removes a large tree through the batch API.
func TestRemoveTreeBatch(t *testing.T) {
	client := setupMinIOContainer(t)
	fs := setupMinIOFS(t, client, Config{})

	for i := 0; i < 25; i++ {
		h, err := fs.Open(fmt.Sprintf("tree/a/b/%d.txt", i), core.Options{Mode: "w"})
		require.NoError(t, err)
		require.NoError(t, h.Close())
	}
	require.NoError(t, fs.MakeTree("tree/empty"))

	require.NoError(t, fs.RemoveTree("tree"))
	assert.False(t, fs.Exists("tree"))
	assert.False(t, fs.Exists("tree/empty"))
	assert.ErrorIs(t, fs.RemoveTree("tree"), core.ErrNotExist)
}

// TestPrefixIsolation verifies two prefixes in one bucket do not see each other.
func TestPrefixIsolation(t *testing.T) {
	client := setupMinIOContainer(t)
	first := setupMinIOFS(t, client, Config{})
	second := setupMinIOFS(t, client, Config{})

	h, err := first.Open("only-here.txt", core.Options{Mode: "w"})
	require.NoError(t, err)
	require.NoError(t, h.Close())

	assert.True(t, first.Exists("only-here.txt"))
	assert.False(t, second.Exists("only-here.txt"))

	names, err := second.List("/")
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, first.RemoveTree("/"))
	assert.False(t, first.Exists("only-here.txt"))
}
