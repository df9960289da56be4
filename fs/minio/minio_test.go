package minio

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/jmgilman/scriptfs/fs/core"
	"github.com/jmgilman/scriptfs/fs/minio/internal/errs"
	"github.com/jmgilman/scriptfs/fs/minio/internal/pathutil"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigValidation tests Config.validate() with various scenarios.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config with credentials",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
		},
		{
			name: "client provided ignores missing credentials",
			config: Config{
				Client: &minio.Client{},
				Bucket: "test-bucket",
			},
		},
		{
			name: "missing bucket",
			config: Config{
				Endpoint:  "localhost:9000",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "bucket is required",
		},
		{
			name: "missing endpoint without client",
			config: Config{
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "endpoint is required when client is not provided",
		},
		{
			name: "missing access key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "access key is required when client is not provided",
		},
		{
			name: "missing secret key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "secret key is required when client is not provided",
		},
		{
			name: "multipart threshold below the S3 minimum",
			config: Config{
				Client:             &minio.Client{},
				Bucket:             "test-bucket",
				MultipartThreshold: 1024,
			},
			wantErr: true,
			errMsg:  "multipart threshold must be at least",
		},
		{
			name: "negative copy concurrency",
			config: Config{
				Client:             &minio.Client{},
				Bucket:             "test-bucket",
				MaxCopyConcurrency: -1,
			},
			wantErr: true,
			errMsg:  "max copy concurrency must not be negative",
		},
		{
			name: "negative timeout",
			config: Config{
				Client:           &minio.Client{},
				Bucket:           "test-bucket",
				OperationTimeout: -time.Second,
			},
			wantErr: true,
			errMsg:  "operation timeout must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestNewMinIO tests the NewMinIO constructor.
func TestNewMinIO(t *testing.T) {
	t.Run("invalid config returns error", func(t *testing.T) {
		fs, err := NewMinIO(Config{Endpoint: "localhost:9000"})
		require.Error(t, err)
		assert.Nil(t, fs)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("defaults", func(t *testing.T) {
		fs, err := NewMinIO(Config{
			Client: &minio.Client{},
			Bucket: "test-bucket",
			Prefix: "/data/scripts/",
		})
		require.NoError(t, err)
		assert.Equal(t, "test-bucket", fs.bucket)
		assert.Equal(t, "data/scripts", fs.prefix)
		assert.Equal(t, int64(minPartSize), fs.multipartThreshold)
		assert.Equal(t, 10, fs.copyConcurrency)
		assert.Equal(t, core.FSTypeRemote, fs.Type())
	})

	t.Run("creates client from credentials", func(t *testing.T) {
		fs, err := NewMinIO(Config{
			Endpoint:           "localhost:9000",
			Bucket:             "test-bucket",
			AccessKey:          "minioadmin",
			SecretKey:          "minioadmin",
			MaxCopyConcurrency: 3,
		})
		require.NoError(t, err)
		assert.NotNil(t, fs.client)
		assert.Equal(t, 3, fs.copyConcurrency)
	})
}

// TestJoinPath tests key construction with and without a prefix.
func TestJoinPath(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{"", "file.txt", "file.txt"},
		{"", "/a/b/", "a/b"},
		{"", ".", ""},
		{"", "", ""},
		{"", "a\\b", "a/b"},
		{"", "a/../../b", "b"},
		{"base", "file.txt", "base/file.txt"},
		{"base", "/", "base"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pathutil.JoinPath(tt.prefix, tt.name))
		})
	}
}

// TestNormalizePrefix tests bucket prefix normalization.
func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "", pathutil.NormalizePrefix(""))
	assert.Equal(t, "", pathutil.NormalizePrefix("."))
	assert.Equal(t, "", pathutil.NormalizePrefix("/"))
	assert.Equal(t, "a/b", pathutil.NormalizePrefix("\\a\\b\\"))
}

// TestDirPrefix tests listing prefixes.
func TestDirPrefix(t *testing.T) {
	assert.Equal(t, "", pathutil.DirPrefix(""))
	assert.Equal(t, "a/b/", pathutil.DirPrefix("a/b"))
}

// TestIsWithin tests subtree detection used to reject recursive copies.
func TestIsWithin(t *testing.T) {
	assert.True(t, pathutil.IsWithin("a/b", "a"))
	assert.True(t, pathutil.IsWithin("a", ""))
	assert.False(t, pathutil.IsWithin("", ""))
	assert.False(t, pathutil.IsWithin("a", "a"))
	assert.False(t, pathutil.IsWithin("ab", "a"))
}

// TestTranslateError tests MinIO error code translation.
func TestTranslateError(t *testing.T) {
	assert.NoError(t, errs.Translate(nil))

	tests := []struct {
		code string
		want error
	}{
		{"NoSuchKey", fs.ErrNotExist},
		{"NoSuchBucket", fs.ErrNotExist},
		{"AccessDenied", fs.ErrPermission},
		{"XMinioInvalidObjectName", fs.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := errs.Translate(minio.ErrorResponse{Code: tt.code})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.Translate(cause)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "minio:")
	})
}

// TestPathError tests fs.PathError construction.
func TestPathError(t *testing.T) {
	assert.NoError(t, errs.PathError("open", "a.txt", nil))

	err := errs.PathError("open", "a.txt", fs.ErrNotExist)
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "open", pathErr.Op)
	assert.Equal(t, "a.txt", pathErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

// TestOpenValidatesBeforeNetwork verifies invalid modes and charsets fail
// without contacting the server.
func TestOpenValidatesBeforeNetwork(t *testing.T) {
	fs, err := NewMinIO(Config{Client: &minio.Client{}, Bucket: "test-bucket"})
	require.NoError(t, err)

	_, err = fs.Open("a.txt", core.Options{Mode: "b"})
	assert.ErrorIs(t, err, core.ErrInvalidMode)

	_, err = fs.Open("a.txt", core.Options{Mode: "w", Charset: "bogus"})
	assert.ErrorIs(t, err, core.ErrInvalidCharset)

	_, err = fs.Open("/", core.Options{Mode: "r"})
	assert.ErrorIs(t, err, core.ErrIsDir)
}

// TestFromNativeSeparators tests separator conversion.
func TestFromNativeSeparators(t *testing.T) {
	fs := &MinioFS{}
	assert.Equal(t, "a/b/c", fs.FromNativeSeparators("a\\b/c"))
	assert.Equal(t, "a/b", fs.FromNativeSeparators("a/b"))
}

// TestRemoveTreeRejectedBucket verifies RemoveTree returns instead of
// blocking when the server side removal gives up before listing ends.
func TestRemoveTreeRejectedBucket(t *testing.T) {
	fs, err := NewMinIO(Config{
		Endpoint:  "localhost:9000",
		Bucket:    "Not_A_Valid_Bucket",
		AccessKey: "access",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- fs.RemoveTree("/")
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("RemoveTree did not return")
	}
}
