// Package minio provides a MinIO/S3-compatible implementation of the
// core.Primitives contract.
package minio

import (
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

// minPartSize is the smallest part size S3 accepts for multipart uploads.
const minPartSize = 5 * 1024 * 1024

// Config holds MinIO filesystem configuration.
type Config struct {
	// Endpoint is the MinIO server URL (e.g., "localhost:9000")
	Endpoint string

	// Bucket is the S3 bucket name
	Bucket string

	// AccessKey is the access key ID for authentication
	AccessKey string

	// SecretKey is the secret access key for authentication
	SecretKey string

	// UseSSL enables HTTPS connections
	UseSSL bool

	// Prefix is an optional prefix for all object keys (for namespacing)
	Prefix string

	// Client is an optional pre-configured MinIO client
	// If provided, Endpoint/AccessKey/SecretKey are ignored
	Client *minio.Client

	// MultipartThreshold is the part size used when uploading handle content
	// Default: 5MB, which is also the minimum
	MultipartThreshold int64

	// MaxCopyConcurrency limits concurrent object copies during CopyTree
	// Default: 10
	MaxCopyConcurrency int

	// OperationTimeout bounds every primitive call. Zero means no timeout.
	OperationTimeout time.Duration
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + Bucket + AccessKey + SecretKey) must be provided.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if c.MultipartThreshold != 0 && c.MultipartThreshold < minPartSize {
		return fmt.Errorf("multipart threshold must be at least %d bytes", minPartSize)
	}
	if c.MaxCopyConcurrency < 0 {
		return fmt.Errorf("max copy concurrency must not be negative")
	}
	if c.OperationTimeout < 0 {
		return fmt.Errorf("operation timeout must not be negative")
	}

	// If Client is provided, we're done (connection fields are ignored)
	if c.Client != nil {
		return nil
	}

	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return fmt.Errorf("access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is required when client is not provided")
	}

	return nil
}
