package storage

import (
	"context"
	"errors"
)

var (
	// ErrUploadTimeout means the upload hit its deadline; the caller may retry.
	ErrUploadTimeout = errors.New("photo upload timed out")
	// ErrUploadFailed is any other upload failure; retrying the same file is unlikely to help.
	ErrUploadFailed = errors.New("photo upload failed")
)

// BlobStore is the output port for storing check-in/out photos.
type BlobStore interface {
	// Upload stores the blob under key and returns its public URL.
	// Implementations fail with ErrUploadTimeout or ErrUploadFailed.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
