package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrFetch indicates the generated image bytes could not be downloaded
	// from the backend's locator.
	ErrFetch = errors.New("failed to fetch image")

	// ErrStorage wraps any object-store failure (upload, presign, delete, list).
	ErrStorage = errors.New("storage operation failed")
)

// ImageInfo represents metadata for a stored sticker object.
type ImageInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStorage captures the S3-compatible operations the command pipeline
// and the ops CLI need.
type ObjectStorage interface {
	// StoreImage downloads the image at sourceURL, uploads it under fileName
	// and returns a presigned retrieval URL.
	StoreImage(ctx context.Context, sourceURL, fileName string) (string, error)

	// ImageURL issues a fresh presigned GET URL for fileName. Every call
	// produces a new, independently expiring URL.
	ImageURL(ctx context.Context, fileName string) (string, error)

	// DeleteImage removes fileName from the bucket. Best effort, no retry.
	DeleteImage(ctx context.Context, fileName string) error

	// ListImages lists stored objects under the given prefix.
	ListImages(ctx context.Context, prefix string) ([]ImageInfo, error)
}
