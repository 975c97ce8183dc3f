package storage

import (
	"context"
	"io"
	"time"
)

// MediaObject describes one file in the public media library.
type MediaObject struct {
	FileName     string    `json:"fileName"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// MediaStorage defines the interface for the public image library: an
// S3-compatible bucket served directly by the CDN, unsigned. Distinct from
// the signed video flow.
type MediaStorage interface {
	// Put uploads an object under the given key and returns its public URL.
	Put(ctx context.Context, objectKey string, contentType string, body io.Reader, size int64) (string, error)

	// List returns every object in the library with its public URL.
	List(ctx context.Context) ([]MediaObject, error)

	// Delete removes an object from the library.
	Delete(ctx context.Context, objectKey string) error

	// PublicURL returns the unsigned delivery URL for an object key.
	PublicURL(objectKey string) string
}
