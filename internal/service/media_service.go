package service

import (
	"context"
	"errors"
	"io"
	"log"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"coursehub/admin-api/internal/storage"
)

var (
	ErrMediaFileRequired = errors.New("file name is required")
	ErrMediaUploadFailed = errors.New("media upload failed")
)

// unsafeFileChars matches everything we do not allow in an object key.
var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// MediaService manages the public image library: plain objects in a public
// bucket, no signing. Filenames are sanitized and timestamp-prefixed so two
// uploads of "logo.png" never collide.
type MediaService interface {
	List(ctx context.Context) ([]storage.MediaObject, error)
	Upload(ctx context.Context, fileName, contentType string, r io.Reader, size int64) (*storage.MediaObject, error)
	Delete(ctx context.Context, fileName string) error
}

type mediaService struct {
	store storage.MediaStorage
}

// NewMediaService creates a new instance of mediaService.
func NewMediaService(store storage.MediaStorage) MediaService {
	return &mediaService{store: store}
}

// SanitizeFileName strips any path components and replaces characters that
// are unsafe in object keys or URLs. An empty or fully-stripped name falls
// back to a generated one.
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFileChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = uuid.NewString()
	}
	return name
}

func (s *mediaService) List(ctx context.Context) ([]storage.MediaObject, error) {
	return s.store.List(ctx)
}

func (s *mediaService) Upload(ctx context.Context, fileName, contentType string, r io.Reader, size int64) (*storage.MediaObject, error) {
	objectKey := time.Now().UTC().Format("20060102150405") + "-" + SanitizeFileName(fileName)

	url, err := s.store.Put(ctx, objectKey, contentType, r, size)
	if err != nil {
		log.Printf("ERROR: media upload of '%s' failed: %v", objectKey, err)
		return nil, ErrMediaUploadFailed
	}

	return &storage.MediaObject{
		FileName:     objectKey,
		URL:          url,
		Size:         size,
		LastModified: time.Now().UTC(),
	}, nil
}

func (s *mediaService) Delete(ctx context.Context, fileName string) error {
	if fileName == "" {
		return ErrMediaFileRequired
	}
	// Re-sanitize rather than trusting the client: a crafted name must not
	// reach the bucket as a path traversal.
	return s.store.Delete(ctx, SanitizeFileName(fileName))
}
