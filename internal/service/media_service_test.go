package service

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/admin-api/internal/storage"
)

type fakeMediaStorage struct {
	objects map[string][]byte

	putErr error

	deleted []string
}

func newFakeMediaStorage() *fakeMediaStorage {
	return &fakeMediaStorage{objects: make(map[string][]byte)}
}

func (f *fakeMediaStorage) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.objects[key] = data
	return f.PublicURL(key), nil
}

func (f *fakeMediaStorage) List(ctx context.Context) ([]storage.MediaObject, error) {
	var out []storage.MediaObject
	for key, data := range f.objects {
		out = append(out, storage.MediaObject{FileName: key, URL: f.PublicURL(key), Size: int64(len(data))})
	}
	return out, nil
}

func (f *fakeMediaStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeMediaStorage) PublicURL(key string) string {
	return "https://media.example.com/" + key
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "logo.png", "logo.png"},
		{"spaces collapse", "my hero image.png", "my-hero-image.png"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"windows path stripped", `C:\Users\admin\photo.jpg`, "photo.jpg"},
		{"unsafe runs collapse", "a!!b??c.png", "a-b-c.png"},
		{"leading dots trimmed", "..hidden", "hidden"},
		{"preserves case and underscore", "Hero_Banner-2.webp", "Hero_Banner-2.webp"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFileName(tc.in))
		})
	}
}

func TestSanitizeFileName_EmptyFallsBackToGenerated(t *testing.T) {
	out := SanitizeFileName("")
	assert.NotEmpty(t, out)
	// uuid fallback, still a safe key
	assert.NotContains(t, out, "/")

	assert.NotEmpty(t, SanitizeFileName("..."))
	assert.NotEmpty(t, SanitizeFileName("///"))
}

func TestMediaUpload_TimestampPrefixedKey(t *testing.T) {
	store := newFakeMediaStorage()
	svc := NewMediaService(store)

	obj, err := svc.Upload(context.Background(), "hero image.png", "image/png", strings.NewReader("img"), 3)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{14}-hero-image\.png$`), obj.FileName)
	assert.Equal(t, "https://media.example.com/"+obj.FileName, obj.URL)
	assert.Equal(t, int64(3), obj.Size)
	assert.Equal(t, []byte("img"), store.objects[obj.FileName])
}

func TestMediaUpload_StorageFailureIsOpaque(t *testing.T) {
	store := newFakeMediaStorage()
	store.putErr = errors.New("AccessDenied: bucket policy")
	svc := NewMediaService(store)

	obj, err := svc.Upload(context.Background(), "logo.png", "image/png", strings.NewReader("img"), 3)
	require.Error(t, err)
	assert.Nil(t, obj)
	// The storage error text stays server-side.
	assert.ErrorIs(t, err, ErrMediaUploadFailed)
	assert.NotContains(t, err.Error(), "AccessDenied")
}

func TestMediaDelete_SanitizesClientInput(t *testing.T) {
	store := newFakeMediaStorage()
	svc := NewMediaService(store)

	require.NoError(t, svc.Delete(context.Background(), "../secrets/config.yaml"))
	assert.Equal(t, []string{"config.yaml"}, store.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), ""), ErrMediaFileRequired)
}

func TestMediaList(t *testing.T) {
	store := newFakeMediaStorage()
	svc := NewMediaService(store)

	_, err := svc.Upload(context.Background(), "a.png", "image/png", strings.NewReader("a"), 1)
	require.NoError(t, err)

	files, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
