package cdn

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVideo(t *testing.T) {
	var gotPath, gotKey, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("AccessKey")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"guid":"abc123"}`))
	}))
	defer srv.Close()

	client := NewStreamClient(srv.URL, "lib1", "api-key", srv.Client())
	target, err := client.CreateVideo(context.Background(), "Intro")
	require.NoError(t, err)

	assert.Equal(t, "/library/lib1/videos", gotPath)
	assert.Equal(t, "api-key", gotKey)
	assert.JSONEq(t, `{"title":"Intro"}`, gotBody)
	assert.Equal(t, "abc123", target.RemoteID)
	assert.Equal(t, "lib1", target.LibraryID)
	assert.Contains(t, target.UploadURL, "/library/lib1/videos/abc123")
}

func TestCreateVideo_MissingCredentials(t *testing.T) {
	client := NewStreamClient("https://example.invalid", "lib1", "", nil)
	_, err := client.CreateVideo(context.Background(), "Intro")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestCreateVideo_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad title", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewStreamClient(srv.URL, "lib1", "api-key", srv.Client())
	_, err := client.CreateVideo(context.Background(), "Intro")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusBadRequest, provErr.StatusCode)
	// The relayed message carries the status only, never the provider body.
	assert.NotContains(t, provErr.Error(), "bad title")
}

func TestUploadVideo(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewStreamClient(srv.URL, "lib1", "api-key", srv.Client())
	err := client.UploadVideo(context.Background(), "abc123", strings.NewReader("video-bytes"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/library/lib1/videos/abc123", gotPath)
	assert.Equal(t, "video-bytes", gotBody)
}

func TestUploadVideo_ProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	client := NewStreamClient(srv.URL, "lib1", "api-key", srv.Client())
	err := client.UploadVideo(context.Background(), "abc123", strings.NewReader("x"))

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, provErr.StatusCode)
}

func TestUploadVideo_RequiresRemoteID(t *testing.T) {
	client := NewStreamClient("https://example.invalid", "lib1", "api-key", nil)
	err := client.UploadVideo(context.Background(), "", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestDeleteVideo(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewStreamClient(srv.URL, "lib1", "api-key", srv.Client())
	require.NoError(t, client.DeleteVideo(context.Background(), "abc123"))

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/library/lib1/videos/abc123", gotPath)
}
