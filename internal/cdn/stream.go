package cdn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

var ErrMissingCredentials = errors.New("video CDN credentials are not configured")

// ProviderError carries a status code and a message that is safe to relay to
// the client (status phrasing only, never the raw provider response body).
type ProviderError struct {
	StatusCode int
	Op         string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("video CDN %s failed, status %d", e.Op, e.StatusCode)
}

// UploadTarget is the library/video coordinate the byte-transfer step needs.
type UploadTarget struct {
	LibraryID string `json:"libraryId"`
	RemoteID  string `json:"remoteId"`
	UploadURL string `json:"uploadUrl"`
}

// StreamClient talks to the video CDN's stream API: create an empty video
// record, transfer bytes into it, delete it. The AccessKey header is a
// server-held credential and must never reach the browser.
type StreamClient struct {
	apiHost   string
	libraryID string
	apiKey    string
	http      *http.Client
}

// NewStreamClient creates a stream API client. httpClient may be nil, in
// which case http.DefaultClient is used (tests inject their own).
func NewStreamClient(apiHost, libraryID, apiKey string, httpClient *http.Client) *StreamClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &StreamClient{
		apiHost:   apiHost,
		libraryID: libraryID,
		apiKey:    apiKey,
		http:      httpClient,
	}
}

func (c *StreamClient) videoURL(remoteID string) string {
	u := fmt.Sprintf("%s/library/%s/videos", c.apiHost, c.libraryID)
	if remoteID != "" {
		u += "/" + remoteID
	}
	return u
}

// CreateVideo registers an empty video at the CDN and returns the coordinate
// the upload step needs. The returned RemoteID is the only handle to the
// remote asset from here on.
func (c *StreamClient) CreateVideo(ctx context.Context, title string) (UploadTarget, error) {
	if c.apiKey == "" || c.libraryID == "" {
		return UploadTarget{}, ErrMissingCredentials
	}
	if title == "" {
		return UploadTarget{}, errors.New("title is required")
	}

	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return UploadTarget{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.videoURL(""), bytes.NewReader(body))
	if err != nil {
		return UploadTarget{}, err
	}
	req.Header.Set("AccessKey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return UploadTarget{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("ERROR: CDN create video failed: status %d", resp.StatusCode)
		return UploadTarget{}, &ProviderError{StatusCode: resp.StatusCode, Op: "create"}
	}

	var created struct {
		GUID string `json:"guid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return UploadTarget{}, fmt.Errorf("decoding CDN create response: %w", err)
	}
	if created.GUID == "" {
		return UploadTarget{}, errors.New("CDN create response missing video guid")
	}

	return UploadTarget{
		LibraryID: c.libraryID,
		RemoteID:  created.GUID,
		UploadURL: c.videoURL(created.GUID),
	}, nil
}

// UploadVideo transfers raw bytes into a previously created remote video via
// an authenticated PUT. Re-uploading the same remoteID overwrites at the CDN,
// so the call is idempotent from the caller's point of view.
func (c *StreamClient) UploadVideo(ctx context.Context, remoteID string, r io.Reader) error {
	if c.apiKey == "" || c.libraryID == "" {
		return ErrMissingCredentials
	}
	if remoteID == "" {
		return errors.New("remote video id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.videoURL(remoteID), r)
	if err != nil {
		return err
	}
	req.Header.Set("AccessKey", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("ERROR: CDN upload failed for video %s: status %d", remoteID, resp.StatusCode)
		return &ProviderError{StatusCode: resp.StatusCode, Op: "upload"}
	}
	return nil
}

// DeleteVideo removes the remote asset. Callers delete remote before local so
// a failure here leaves the local row behind as the handle for a retry.
func (c *StreamClient) DeleteVideo(ctx context.Context, remoteID string) error {
	if c.apiKey == "" || c.libraryID == "" {
		return ErrMissingCredentials
	}
	if remoteID == "" {
		return errors.New("remote video id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.videoURL(remoteID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("AccessKey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("ERROR: CDN delete failed for video %s: status %d", remoteID, resp.StatusCode)
		return &ProviderError{StatusCode: resp.StatusCode, Op: "delete"}
	}
	return nil
}
