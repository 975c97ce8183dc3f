package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"coursehub/admin-api/internal/cdn"
	"coursehub/admin-api/internal/domain"
	"coursehub/admin-api/internal/repository"
)

// --- Fakes ---

type fakeVideoRepo struct {
	videos map[primitive.ObjectID]*domain.VideoAsset

	createErr error
	deleteErr error

	createCalls int
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[primitive.ObjectID]*domain.VideoAsset)}
}

func (f *fakeVideoRepo) Create(ctx context.Context, video *domain.VideoAsset) (primitive.ObjectID, error) {
	f.createCalls++
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	id := primitive.NewObjectID()
	stored := *video
	stored.ID = id
	f.videos[id] = &stored
	return id, nil
}

func (f *fakeVideoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.VideoAsset, error) {
	video, ok := f.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *video
	return &copied, nil
}

func (f *fakeVideoRepo) GetByRemoteID(ctx context.Context, remoteID string) (*domain.VideoAsset, error) {
	for _, video := range f.videos {
		if video.RemoteID == remoteID {
			copied := *video
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeVideoRepo) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]domain.VideoAsset, error) {
	var out []domain.VideoAsset
	for _, video := range f.videos {
		if video.CourseID == courseID {
			out = append(out, *video)
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) Update(ctx context.Context, video *domain.VideoAsset) error {
	if _, ok := f.videos[video.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *video
	f.videos[video.ID] = &stored
	return nil
}

func (f *fakeVideoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.videos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.videos, id)
	return nil
}

type fakeCDN struct {
	createErr error
	uploadErr error
	deleteErr error

	createdTitles []string
	uploaded      map[string][]byte
	deleted       []string
}

func newFakeCDN() *fakeCDN {
	return &fakeCDN{uploaded: make(map[string][]byte)}
}

func (f *fakeCDN) CreateVideo(ctx context.Context, title string) (cdn.UploadTarget, error) {
	if f.createErr != nil {
		return cdn.UploadTarget{}, f.createErr
	}
	f.createdTitles = append(f.createdTitles, title)
	return cdn.UploadTarget{
		LibraryID: "lib-1",
		RemoteID:  "remote-guid-1",
		UploadURL: "https://video.bunnycdn.com/library/lib-1/videos/remote-guid-1",
	}, nil
}

func (f *fakeCDN) UploadVideo(ctx context.Context, remoteID string, r io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.uploaded[remoteID] = data
	return nil
}

func (f *fakeCDN) DeleteVideo(ctx context.Context, remoteID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, remoteID)
	return nil
}

func newTestVideoService(repo *fakeVideoRepo, client *fakeCDN) VideoService {
	signer := cdn.NewSigner("lib-1", "secret", "iframe.mediadelivery.net")
	return NewVideoService(repo, client, signer)
}

func testMeta() VideoMetadata {
	return VideoMetadata{
		Title:      "Intro lesson",
		CourseID:   primitive.NewObjectID(),
		OrderIndex: 1,
	}
}

// --- Tests ---

func TestIngest_HappyPath(t *testing.T) {
	repo := newFakeVideoRepo()
	client := newFakeCDN()
	svc := newTestVideoService(repo, client)

	video, err := svc.Ingest(context.Background(), testMeta(), strings.NewReader("bytes"))
	require.NoError(t, err)
	require.NotNil(t, video)

	assert.Equal(t, "remote-guid-1", video.RemoteID)
	assert.Equal(t, domain.RemoteReady, video.State)
	assert.False(t, video.ID.IsZero())
	assert.Equal(t, []string{"Intro lesson"}, client.createdTitles)
	assert.Equal(t, []byte("bytes"), client.uploaded["remote-guid-1"])
	assert.Equal(t, 1, repo.createCalls)
}

func TestIngest_CreateFailureNeverPersists(t *testing.T) {
	repo := newFakeVideoRepo()
	client := newFakeCDN()
	client.createErr = errors.New("provider is down")
	svc := newTestVideoService(repo, client)

	video, err := svc.Ingest(context.Background(), testMeta(), strings.NewReader("bytes"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteCreateFailed)
	assert.Nil(t, video)

	assert.Empty(t, client.uploaded)
	assert.Equal(t, 0, repo.createCalls)
}

func TestIngest_UploadFailureNeverPersists(t *testing.T) {
	repo := newFakeVideoRepo()
	client := newFakeCDN()
	client.uploadErr = errors.New("connection reset")
	svc := newTestVideoService(repo, client)

	video, err := svc.Ingest(context.Background(), testMeta(), strings.NewReader("bytes"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Nil(t, video)

	assert.Equal(t, 0, repo.createCalls)
}

func TestIngest_EmptyTitleRejectedBeforeAnyRemoteCall(t *testing.T) {
	repo := newFakeVideoRepo()
	client := newFakeCDN()
	svc := newTestVideoService(repo, client)

	meta := testMeta()
	meta.Title = ""
	_, err := svc.Ingest(context.Background(), meta, strings.NewReader("bytes"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVideoTitleRequired)
	assert.Empty(t, client.createdTitles)
}

func TestPersistVideoRecord_Validation(t *testing.T) {
	svc := newTestVideoService(newFakeVideoRepo(), newFakeCDN())
	ctx := context.Background()

	_, err := svc.PersistVideoRecord(ctx, VideoMetadata{Title: "t", CourseID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrRemoteIDRequired)

	_, err = svc.PersistVideoRecord(ctx, VideoMetadata{RemoteID: "r", CourseID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrVideoTitleRequired)

	_, err = svc.PersistVideoRecord(ctx, VideoMetadata{RemoteID: "r", Title: "t"})
	assert.Error(t, err)
}

func TestPersistVideoRecord_RepoFailureSurfaces(t *testing.T) {
	repo := newFakeVideoRepo()
	repo.createErr = errors.New("write concern error")
	svc := newTestVideoService(repo, newFakeCDN())

	meta := testMeta()
	meta.RemoteID = "remote-guid-1"
	video, err := svc.PersistVideoRecord(context.Background(), meta)
	require.Error(t, err)
	assert.Nil(t, video)
}

func TestDelete_RemoteBeforeLocal(t *testing.T) {
	repo := newFakeVideoRepo()
	client := newFakeCDN()
	svc := newTestVideoService(repo, client)

	video, err := svc.Ingest(context.Background(), testMeta(), bytes.NewReader([]byte("bytes")))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), video.ID))
	assert.Equal(t, []string{"remote-guid-1"}, client.deleted)
	_, err = repo.GetByID(context.Background(), video.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete_RemoteFailureKeepsLocalRow(t *testing.T) {
	repo := newFakeVideoRepo()
	client := newFakeCDN()
	svc := newTestVideoService(repo, client)

	video, err := svc.Ingest(context.Background(), testMeta(), strings.NewReader("bytes"))
	require.NoError(t, err)

	client.deleteErr = errors.New("provider is down")
	err = svc.Delete(context.Background(), video.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteDeleteFailed)

	// The row is the retry handle; it must survive.
	kept, err := repo.GetByID(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Equal(t, video.ID, kept.ID)
}

func TestDelete_LocalFailureAfterRemoteSuccessIsReported(t *testing.T) {
	repo := newFakeVideoRepo()
	client := newFakeCDN()
	svc := newTestVideoService(repo, client)

	video, err := svc.Ingest(context.Background(), testMeta(), strings.NewReader("bytes"))
	require.NoError(t, err)

	repo.deleteErr = errors.New("write concern error")
	err = svc.Delete(context.Background(), video.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRemoteDeleteFailed)
	assert.Equal(t, []string{"remote-guid-1"}, client.deleted)
}

func TestDelete_UnknownID(t *testing.T) {
	svc := newTestVideoService(newFakeVideoRepo(), newFakeCDN())

	err := svc.Delete(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestUpdateMetadata(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := newTestVideoService(repo, newFakeCDN())

	video, err := svc.Ingest(context.Background(), testMeta(), strings.NewReader("bytes"))
	require.NoError(t, err)

	chapterID := primitive.NewObjectID()
	updated, err := svc.UpdateMetadata(context.Background(), video.ID, "Renamed", &chapterID, 5, "https://cdn.example.com/thumb.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, &chapterID, updated.ChapterID)
	assert.Equal(t, 5, updated.OrderIndex)
	// The remote id never changes through metadata edits.
	assert.Equal(t, video.RemoteID, updated.RemoteID)

	_, err = svc.UpdateMetadata(context.Background(), primitive.NewObjectID(), "x", nil, 0, "")
	assert.ErrorIs(t, err, ErrVideoNotFound)

	_, err = svc.UpdateMetadata(context.Background(), video.ID, "", nil, 0, "")
	assert.ErrorIs(t, err, ErrVideoTitleRequired)
}

func TestPlaybackURLByID_RefusesNotReady(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := newTestVideoService(repo, newFakeCDN())

	video := &domain.VideoAsset{
		RemoteID: "remote-guid-1",
		Title:    "t",
		CourseID: primitive.NewObjectID(),
		State:    domain.RemoteUploading,
	}
	id, err := repo.Create(context.Background(), video)
	require.NoError(t, err)

	_, err = svc.PlaybackURLByID(context.Background(), id, time.Hour)
	assert.ErrorIs(t, err, ErrVideoNotReady)
}

func TestPlaybackURLByID_Ready(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := newTestVideoService(repo, newFakeCDN())

	video, err := svc.Ingest(context.Background(), testMeta(), strings.NewReader("bytes"))
	require.NoError(t, err)

	token, err := svc.PlaybackURLByID(context.Background(), video.ID, time.Hour)
	require.NoError(t, err)
	assert.Len(t, token.Token, 64)
	assert.Contains(t, token.IframeURL, "remote-guid-1")
	assert.NotContains(t, token.IframeURL, "secret")
}

func TestPlaybackURL_RawRemoteID(t *testing.T) {
	svc := newTestVideoService(newFakeVideoRepo(), newFakeCDN())

	token, err := svc.PlaybackURL("some-guid", 0)
	require.NoError(t, err)
	assert.Len(t, token.Token, 64)
	assert.Contains(t, token.IframeURL, "/lib-1/some-guid?token=")
}
