package service

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"coursehub/admin-api/internal/cdn"
	"coursehub/admin-api/internal/domain"
	"coursehub/admin-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrVideoNotFound      = errors.New("video not found")
	ErrVideoNotReady      = errors.New("video is not ready for playback")
	ErrVideoTitleRequired = errors.New("video title is required")
	ErrRemoteIDRequired   = errors.New("remote video id is required")
	ErrRemoteCreateFailed = errors.New("failed to create remote video record")
	ErrUploadFailed       = errors.New("video upload failed")
	ErrRemoteDeleteFailed = errors.New("failed to delete remote video asset")
	ErrIllegalTransition  = errors.New("illegal video ingest state transition")
)

// VideoCDN is the slice of the CDN client the video service depends on.
// Declared here so tests can substitute a fake.
type VideoCDN interface {
	CreateVideo(ctx context.Context, title string) (cdn.UploadTarget, error)
	UploadVideo(ctx context.Context, remoteID string, r io.Reader) error
	DeleteVideo(ctx context.Context, remoteID string) error
}

// VideoMetadata is the input to PersistVideoRecord: everything the local row
// needs once the remote asset exists and has its bytes.
type VideoMetadata struct {
	RemoteID        string
	Title           string
	CourseID        primitive.ObjectID
	ChapterID       *primitive.ObjectID
	ThumbnailURL    string
	DurationSeconds int
	OrderIndex      int
}

// --- Service Interface ---
type VideoService interface {
	// The three pipeline steps, exposed individually because the API drives
	// them from separate requests (create, then upload, then save).
	CreateRemoteVideoRecord(ctx context.Context, title string) (cdn.UploadTarget, error)
	UploadVideoBytes(ctx context.Context, remoteID string, r io.Reader) error
	PersistVideoRecord(ctx context.Context, meta VideoMetadata) (*domain.VideoAsset, error)

	// Ingest runs the whole create -> upload -> persist pipeline in one call.
	Ingest(ctx context.Context, meta VideoMetadata, r io.Reader) (*domain.VideoAsset, error)

	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.VideoAsset, error)
	GetByCourse(ctx context.Context, courseID primitive.ObjectID) ([]domain.VideoAsset, error)
	UpdateMetadata(ctx context.Context, id primitive.ObjectID, title string, chapterID *primitive.ObjectID, orderIndex int, thumbnailURL string) (*domain.VideoAsset, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Playback signing. PlaybackURL signs a raw remote id; PlaybackURLByID
	// resolves a local row first and refuses assets that are not ready.
	PlaybackURL(remoteID string, ttl time.Duration) (cdn.EmbedToken, error)
	PlaybackURLByID(ctx context.Context, id primitive.ObjectID, ttl time.Duration) (cdn.EmbedToken, error)
}

// --- Service Implementation ---

type videoService struct {
	videoRepo repository.VideoRepository
	cdnClient VideoCDN
	signer    *cdn.Signer
}

// NewVideoService creates a new instance of videoService.
func NewVideoService(videoRepo repository.VideoRepository, cdnClient VideoCDN, signer *cdn.Signer) VideoService {
	return &videoService{
		videoRepo: videoRepo,
		cdnClient: cdnClient,
		signer:    signer,
	}
}

// CreateRemoteVideoRecord registers an empty video at the CDN. The returned
// target carries the remote id the next step needs.
func (s *videoService) CreateRemoteVideoRecord(ctx context.Context, title string) (cdn.UploadTarget, error) {
	if title == "" {
		return cdn.UploadTarget{}, ErrVideoTitleRequired
	}
	target, err := s.cdnClient.CreateVideo(ctx, title)
	if err != nil {
		return cdn.UploadTarget{}, err
	}
	return target, nil
}

// UploadVideoBytes transfers raw bytes into a previously created remote
// video. Callers must not persist a local record when this fails; an empty
// remote asset with local metadata pointing at it is worse than a retry.
func (s *videoService) UploadVideoBytes(ctx context.Context, remoteID string, r io.Reader) error {
	if remoteID == "" {
		return ErrRemoteIDRequired
	}
	if err := s.cdnClient.UploadVideo(ctx, remoteID, r); err != nil {
		return err
	}
	return nil
}

// PersistVideoRecord inserts the local row. Only legal after create and
// upload have both succeeded; the missing-field checks run before any
// database call.
func (s *videoService) PersistVideoRecord(ctx context.Context, meta VideoMetadata) (*domain.VideoAsset, error) {
	if meta.RemoteID == "" {
		return nil, ErrRemoteIDRequired
	}
	if meta.Title == "" {
		return nil, ErrVideoTitleRequired
	}
	if meta.CourseID == primitive.NilObjectID {
		return nil, errors.New("course id is required")
	}

	video := &domain.VideoAsset{
		RemoteID:        meta.RemoteID,
		Title:           meta.Title,
		CourseID:        meta.CourseID,
		ChapterID:       meta.ChapterID,
		ThumbnailURL:    meta.ThumbnailURL,
		DurationSeconds: meta.DurationSeconds,
		OrderIndex:      meta.OrderIndex,
		State:           domain.RemoteReady,
	}

	id, err := s.videoRepo.Create(ctx, video)
	if err != nil {
		// The remote asset now has no local record. Accepted: the upload is
		// retryable from scratch and operators can reconcile the orphan.
		log.Printf("ERROR: persisting video record for remote %s failed, remote asset is orphaned: %v", meta.RemoteID, err)
		return nil, err
	}
	video.ID = id
	return video, nil
}

// Ingest runs the full pipeline, walking the remote lifecycle state machine:
// NONE -> CREATING -> CREATED -> UPLOADING -> READY, with CREATING and
// UPLOADING failing to a terminal FAILED. There is no resume from a partial
// upload; a failed attempt restarts from NONE.
func (s *videoService) Ingest(ctx context.Context, meta VideoMetadata, r io.Reader) (*domain.VideoAsset, error) {
	state := domain.RemoteNone

	advance := func(next domain.RemoteState) error {
		if !state.CanTransition(next) {
			return ErrIllegalTransition
		}
		state = next
		return nil
	}

	if err := advance(domain.RemoteCreating); err != nil {
		return nil, err
	}
	target, err := s.CreateRemoteVideoRecord(ctx, meta.Title)
	if err != nil {
		_ = advance(domain.RemoteFailed)
		return nil, errors.Join(ErrRemoteCreateFailed, err)
	}
	if err := advance(domain.RemoteCreated); err != nil {
		return nil, err
	}

	if err := advance(domain.RemoteUploading); err != nil {
		return nil, err
	}
	if err := s.UploadVideoBytes(ctx, target.RemoteID, r); err != nil {
		_ = advance(domain.RemoteFailed)
		return nil, errors.Join(ErrUploadFailed, err)
	}
	if err := advance(domain.RemoteReady); err != nil {
		return nil, err
	}

	meta.RemoteID = target.RemoteID
	return s.PersistVideoRecord(ctx, meta)
}

// GetByID retrieves a single video row.
func (s *videoService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.VideoAsset, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// GetByCourse retrieves all videos of a course in display order.
func (s *videoService) GetByCourse(ctx context.Context, courseID primitive.ObjectID) ([]domain.VideoAsset, error) {
	if courseID == primitive.NilObjectID {
		return nil, errors.New("course id cannot be nil")
	}
	return s.videoRepo.GetByCourseID(ctx, courseID)
}

// UpdateMetadata edits a video's title, chapter assignment, ordering and
// thumbnail. The remote id is immutable.
func (s *videoService) UpdateMetadata(ctx context.Context, id primitive.ObjectID, title string, chapterID *primitive.ObjectID, orderIndex int, thumbnailURL string) (*domain.VideoAsset, error) {
	if title == "" {
		return nil, ErrVideoTitleRequired
	}

	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	video.Title = title
	video.ChapterID = chapterID
	video.OrderIndex = orderIndex
	video.ThumbnailURL = thumbnailURL

	if err := s.videoRepo.Update(ctx, video); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// Delete removes the remote asset first, then the local row, in that order.
// A remote failure aborts before the local delete so the row remains as the
// handle for a retry; a local failure after remote success leaves a dangling
// row, which is logged and surfaced but not compensated (the CDN and the
// database share no transaction coordinator).
func (s *videoService) Delete(ctx context.Context, id primitive.ObjectID) error {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	if err := s.cdnClient.DeleteVideo(ctx, video.RemoteID); err != nil {
		log.Printf("ERROR: remote delete failed for video %s (remote %s), keeping local row: %v", id.Hex(), video.RemoteID, err)
		return errors.Join(ErrRemoteDeleteFailed, err)
	}

	if err := s.videoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Another session deleted the row in the meantime; the remote
			// asset is gone either way.
			return nil
		}
		log.Printf("ERROR: local delete failed for video %s after remote %s was deleted; row is dangling: %v", id.Hex(), video.RemoteID, err)
		return err
	}
	return nil
}

// PlaybackURL signs a playback token for a raw remote id.
func (s *videoService) PlaybackURL(remoteID string, ttl time.Duration) (cdn.EmbedToken, error) {
	return s.signer.SignedEmbedURL(remoteID, ttl)
}

// PlaybackURLByID resolves a local row and signs its remote id. Ready is the
// only state playback is valid from.
func (s *videoService) PlaybackURLByID(ctx context.Context, id primitive.ObjectID, ttl time.Duration) (cdn.EmbedToken, error) {
	video, err := s.GetByID(ctx, id)
	if err != nil {
		return cdn.EmbedToken{}, err
	}
	if video.State != domain.RemoteReady {
		return cdn.EmbedToken{}, ErrVideoNotReady
	}
	return s.signer.SignedEmbedURL(video.RemoteID, ttl)
}
