package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"coursehub/admin-api/internal/action"
	"coursehub/admin-api/internal/cdn"
	"coursehub/admin-api/internal/domain"
	"coursehub/admin-api/internal/service"
)

// VideoHandler drives the signed video-delivery endpoints: the three-step
// upload pipeline, remote+local deletion, and playback token issuance.
type VideoHandler struct {
	videoService service.VideoService
	signer       *cdn.Signer
	uploadWindow time.Duration
}

// NewVideoHandler creates a new VideoHandler. uploadWindow bounds the raw
// byte-transfer route; the other routes run under the server's defaults.
func NewVideoHandler(videoService service.VideoService, signer *cdn.Signer, uploadWindow time.Duration) *VideoHandler {
	if uploadWindow <= 0 {
		uploadWindow = 300 * time.Second
	}
	return &VideoHandler{
		videoService: videoService,
		signer:       signer,
		uploadWindow: uploadWindow,
	}
}

// --- Request/Response Structs ---

type CreateVideoRequest struct {
	Title string `json:"title" binding:"required"`
}

type CreateVideoResponse struct {
	GUID        string `json:"guid"`
	UploadURL   string `json:"uploadUrl"`
	PlaybackURL string `json:"playbackUrl"`
}

type SaveVideoRequest struct {
	Title        string `json:"title"`
	CourseID     string `json:"courseId"`
	BunnyVideoID string `json:"bunnyVideoId"`
	ChapterID    string `json:"chapterId"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Duration     int    `json:"duration"`
	OrderIndex   int    `json:"orderIndex"`
}

type PlaybackRequest struct {
	VideoID    string `json:"videoId"`
	TTLSeconds int64  `json:"ttl"`
}

type UpdateVideoRequest struct {
	Title        string `json:"title" binding:"required"`
	ChapterID    string `json:"chapterId"`
	OrderIndex   int    `json:"orderIndex"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// --- Handler Methods ---

// CreateRemoteVideo handles POST /api/bunny/create (and its historical alias
// /api/bunny/create-upload-url). It registers an empty video at the CDN and
// returns the coordinates the byte upload needs. Credentials never leave the
// server; a missing key is reported as a generic configuration failure.
func (h *VideoHandler) CreateRemoteVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "A video title is required.")
		return
	}

	target, err := h.videoService.CreateRemoteVideoRecord(c.Request.Context(), req.Title)
	if err != nil {
		if errors.Is(err, cdn.ErrMissingCredentials) {
			abortWithError(c, http.StatusInternalServerError, "Video provider is not configured.")
			return
		}
		var provErr *cdn.ProviderError
		if errors.As(err, &provErr) {
			abortWithError(c, http.StatusInternalServerError, provErr.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create video.")
		return
	}

	c.JSON(http.StatusCreated, CreateVideoResponse{
		GUID:        target.RemoteID,
		UploadURL:   target.UploadURL,
		PlaybackURL: h.signer.EmbedURL(target.RemoteID),
	})
}

// UploadVideoBytes handles POST /api/bunny/upload: multipart form with the
// raw file and the guid from the create step. The route gets a multi-minute
// deadline of its own; everything else about the transfer is sequential and
// uncancellable once started.
func (h *VideoHandler) UploadVideoBytes(c *gin.Context) {
	guid := c.PostForm("guid")
	if guid == "" {
		abortWithError(c, http.StatusBadRequest, "A video guid is required.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "A video file is required.")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read uploaded file.")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.uploadWindow)
	defer cancel()

	if err := h.videoService.UploadVideoBytes(ctx, guid, file); err != nil {
		var provErr *cdn.ProviderError
		if errors.As(err, &provErr) {
			abortWithError(c, http.StatusInternalServerError, provErr.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Video upload failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "guid": guid})
}

// SaveVideoRecord handles POST /api/bunny/save and /api/videos/save: the
// final pipeline step, inserting the local metadata row. Missing fields are
// rejected before any database call.
func (h *VideoHandler) SaveVideoRecord(c *gin.Context) {
	var req SaveVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	// Missing-field detection up front.
	if req.Title == "" || req.CourseID == "" || req.BunnyVideoID == "" {
		abortWithError(c, http.StatusBadRequest, "title, courseId and bunnyVideoId are required.")
		return
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "courseId is not a valid id.")
		return
	}
	var chapterID *primitive.ObjectID
	if req.ChapterID != "" {
		id, err := primitive.ObjectIDFromHex(req.ChapterID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "chapterId is not a valid id.")
			return
		}
		chapterID = &id
	}

	video, err := h.videoService.PersistVideoRecord(c.Request.Context(), service.VideoMetadata{
		RemoteID:        req.BunnyVideoID,
		Title:           req.Title,
		CourseID:        courseID,
		ChapterID:       chapterID,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: req.Duration,
		OrderIndex:      req.OrderIndex,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save video.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": video})
}

// DeleteVideo handles DELETE /api/bunny/delete/:videoId. Remote delete runs
// strictly before local delete; a remote failure leaves the local row in
// place so the operation can be retried.
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("videoId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid video id.")
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, "Video not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete video.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GenerateToken handles GET /api/generate-token?videoId=&ttl= — query-string
// adapter over the one signing routine.
func (h *VideoHandler) GenerateToken(c *gin.Context) {
	videoID := c.Query("videoId")
	var ttl time.Duration
	if raw := c.Query("ttl"); raw != "" {
		seconds, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "ttl must be an integer number of seconds.")
			return
		}
		ttl = time.Duration(seconds) * time.Second
	}
	h.issueToken(c, videoID, ttl)
}

// Playback handles POST /api/bunny/playback and /api/bunny/embed — JSON-body
// adapters over the same signing routine as GenerateToken.
func (h *VideoHandler) Playback(c *gin.Context) {
	var req PlaybackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	h.issueToken(c, req.VideoID, time.Duration(req.TTLSeconds)*time.Second)
}

func (h *VideoHandler) issueToken(c *gin.Context, videoID string, ttl time.Duration) {
	token, err := h.videoService.PlaybackURL(videoID, ttl)
	if err != nil {
		if errors.Is(err, cdn.ErrMissingVideoID) {
			abortWithError(c, http.StatusBadRequest, "A videoId is required.")
			return
		}
		// Signing-key misconfiguration: generic message, detail stays in
		// the server log.
		abortWithError(c, http.StatusInternalServerError, "Failed to generate playback token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token.Token,
		"expires":   token.Expires,
		"iframeUrl": token.IframeURL,
		"expiresAt": token.ExpiresAt,
	})
}

// ListCourseVideos handles GET /api/admin/courses/:courseId/videos.
func (h *VideoHandler) ListCourseVideos(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("courseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid course id.")
		return
	}

	videos, err := h.videoService.GetByCourse(c.Request.Context(), courseID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list videos.")
		return
	}
	if videos == nil {
		videos = []domain.VideoAsset{}
	}
	c.JSON(http.StatusOK, videos)
}

// UpdateVideo handles PUT /api/admin/videos/:videoId: the video list view's
// edit action. The response is the action result the list reconciles from.
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("videoId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid video id.")
		return
	}

	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, false, action.Invalid[domain.VideoAsset](
			action.FieldErrors{"title": {"title is required"}}, "Please correct the highlighted fields."))
		return
	}
	var chapterID *primitive.ObjectID
	if req.ChapterID != "" {
		cid, err := primitive.ObjectIDFromHex(req.ChapterID)
		if err != nil {
			respond(c, false, action.Invalid[domain.VideoAsset](
				action.FieldErrors{"chapterId": {"chapterId is not a valid id"}}, "Please correct the highlighted fields."))
			return
		}
		chapterID = &cid
	}

	video, err := h.videoService.UpdateMetadata(c.Request.Context(), id, req.Title, chapterID, req.OrderIndex, req.ThumbnailURL)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			respond(c, false, action.NotFound[domain.VideoAsset]("Video not found. It may have been deleted."))
			return
		}
		respond(c, false, action.Fail[domain.VideoAsset]("Failed to update video."))
		return
	}
	respond(c, false, action.OK(*video, "Video updated."))
}
