package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RemoteState tracks a video's lifecycle at the CDN. The local record is only
// ever persisted once the asset is Ready; intermediate states exist on the
// in-flight pipeline object, not in the database.
type RemoteState string

const (
	RemoteNone      RemoteState = "none"
	RemoteCreating  RemoteState = "creating"
	RemoteCreated   RemoteState = "created"
	RemoteUploading RemoteState = "uploading"
	RemoteReady     RemoteState = "ready"
	RemoteFailed    RemoteState = "failed" // terminal; restart from RemoteNone
)

// CanTransition reports whether moving from s to next is a legal step of the
// ingest state machine. Failed is reachable from the two in-flight states and
// is terminal: there is no resume-from-partial-upload.
func (s RemoteState) CanTransition(next RemoteState) bool {
	switch s {
	case RemoteNone:
		return next == RemoteCreating
	case RemoteCreating:
		return next == RemoteCreated || next == RemoteFailed
	case RemoteCreated:
		return next == RemoteUploading
	case RemoteUploading:
		return next == RemoteReady || next == RemoteFailed
	default:
		return false
	}
}

// VideoAsset represents one uploaded video. The actual bytes live at the CDN
// under RemoteID; this record is the local metadata row. RemoteID is assigned
// by the CDN's create call and a VideoAsset is never persisted without one.
type VideoAsset struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RemoteID        string              `bson:"remoteId" json:"remoteId"`
	Title           string              `bson:"title" json:"title"`
	CourseID        primitive.ObjectID  `bson:"courseId" json:"courseId"`
	ChapterID       *primitive.ObjectID `bson:"chapterId,omitempty" json:"chapterId,omitempty"` // nil = unassigned
	ThumbnailURL    string              `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	DurationSeconds int                 `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
	OrderIndex      int                 `bson:"orderIndex" json:"orderIndex"`
	State           RemoteState         `bson:"state" json:"state"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
