package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"coursehub/admin-api/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with staff accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role domain.Role) error
}

// CourseRepository defines the interface for interacting with course data.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ChapterRepository defines the interface for interacting with chapter data.
type ChapterRepository interface {
	Create(ctx context.Context, chapter *domain.Chapter) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Chapter, error)
	GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]domain.Chapter, error)
	Update(ctx context.Context, chapter *domain.Chapter) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// VideoRepository defines the interface for interacting with video metadata.
// The bytes themselves live at the CDN; rows here always reference a remote
// asset that was successfully created and uploaded.
type VideoRepository interface {
	Create(ctx context.Context, video *domain.VideoAsset) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.VideoAsset, error)
	GetByRemoteID(ctx context.Context, remoteID string) (*domain.VideoAsset, error)
	GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]domain.VideoAsset, error)
	Update(ctx context.Context, video *domain.VideoAsset) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ContentRepository is the shared interface behind every list-managed content
// entity (FAQ items, benefits, testimonials). One generic interface because
// the admin screens drive them all through the same create/update/delete
// triple.
type ContentRepository[T any] interface {
	Create(ctx context.Context, item *T) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]T, error)
	Update(ctx context.Context, id primitive.ObjectID, item *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
