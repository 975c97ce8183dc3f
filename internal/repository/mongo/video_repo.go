package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coursehub/admin-api/internal/domain"
	"coursehub/admin-api/internal/repository"
)

const videoCollectionName = "videos"

// mongoVideoRepository implements repository.VideoRepository
type mongoVideoRepository struct {
	collection *mongo.Collection
}

// NewMongoVideoRepository creates a new video metadata repository backed by MongoDB.
func NewMongoVideoRepository(db *mongo.Database) repository.VideoRepository {
	return &mongoVideoRepository{
		collection: db.Collection(videoCollectionName),
	}
}

// Create inserts a new video row. A row without a remote id is refused here
// as a last line of defense: the upload pipeline must never persist metadata
// pointing at nothing.
func (r *mongoVideoRepository) Create(ctx context.Context, video *domain.VideoAsset) (primitive.ObjectID, error) {
	if video.RemoteID == "" {
		return primitive.NilObjectID, errors.New("video remote id is required")
	}
	if video.Title == "" || video.CourseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("video title and course id are required")
	}

	video.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, video)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a video row by its local id.
func (r *mongoVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.VideoAsset, error) {
	var video domain.VideoAsset
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// GetByRemoteID retrieves a video row by its CDN-assigned id.
func (r *mongoVideoRepository) GetByRemoteID(ctx context.Context, remoteID string) (*domain.VideoAsset, error) {
	var video domain.VideoAsset
	err := r.collection.FindOne(ctx, bson.M{"remoteId": remoteID}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// GetByCourseID retrieves all videos of a course in chapter display order.
func (r *mongoVideoRepository) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]domain.VideoAsset, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "chapterId", Value: 1},
		{Key: "orderIndex", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"courseId": courseID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []domain.VideoAsset
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Update replaces a video row's mutable metadata.
func (r *mongoVideoRepository) Update(ctx context.Context, video *domain.VideoAsset) error {
	video.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": video.ID}, video)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the local video row.
func (r *mongoVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureVideoIndexes creates the indexes the video queries rely on. The
// unique remoteId index backs the one-row-per-remote-asset invariant.
func EnsureVideoIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "remoteId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "courseId", Value: 1}, {Key: "chapterId", Value: 1}, {Key: "orderIndex", Value: 1}},
		},
	})
	return err
}
