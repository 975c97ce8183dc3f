package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coursehub/admin-api/internal/repository"
)

// ContentItem is the pointer-side constraint the generic content repository
// needs: assign the server id and stamp audit timestamps.
type ContentItem[T any] interface {
	*T
	SetID(id primitive.ObjectID)
	Touch(now time.Time)
}

// contentRepository implements repository.ContentRepository for any of the
// list-managed content entities. The entities only differ in their content
// fields, so one implementation parameterized by collection name covers FAQ
// items, benefits, and testimonials alike.
type contentRepository[T any, PT ContentItem[T]] struct {
	collection *mongo.Collection
}

// NewContentRepository creates a content repository over the named collection.
func NewContentRepository[T any, PT ContentItem[T]](db *mongo.Database, collectionName string) repository.ContentRepository[T] {
	return &contentRepository[T, PT]{
		collection: db.Collection(collectionName),
	}
}

// Create inserts a new content item and assigns its id and timestamps.
func (r *contentRepository[T, PT]) Create(ctx context.Context, item *T) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	PT(item).SetID(id)
	PT(item).Touch(time.Now().UTC())

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return primitive.NilObjectID, err
	}
	return id, nil
}

// GetByID retrieves a content item by its id.
func (r *contentRepository[T, PT]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var item T
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetByCourseID retrieves all items belonging to a course, in display order
// (orderIndex ascending, then insertion order; entities without an
// orderIndex field sort purely by insertion).
func (r *contentRepository[T, PT]) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]T, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "orderIndex", Value: 1},
		{Key: "createdAt", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"courseId": courseID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the item with the given id. The caller passes the full
// entity (fetched, mutated); a missing row maps to ErrNotFound rather than a
// silent no-op.
func (r *contentRepository[T, PT]) Update(ctx context.Context, id primitive.ObjectID, item *T) error {
	PT(item).SetID(id)
	PT(item).Touch(time.Now().UTC())

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, item)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the item with the given id. Deleting an id that no longer
// exists returns ErrNotFound so the caller can report "already deleted".
func (r *contentRepository[T, PT]) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureContentIndexes creates the owning-course index used by every content
// collection's list query.
func EnsureContentIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "courseId", Value: 1}, {Key: "orderIndex", Value: 1}},
	})
	return err
}
