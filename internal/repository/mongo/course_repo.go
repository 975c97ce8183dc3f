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

const (
	courseCollectionName  = "courses"
	chapterCollectionName = "chapters"
)

// mongoCourseRepository implements repository.CourseRepository
type mongoCourseRepository struct {
	collection *mongo.Collection
}

// NewMongoCourseRepository creates a new course repository backed by MongoDB.
func NewMongoCourseRepository(db *mongo.Database) repository.CourseRepository {
	return &mongoCourseRepository{
		collection: db.Collection(courseCollectionName),
	}
}

func (r *mongoCourseRepository) Create(ctx context.Context, course *domain.Course) (primitive.ObjectID, error) {
	if course.Title == "" || course.Slug == "" {
		return primitive.NilObjectID, errors.New("course title and slug are required")
	}

	course.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, course); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return course.ID, nil
}

func (r *mongoCourseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	var course domain.Course
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *mongoCourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []domain.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *mongoCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	course.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": course.ID}, course)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCourseIndexes creates the unique slug index.
func EnsureCourseIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// mongoChapterRepository implements repository.ChapterRepository
type mongoChapterRepository struct {
	collection *mongo.Collection
}

// NewMongoChapterRepository creates a new chapter repository backed by MongoDB.
func NewMongoChapterRepository(db *mongo.Database) repository.ChapterRepository {
	return &mongoChapterRepository{
		collection: db.Collection(chapterCollectionName),
	}
}

func (r *mongoChapterRepository) Create(ctx context.Context, chapter *domain.Chapter) (primitive.ObjectID, error) {
	if chapter.Title == "" || chapter.CourseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("chapter title and course id are required")
	}

	chapter.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	chapter.CreatedAt = now
	chapter.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, chapter); err != nil {
		return primitive.NilObjectID, err
	}
	return chapter.ID, nil
}

func (r *mongoChapterRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Chapter, error) {
	var chapter domain.Chapter
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&chapter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

func (r *mongoChapterRepository) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]domain.Chapter, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "orderIndex", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"courseId": courseID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chapters []domain.Chapter
	if err := cursor.All(ctx, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *mongoChapterRepository) Update(ctx context.Context, chapter *domain.Chapter) error {
	chapter.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": chapter.ID}, chapter)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoChapterRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureChapterIndexes creates the course/order index chapters list by.
func EnsureChapterIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "courseId", Value: 1}, {Key: "orderIndex", Value: 1}},
	})
	return err
}
