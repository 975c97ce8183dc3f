package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"coursehub/admin-api/internal/action"
	"coursehub/admin-api/internal/domain"
	"coursehub/admin-api/internal/repository"
)

type fakeCourseRepo struct {
	courses map[primitive.ObjectID]*domain.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[primitive.ObjectID]*domain.Course)}
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *domain.Course) (primitive.ObjectID, error) {
	for _, existing := range f.courses {
		if existing.Slug == course.Slug {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	stored := *course
	stored.ID = id
	f.courses[id] = &stored
	return id, nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	for _, course := range f.courses {
		out = append(out, *course)
	}
	return out, nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *course
	f.courses[course.ID] = &stored
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

type fakeChapterRepo struct {
	chapters map[primitive.ObjectID]*domain.Chapter
}

func newFakeChapterRepo() *fakeChapterRepo {
	return &fakeChapterRepo{chapters: make(map[primitive.ObjectID]*domain.Chapter)}
}

func (f *fakeChapterRepo) Create(ctx context.Context, chapter *domain.Chapter) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *chapter
	stored.ID = id
	f.chapters[id] = &stored
	return id, nil
}

func (f *fakeChapterRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Chapter, error) {
	chapter, ok := f.chapters[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *chapter
	return &copied, nil
}

func (f *fakeChapterRepo) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]domain.Chapter, error) {
	var out []domain.Chapter
	for _, chapter := range f.chapters {
		if chapter.CourseID == courseID {
			out = append(out, *chapter)
		}
	}
	return out, nil
}

func (f *fakeChapterRepo) Update(ctx context.Context, chapter *domain.Chapter) error {
	if _, ok := f.chapters[chapter.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *chapter
	f.chapters[chapter.ID] = &stored
	return nil
}

func (f *fakeChapterRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.chapters[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.chapters, id)
	return nil
}

func newTestCourseService() (CourseService, *fakeCourseRepo) {
	repo := newFakeCourseRepo()
	return NewCourseService(repo, newFakeChapterRepo()), repo
}

func TestCreateCourse_RedirectsToAdminPage(t *testing.T) {
	svc, _ := newTestCourseService()

	res := svc.Create(context.Background(), CourseInput{Title: "Go Basics", Slug: "go-basics"})
	require.True(t, res.IsOK())
	require.NotNil(t, res.Data)
	assert.Equal(t, "/admin/courses/"+res.Data.ID.Hex(), res.RedirectTo)
	assert.Equal(t, "Course created.", res.Message)
}

func TestCreateCourse_DuplicateSlugIsAFieldError(t *testing.T) {
	svc, _ := newTestCourseService()

	first := svc.Create(context.Background(), CourseInput{Title: "Go Basics", Slug: "go-basics"})
	require.True(t, first.IsOK())

	second := svc.Create(context.Background(), CourseInput{Title: "Go Basics 2", Slug: "go-basics"})
	require.Equal(t, action.KindError, second.Kind)
	assert.Equal(t, []string{"slug is already in use"}, second.Errors["slug"])
}

func TestCreateCourse_SlugFormat(t *testing.T) {
	svc, repo := newTestCourseService()

	res := svc.Create(context.Background(), CourseInput{Title: "Go Basics", Slug: "go basics!"})
	require.False(t, res.IsOK())
	assert.Contains(t, res.Errors, "slug")
	assert.Empty(t, repo.courses)

	// Uppercase input is accepted and stored lowercased.
	res = svc.Create(context.Background(), CourseInput{Title: "Go Basics", Slug: "Go-Basics"})
	require.True(t, res.IsOK())
	assert.Equal(t, "go-basics", res.Data.Slug)
}

func TestUpdateCourse_NotFoundShape(t *testing.T) {
	svc, _ := newTestCourseService()

	res := svc.Update(context.Background(), primitive.NewObjectID(), CourseInput{Title: "t", Slug: "t"})
	assert.Equal(t, action.KindError, res.Kind)
	assert.True(t, res.NotFound)
}

func TestCourseRoundTrip(t *testing.T) {
	svc, _ := newTestCourseService()
	ctx := context.Background()

	created := svc.Create(ctx, CourseInput{Title: "Go Basics", Slug: "go-basics", Description: "d"})
	require.True(t, created.IsOK())
	id := created.Data.ID

	updated := svc.Update(ctx, id, CourseInput{Title: "Go Basics, 2nd ed", Slug: "go-basics"})
	require.True(t, updated.IsOK())
	assert.Equal(t, "Go Basics, 2nd ed", updated.Data.Title)

	deleted := svc.Delete(ctx, id)
	require.True(t, deleted.IsOK())

	again := svc.Delete(ctx, id)
	assert.True(t, again.NotFound)
}

func TestCreateChapter_RequiresExistingCourse(t *testing.T) {
	svc, _ := newTestCourseService()
	ctx := context.Background()

	res := svc.CreateChapter(ctx, ChapterInput{CourseID: primitive.NewObjectID().Hex(), Title: "Week 1"})
	assert.Equal(t, action.KindError, res.Kind)
	assert.True(t, res.NotFound)

	course := svc.Create(ctx, CourseInput{Title: "Go Basics", Slug: "go-basics"})
	require.True(t, course.IsOK())

	res = svc.CreateChapter(ctx, ChapterInput{CourseID: course.Data.ID.Hex(), Title: "Week 1", OrderIndex: 1})
	require.True(t, res.IsOK())
	assert.Equal(t, course.Data.ID, res.Data.CourseID)

	chapters, err := svc.ListChapters(ctx, course.Data.ID)
	require.NoError(t, err)
	assert.Len(t, chapters, 1)
}
