package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"coursehub/admin-api/internal/action"
	"coursehub/admin-api/internal/domain"
	"coursehub/admin-api/internal/repository"
)

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrChapterNotFound = errors.New("chapter not found")
)

// CourseInput is the validated schema for course create/update.
type CourseInput struct {
	Title       string `json:"title" validate:"required,max=160"`
	Slug        string `json:"slug" validate:"required,max=80"`
	Description string `json:"description" validate:"max=4000"`
}

// ChapterInput is the validated schema for chapter create/update.
type ChapterInput struct {
	CourseID   string `json:"courseId" validate:"required"`
	Title      string `json:"title" validate:"required,max=160"`
	OrderIndex int    `json:"orderIndex" validate:"min=0"`
}

// CourseService manages courses and their chapters.
type CourseService interface {
	List(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error)
	Create(ctx context.Context, in CourseInput) action.Result[domain.Course]
	Update(ctx context.Context, id primitive.ObjectID, in CourseInput) action.Result[domain.Course]
	Delete(ctx context.Context, id primitive.ObjectID) action.Result[domain.Course]

	ListChapters(ctx context.Context, courseID primitive.ObjectID) ([]domain.Chapter, error)
	CreateChapter(ctx context.Context, in ChapterInput) action.Result[domain.Chapter]
	UpdateChapter(ctx context.Context, id primitive.ObjectID, in ChapterInput) action.Result[domain.Chapter]
	DeleteChapter(ctx context.Context, id primitive.ObjectID) action.Result[domain.Chapter]
}

type courseService struct {
	courseRepo  repository.CourseRepository
	chapterRepo repository.ChapterRepository
}

// NewCourseService creates a new instance of courseService.
func NewCourseService(courseRepo repository.CourseRepository, chapterRepo repository.ChapterRepository) CourseService {
	return &courseService{
		courseRepo:  courseRepo,
		chapterRepo: chapterRepo,
	}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func (s *courseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.courseRepo.List(ctx)
}

func (s *courseService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// Create inserts a new course. On success the result also carries the admin
// page to navigate to; that navigation is part of the success shape, not an
// error signal.
func (s *courseService) Create(ctx context.Context, in CourseInput) action.Result[domain.Course] {
	if errs := s.validateCourse(in); errs != nil {
		return action.Invalid[domain.Course](errs, "Please correct the highlighted fields.")
	}

	course := domain.Course{
		Title:       in.Title,
		Slug:        strings.ToLower(in.Slug),
		Description: in.Description,
	}
	id, err := s.courseRepo.Create(ctx, &course)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return action.Invalid[domain.Course](action.FieldErrors{"slug": {"slug is already in use"}}, "Please correct the highlighted fields.")
		}
		log.Printf("ERROR: creating course failed: %v", err)
		return action.Fail[domain.Course]("Failed to create course.")
	}
	course.ID = id

	return action.Redirect(course, "Course created.", "/admin/courses/"+id.Hex())
}

func (s *courseService) Update(ctx context.Context, id primitive.ObjectID, in CourseInput) action.Result[domain.Course] {
	if errs := s.validateCourse(in); errs != nil {
		return action.Invalid[domain.Course](errs, "Please correct the highlighted fields.")
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return action.NotFound[domain.Course]("Course not found. It may have been deleted.")
		}
		log.Printf("ERROR: loading course %s failed: %v", id.Hex(), err)
		return action.Fail[domain.Course]("Failed to update course.")
	}

	course.Title = in.Title
	course.Slug = strings.ToLower(in.Slug)
	course.Description = in.Description

	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return action.NotFound[domain.Course]("Course not found. It may have been deleted.")
		}
		log.Printf("ERROR: updating course %s failed: %v", id.Hex(), err)
		return action.Fail[domain.Course]("Failed to update course.")
	}
	return action.OK(*course, "Course updated.")
}

func (s *courseService) Delete(ctx context.Context, id primitive.ObjectID) action.Result[domain.Course] {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return action.NotFound[domain.Course]("Course not found. It may already have been deleted.")
		}
		log.Printf("ERROR: deleting course %s failed: %v", id.Hex(), err)
		return action.Fail[domain.Course]("Failed to delete course.")
	}
	return action.Done[domain.Course]("Course deleted.")
}

func (s *courseService) validateCourse(in CourseInput) action.FieldErrors {
	errs := action.Validate(in)
	if !slugPattern.MatchString(strings.ToLower(in.Slug)) {
		if errs == nil {
			errs = action.FieldErrors{}
		}
		errs["slug"] = append(errs["slug"], "slug may only contain lowercase letters, digits and hyphens")
	}
	return errs
}

// --- Chapters ---

func (s *courseService) ListChapters(ctx context.Context, courseID primitive.ObjectID) ([]domain.Chapter, error) {
	return s.chapterRepo.GetByCourseID(ctx, courseID)
}

func (s *courseService) CreateChapter(ctx context.Context, in ChapterInput) action.Result[domain.Chapter] {
	if errs := action.Validate(in); errs != nil {
		return action.Invalid[domain.Chapter](errs, "Please correct the highlighted fields.")
	}
	courseID, errs := parseCourseID(in.CourseID)
	if errs != nil {
		return action.Invalid[domain.Chapter](errs, "Please correct the highlighted fields.")
	}

	// The chapter must belong to an existing course.
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return action.NotFound[domain.Chapter]("Course not found.")
		}
		log.Printf("ERROR: verifying course %s failed: %v", courseID.Hex(), err)
		return action.Fail[domain.Chapter]("Failed to create chapter.")
	}

	chapter := domain.Chapter{
		CourseID:   courseID,
		Title:      in.Title,
		OrderIndex: in.OrderIndex,
	}
	id, err := s.chapterRepo.Create(ctx, &chapter)
	if err != nil {
		log.Printf("ERROR: creating chapter failed: %v", err)
		return action.Fail[domain.Chapter]("Failed to create chapter.")
	}
	chapter.ID = id
	return action.OK(chapter, "Chapter created.")
}

func (s *courseService) UpdateChapter(ctx context.Context, id primitive.ObjectID, in ChapterInput) action.Result[domain.Chapter] {
	if errs := action.Validate(in); errs != nil {
		return action.Invalid[domain.Chapter](errs, "Please correct the highlighted fields.")
	}

	chapter, err := s.chapterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return action.NotFound[domain.Chapter]("Chapter not found. It may have been deleted.")
		}
		log.Printf("ERROR: loading chapter %s failed: %v", id.Hex(), err)
		return action.Fail[domain.Chapter]("Failed to update chapter.")
	}

	chapter.Title = in.Title
	chapter.OrderIndex = in.OrderIndex

	if err := s.chapterRepo.Update(ctx, chapter); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return action.NotFound[domain.Chapter]("Chapter not found. It may have been deleted.")
		}
		log.Printf("ERROR: updating chapter %s failed: %v", id.Hex(), err)
		return action.Fail[domain.Chapter]("Failed to update chapter.")
	}
	return action.OK(*chapter, "Chapter updated.")
}

func (s *courseService) DeleteChapter(ctx context.Context, id primitive.ObjectID) action.Result[domain.Chapter] {
	if err := s.chapterRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return action.NotFound[domain.Chapter]("Chapter not found. It may already have been deleted.")
		}
		log.Printf("ERROR: deleting chapter %s failed: %v", id.Hex(), err)
		return action.Fail[domain.Chapter]("Failed to delete chapter.")
	}
	return action.Done[domain.Chapter]("Chapter deleted.")
}
