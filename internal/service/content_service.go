package service

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"coursehub/admin-api/internal/action"
	"coursehub/admin-api/internal/domain"
	"coursehub/admin-api/internal/repository"
)

// Input schemas for the list-managed content entities. The validate tags ARE
// the per-entity field schema: the same struct the handler binds is the one
// the validator checks, so renderer and validator cannot drift. Field error
// keys come from the json tags.

type FAQInput struct {
	CourseID   string `json:"courseId" validate:"required"`
	Question   string `json:"question" validate:"required,max=300"`
	Answer     string `json:"answer" validate:"required,max=2000"`
	OrderIndex int    `json:"orderIndex" validate:"min=0"`
}

type BenefitInput struct {
	CourseID    string `json:"courseId" validate:"required"`
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=60"`
	OrderIndex  int    `json:"orderIndex" validate:"min=0"`
}

type TestimonialInput struct {
	CourseID   string `json:"courseId" validate:"required"`
	Author     string `json:"author" validate:"required,max=120"`
	AuthorRole string `json:"authorRole" validate:"max=120"`
	Quote      string `json:"quote" validate:"required,max=1000"`
	AvatarURL  string `json:"avatarUrl" validate:"omitempty,url"`
}

// ContentService exposes the create/update/delete triple for every
// list-managed content entity. All write results use the action.Result
// contract so the list views can reconcile without a refetch.
type ContentService interface {
	ListFAQs(ctx context.Context, courseID primitive.ObjectID) ([]domain.FAQItem, error)
	CreateFAQ(ctx context.Context, in FAQInput) action.Result[domain.FAQItem]
	UpdateFAQ(ctx context.Context, id primitive.ObjectID, in FAQInput) action.Result[domain.FAQItem]
	DeleteFAQ(ctx context.Context, id primitive.ObjectID) action.Result[domain.FAQItem]

	ListBenefits(ctx context.Context, courseID primitive.ObjectID) ([]domain.Benefit, error)
	CreateBenefit(ctx context.Context, in BenefitInput) action.Result[domain.Benefit]
	UpdateBenefit(ctx context.Context, id primitive.ObjectID, in BenefitInput) action.Result[domain.Benefit]
	DeleteBenefit(ctx context.Context, id primitive.ObjectID) action.Result[domain.Benefit]

	ListTestimonials(ctx context.Context, courseID primitive.ObjectID) ([]domain.Testimonial, error)
	CreateTestimonial(ctx context.Context, in TestimonialInput) action.Result[domain.Testimonial]
	UpdateTestimonial(ctx context.Context, id primitive.ObjectID, in TestimonialInput) action.Result[domain.Testimonial]
	DeleteTestimonial(ctx context.Context, id primitive.ObjectID) action.Result[domain.Testimonial]
}

type contentService struct {
	faqRepo         repository.ContentRepository[domain.FAQItem]
	benefitRepo     repository.ContentRepository[domain.Benefit]
	testimonialRepo repository.ContentRepository[domain.Testimonial]
}

// NewContentService creates a new instance of contentService.
func NewContentService(
	faqRepo repository.ContentRepository[domain.FAQItem],
	benefitRepo repository.ContentRepository[domain.Benefit],
	testimonialRepo repository.ContentRepository[domain.Testimonial],
) ContentService {
	return &contentService{
		faqRepo:         faqRepo,
		benefitRepo:     benefitRepo,
		testimonialRepo: testimonialRepo,
	}
}

// --- Generic helpers ---

// parseCourseID converts the hex course id from an input schema, reporting a
// field-level error so the form can annotate the right input.
func parseCourseID(hex string) (primitive.ObjectID, action.FieldErrors) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, action.FieldErrors{"courseId": {"courseId is not a valid id"}}
	}
	return id, nil
}

func createItem[T any](ctx context.Context, repo repository.ContentRepository[T], item T, label string) action.Result[T] {
	if _, err := repo.Create(ctx, &item); err != nil {
		log.Printf("ERROR: creating %s failed: %v", label, err)
		return action.Fail[T]("Failed to create " + label + ".")
	}
	return action.OK(item, label+" created.")
}

func updateItem[T any](ctx context.Context, repo repository.ContentRepository[T], id primitive.ObjectID, label string, mutate func(*T)) action.Result[T] {
	existing, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return action.NotFound[T](label + " not found. It may have been deleted.")
		}
		log.Printf("ERROR: loading %s %s failed: %v", label, id.Hex(), err)
		return action.Fail[T]("Failed to update " + label + ".")
	}

	mutate(existing)

	if err := repo.Update(ctx, id, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted between the fetch and the write; same answer.
			return action.NotFound[T](label + " not found. It may have been deleted.")
		}
		log.Printf("ERROR: updating %s %s failed: %v", label, id.Hex(), err)
		return action.Fail[T]("Failed to update " + label + ".")
	}
	return action.OK(*existing, label+" updated.")
}

func deleteItem[T any](ctx context.Context, repo repository.ContentRepository[T], id primitive.ObjectID, label string) action.Result[T] {
	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Already removed by another session: a failure, not a silent
			// success, so the other screen's state gets corrected.
			return action.NotFound[T](label + " not found. It may already have been deleted.")
		}
		log.Printf("ERROR: deleting %s %s failed: %v", label, id.Hex(), err)
		return action.Fail[T]("Failed to delete " + label + ".")
	}
	return action.Done[T](label + " deleted.")
}

// --- FAQ items ---

func (s *contentService) ListFAQs(ctx context.Context, courseID primitive.ObjectID) ([]domain.FAQItem, error) {
	return s.faqRepo.GetByCourseID(ctx, courseID)
}

func (s *contentService) CreateFAQ(ctx context.Context, in FAQInput) action.Result[domain.FAQItem] {
	if errs := action.Validate(in); errs != nil {
		return action.Invalid[domain.FAQItem](errs, "Please correct the highlighted fields.")
	}
	courseID, errs := parseCourseID(in.CourseID)
	if errs != nil {
		return action.Invalid[domain.FAQItem](errs, "Please correct the highlighted fields.")
	}
	return createItem(ctx, s.faqRepo, domain.FAQItem{
		CourseID:   courseID,
		Question:   in.Question,
		Answer:     in.Answer,
		OrderIndex: in.OrderIndex,
	}, "FAQ item")
}

func (s *contentService) UpdateFAQ(ctx context.Context, id primitive.ObjectID, in FAQInput) action.Result[domain.FAQItem] {
	if errs := action.Validate(in); errs != nil {
		return action.Invalid[domain.FAQItem](errs, "Please correct the highlighted fields.")
	}
	return updateItem(ctx, s.faqRepo, id, "FAQ item", func(f *domain.FAQItem) {
		f.Question = in.Question
		f.Answer = in.Answer
		f.OrderIndex = in.OrderIndex
	})
}

func (s *contentService) DeleteFAQ(ctx context.Context, id primitive.ObjectID) action.Result[domain.FAQItem] {
	return deleteItem(ctx, s.faqRepo, id, "FAQ item")
}

// --- Benefits ---

func (s *contentService) ListBenefits(ctx context.Context, courseID primitive.ObjectID) ([]domain.Benefit, error) {
	return s.benefitRepo.GetByCourseID(ctx, courseID)
}

func (s *contentService) CreateBenefit(ctx context.Context, in BenefitInput) action.Result[domain.Benefit] {
	if errs := action.Validate(in); errs != nil {
		return action.Invalid[domain.Benefit](errs, "Please correct the highlighted fields.")
	}
	courseID, errs := parseCourseID(in.CourseID)
	if errs != nil {
		return action.Invalid[domain.Benefit](errs, "Please correct the highlighted fields.")
	}
	return createItem(ctx, s.benefitRepo, domain.Benefit{
		CourseID:    courseID,
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		OrderIndex:  in.OrderIndex,
	}, "Benefit")
}

func (s *contentService) UpdateBenefit(ctx context.Context, id primitive.ObjectID, in BenefitInput) action.Result[domain.Benefit] {
	if errs := action.Validate(in); errs != nil {
		return action.Invalid[domain.Benefit](errs, "Please correct the highlighted fields.")
	}
	return updateItem(ctx, s.benefitRepo, id, "Benefit", func(b *domain.Benefit) {
		b.Title = in.Title
		b.Description = in.Description
		b.Icon = in.Icon
		b.OrderIndex = in.OrderIndex
	})
}

func (s *contentService) DeleteBenefit(ctx context.Context, id primitive.ObjectID) action.Result[domain.Benefit] {
	return deleteItem(ctx, s.benefitRepo, id, "Benefit")
}

// --- Testimonials ---

func (s *contentService) ListTestimonials(ctx context.Context, courseID primitive.ObjectID) ([]domain.Testimonial, error) {
	return s.testimonialRepo.GetByCourseID(ctx, courseID)
}

func (s *contentService) CreateTestimonial(ctx context.Context, in TestimonialInput) action.Result[domain.Testimonial] {
	if errs := action.Validate(in); errs != nil {
		return action.Invalid[domain.Testimonial](errs, "Please correct the highlighted fields.")
	}
	courseID, errs := parseCourseID(in.CourseID)
	if errs != nil {
		return action.Invalid[domain.Testimonial](errs, "Please correct the highlighted fields.")
	}
	return createItem(ctx, s.testimonialRepo, domain.Testimonial{
		CourseID:   courseID,
		Author:     in.Author,
		AuthorRole: in.AuthorRole,
		Quote:      in.Quote,
		AvatarURL:  in.AvatarURL,
	}, "Testimonial")
}

func (s *contentService) UpdateTestimonial(ctx context.Context, id primitive.ObjectID, in TestimonialInput) action.Result[domain.Testimonial] {
	if errs := action.Validate(in); errs != nil {
		return action.Invalid[domain.Testimonial](errs, "Please correct the highlighted fields.")
	}
	return updateItem(ctx, s.testimonialRepo, id, "Testimonial", func(t *domain.Testimonial) {
		t.Author = in.Author
		t.AuthorRole = in.AuthorRole
		t.Quote = in.Quote
		t.AvatarURL = in.AvatarURL
	})
}

func (s *contentService) DeleteTestimonial(ctx context.Context, id primitive.ObjectID) action.Result[domain.Testimonial] {
	return deleteItem(ctx, s.testimonialRepo, id, "Testimonial")
}
