package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The content entities below all follow the same shape: a server-assigned id,
// an owning course, a handful of independently validated text fields, and an
// order index. The admin UI manages each of them through the same
// create/update/delete triple, so they share one repository implementation
// (see repository/mongo.contentRepository).

// FAQItem is one question/answer pair on a course landing page.
type FAQItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID   primitive.ObjectID `bson:"courseId" json:"courseId"`
	Question   string             `bson:"question" json:"question"`
	Answer     string             `bson:"answer" json:"answer"`
	OrderIndex int                `bson:"orderIndex" json:"orderIndex"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Benefit is one "what you get" bullet on a course landing page.
type Benefit struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID    primitive.ObjectID `bson:"courseId" json:"courseId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
	OrderIndex  int                `bson:"orderIndex" json:"orderIndex"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Testimonial is a quote with attribution shown on a course landing page.
type Testimonial struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID   primitive.ObjectID `bson:"courseId" json:"courseId"`
	Author     string             `bson:"author" json:"author"`
	AuthorRole string             `bson:"authorRole,omitempty" json:"authorRole,omitempty"`
	Quote      string             `bson:"quote" json:"quote"`
	AvatarURL  string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SetID / GetID implementations satisfy the Identifiable constraint used by
// the generic content repository and the list synchronizer.

func (f FAQItem) GetID() primitive.ObjectID     { return f.ID }
func (b Benefit) GetID() primitive.ObjectID     { return b.ID }
func (t Testimonial) GetID() primitive.ObjectID { return t.ID }

func (f *FAQItem) SetID(id primitive.ObjectID)     { f.ID = id }
func (b *Benefit) SetID(id primitive.ObjectID)     { b.ID = id }
func (t *Testimonial) SetID(id primitive.ObjectID) { t.ID = id }

func (f FAQItem) GetOrderIndex() int { return f.OrderIndex }
func (b Benefit) GetOrderIndex() int { return b.OrderIndex }
func (t Testimonial) GetOrderIndex() int { return 0 } // testimonials render in insertion order

// Touch stamps the audit timestamps: CreatedAt only on first persist.

func (f *FAQItem) Touch(now time.Time) {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
}

func (b *Benefit) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func (t *Testimonial) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
