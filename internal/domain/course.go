package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is the top-level content aggregate every admin screen hangs off.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"` // unique, used in public URLs
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Chapter groups videos within a course. OrderIndex is the sort position
// within the course.
type Chapter struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID   primitive.ObjectID `bson:"courseId" json:"courseId"`
	Title      string             `bson:"title" json:"title"`
	OrderIndex int                `bson:"orderIndex" json:"orderIndex"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
