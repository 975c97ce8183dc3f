package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"coursehub/admin-api/internal/action"
	"coursehub/admin-api/internal/service"
)

// ContentHandler drives the list-managed content entities (FAQ items,
// benefits, testimonials). Every write response is a serialized action
// result: the admin list views reconcile their in-memory state from it
// without refetching.
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// bindInput decodes the JSON body into the entity's input schema. Malformed
// JSON is a request error; field-level problems are left for the schema
// validator so they come back keyed per field.
func bindInput[I any](c *gin.Context) (I, bool) {
	var in I
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body.")
		return in, false
	}
	return in, true
}

// entityID parses the :id route parameter.
func entityID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid id.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// courseIDParam parses the :courseId route parameter.
func courseIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("courseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid course id.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// respond writes an action result. The HTTP status tracks the result shape
// so plain API clients behave sensibly, but list-view callers branch only on
// the kind discriminant.
func respond[T any](c *gin.Context, created bool, res action.Result[T]) {
	status := http.StatusOK
	switch {
	case res.IsOK() && created:
		status = http.StatusCreated
	case res.NotFound:
		status = http.StatusNotFound
	case !res.IsOK() && res.Errors != nil:
		status = http.StatusUnprocessableEntity
	case !res.IsOK():
		status = http.StatusInternalServerError
	}
	c.JSON(status, res)
}

// listResponse normalizes a possibly-nil slice for JSON.
func listResponse[T any](c *gin.Context, items []T, err error, label string) {
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list "+label+".")
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

// --- FAQ items ---

func (h *ContentHandler) ListFAQs(c *gin.Context) {
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}
	items, err := h.contentService.ListFAQs(c.Request.Context(), courseID)
	listResponse(c, items, err, "FAQ items")
}

func (h *ContentHandler) CreateFAQ(c *gin.Context) {
	in, ok := bindInput[service.FAQInput](c)
	if !ok {
		return
	}
	respond(c, true, h.contentService.CreateFAQ(c.Request.Context(), in))
}

func (h *ContentHandler) UpdateFAQ(c *gin.Context) {
	id, ok := entityID(c)
	if !ok {
		return
	}
	in, ok := bindInput[service.FAQInput](c)
	if !ok {
		return
	}
	respond(c, false, h.contentService.UpdateFAQ(c.Request.Context(), id, in))
}

func (h *ContentHandler) DeleteFAQ(c *gin.Context) {
	id, ok := entityID(c)
	if !ok {
		return
	}
	respond(c, false, h.contentService.DeleteFAQ(c.Request.Context(), id))
}

// --- Benefits ---

func (h *ContentHandler) ListBenefits(c *gin.Context) {
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}
	items, err := h.contentService.ListBenefits(c.Request.Context(), courseID)
	listResponse(c, items, err, "benefits")
}

func (h *ContentHandler) CreateBenefit(c *gin.Context) {
	in, ok := bindInput[service.BenefitInput](c)
	if !ok {
		return
	}
	respond(c, true, h.contentService.CreateBenefit(c.Request.Context(), in))
}

func (h *ContentHandler) UpdateBenefit(c *gin.Context) {
	id, ok := entityID(c)
	if !ok {
		return
	}
	in, ok := bindInput[service.BenefitInput](c)
	if !ok {
		return
	}
	respond(c, false, h.contentService.UpdateBenefit(c.Request.Context(), id, in))
}

func (h *ContentHandler) DeleteBenefit(c *gin.Context) {
	id, ok := entityID(c)
	if !ok {
		return
	}
	respond(c, false, h.contentService.DeleteBenefit(c.Request.Context(), id))
}

// --- Testimonials ---

func (h *ContentHandler) ListTestimonials(c *gin.Context) {
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}
	items, err := h.contentService.ListTestimonials(c.Request.Context(), courseID)
	listResponse(c, items, err, "testimonials")
}

func (h *ContentHandler) CreateTestimonial(c *gin.Context) {
	in, ok := bindInput[service.TestimonialInput](c)
	if !ok {
		return
	}
	respond(c, true, h.contentService.CreateTestimonial(c.Request.Context(), in))
}

func (h *ContentHandler) UpdateTestimonial(c *gin.Context) {
	id, ok := entityID(c)
	if !ok {
		return
	}
	in, ok := bindInput[service.TestimonialInput](c)
	if !ok {
		return
	}
	respond(c, false, h.contentService.UpdateTestimonial(c.Request.Context(), id, in))
}

func (h *ContentHandler) DeleteTestimonial(c *gin.Context) {
	id, ok := entityID(c)
	if !ok {
		return
	}
	respond(c, false, h.contentService.DeleteTestimonial(c.Request.Context(), id))
}
