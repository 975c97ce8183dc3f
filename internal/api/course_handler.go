package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coursehub/admin-api/internal/service"
)

// CourseHandler drives course and chapter management.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListCourses handles GET /api/admin/courses.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	listResponse(c, courses, err, "courses")
}

// GetCourse handles GET /api/admin/courses/:courseId.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			abortWithError(c, http.StatusNotFound, "Course not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load course.")
		return
	}
	c.JSON(http.StatusOK, course)
}

// CreateCourse handles POST /api/admin/courses. A successful result carries
// the redirect target for the new course's admin page.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	in, ok := bindInput[service.CourseInput](c)
	if !ok {
		return
	}
	respond(c, true, h.courseService.Create(c.Request.Context(), in))
}

// UpdateCourse handles PUT /api/admin/courses/:courseId.
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	in, ok := bindInput[service.CourseInput](c)
	if !ok {
		return
	}
	respond(c, false, h.courseService.Update(c.Request.Context(), id, in))
}

// DeleteCourse handles DELETE /api/admin/courses/:courseId.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	respond(c, false, h.courseService.Delete(c.Request.Context(), id))
}

// ListChapters handles GET /api/admin/courses/:courseId/chapters.
func (h *CourseHandler) ListChapters(c *gin.Context) {
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}
	chapters, err := h.courseService.ListChapters(c.Request.Context(), courseID)
	listResponse(c, chapters, err, "chapters")
}

// CreateChapter handles POST /api/admin/chapters.
func (h *CourseHandler) CreateChapter(c *gin.Context) {
	in, ok := bindInput[service.ChapterInput](c)
	if !ok {
		return
	}
	respond(c, true, h.courseService.CreateChapter(c.Request.Context(), in))
}

// UpdateChapter handles PUT /api/admin/chapters/:id.
func (h *CourseHandler) UpdateChapter(c *gin.Context) {
	id, ok := entityID(c)
	if !ok {
		return
	}
	in, ok := bindInput[service.ChapterInput](c)
	if !ok {
		return
	}
	respond(c, false, h.courseService.UpdateChapter(c.Request.Context(), id, in))
}

// DeleteChapter handles DELETE /api/admin/chapters/:id.
func (h *CourseHandler) DeleteChapter(c *gin.Context) {
	id, ok := entityID(c)
	if !ok {
		return
	}
	respond(c, false, h.courseService.DeleteChapter(c.Request.Context(), id))
}
