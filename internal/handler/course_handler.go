package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AshishRanjanPandey/ccrm/internal/service"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
	"github.com/AshishRanjanPandey/ccrm/pkg/response"
)

// CourseHandler exposes course catalog endpoints.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List returns the catalog, optionally filtered by instructor.
func (h *CourseHandler) List(c *gin.Context) {
	if instructor := strings.TrimSpace(c.Query("instructor")); instructor != "" {
		response.JSON(c, http.StatusOK, h.courses.ByInstructor(instructor))
		return
	}
	response.JSON(c, http.StatusOK, h.courses.List())
}

// Get returns a single course by code.
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.Get(c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create adds a course to the catalog.
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	course, err := h.courses.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Deactivate flips the course's one-way active flag.
func (h *CourseHandler) Deactivate(c *gin.Context) {
	if err := h.courses.Deactivate(c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
