package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
	"github.com/AshishRanjanPandey/ccrm/internal/service"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
	"github.com/AshishRanjanPandey/ccrm/pkg/response"
)

// EnrollmentHandler exposes the enrollment ledger endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
	transcripts *service.TranscriptService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService, transcripts *service.TranscriptService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, transcripts: transcripts}
}

// List returns the whole ledger, or one student's entries when regNo is set.
func (h *EnrollmentHandler) List(c *gin.Context) {
	if regNo := c.Query("regNo"); regNo != "" {
		response.JSON(c, http.StatusOK, h.enrollments.ListForStudent(regNo))
		return
	}
	response.JSON(c, http.StatusOK, h.enrollments.ListAll())
}

// Enroll registers a student on a course.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	entry, err := h.enrollments.Enroll(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// gradePayload carries the raw letter; translating it into the closed scale
// happens here, not in the ledger.
type gradePayload struct {
	RegNo      string `json:"reg_no"`
	CourseCode string `json:"course_code"`
	Grade      string `json:"grade"`
}

// AssignGrade finalizes an enrollment with a letter grade.
func (h *EnrollmentHandler) AssignGrade(c *gin.Context) {
	var payload gradePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	grade, ok := models.ParseGrade(payload.Grade)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "grade must be one of S, A, B, C, D, E, F"))
		return
	}
	err := h.enrollments.AssignGrade(service.AssignGradeRequest{
		RegNo:      payload.RegNo,
		CourseCode: payload.CourseCode,
		Grade:      grade,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Withdraw removes an enrollment from the ledger.
func (h *EnrollmentHandler) Withdraw(c *gin.Context) {
	if err := h.enrollments.Withdraw(c.Param("regNo"), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Credits reports the student's current enrolled credit total.
func (h *EnrollmentHandler) Credits(c *gin.Context) {
	regNo := c.Param("regNo")
	response.JSON(c, http.StatusOK, gin.H{
		"reg_no":        regNo,
		"total_credits": h.enrollments.StudentTotalCredits(regNo),
	})
}

// GPA reports the student's credit-weighted grade average.
func (h *EnrollmentHandler) GPA(c *gin.Context) {
	regNo := c.Param("regNo")
	response.JSON(c, http.StatusOK, gin.H{
		"reg_no": regNo,
		"gpa":    h.enrollments.CalculateGPA(regNo),
	})
}

// Transcript renders and stores the student's transcript.
func (h *EnrollmentHandler) Transcript(c *gin.Context) {
	format := service.Format(c.DefaultQuery("format", string(service.FormatCSV)))
	result, err := h.transcripts.Generate(c.Param("regNo"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
