package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avellar-lune/academy-records/internal/models"
	"github.com/avellar-lune/academy-records/internal/service"
	appErrors "github.com/avellar-lune/academy-records/pkg/errors"
	"github.com/avellar-lune/academy-records/pkg/response"
)

// GradeHandler exposes grade endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// List returns grade entries, optionally filtered by student or course.
func (h *GradeHandler) List(c *gin.Context) {
	var filter models.GradeFilter
	studentID, err := queryID(c, "student_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	courseID, err := queryID(c, "course_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter.StudentID = studentID
	filter.CourseID = courseID

	grades, err := h.grades.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades)
}

// Create records a grade for an enrollment.
func (h *GradeHandler) Create(c *gin.Context) {
	var req service.AssignGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grade, err := h.grades.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, grade)
}
