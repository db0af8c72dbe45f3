package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/server/models"
)

type enrollRequest struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
}

func (s *Server) enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	enrollment, err := s.enrollmentService.Enroll(c.Request.Context(), req.StudentID, req.CourseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEnrollmentResponse(enrollment))
}

func (s *Server) getEnrollment(c *gin.Context) {
	enrollment, err := s.enrollmentService.GetByID(c.Request.Context(), c.Param("enrollmentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEnrollmentResponse(enrollment))
}

type completeEnrollmentRequest struct {
	FinalGrade float64 `json:"final_grade"`
}

func (s *Server) completeEnrollment(c *gin.Context) {
	var req completeEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	enrollment, err := s.enrollmentService.Complete(c.Request.Context(), c.Param("enrollmentId"), req.FinalGrade)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEnrollmentResponse(enrollment))
}

func (s *Server) cancelEnrollment(c *gin.Context) {
	enrollment, err := s.enrollmentService.Cancel(c.Request.Context(), c.Param("enrollmentId"), c.Query("reason"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEnrollmentResponse(enrollment))
}

func (s *Server) listEnrollments(c *gin.Context) {
	page, err := s.enrollmentService.List(c.Request.Context(), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toEnrollmentResponse))
}

func (s *Server) listEnrollmentsByStatus(c *gin.Context) {
	status, err := parseEnrollmentStatus(c.Param("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := s.enrollmentService.ListByStatus(c.Request.Context(), status, pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toEnrollmentResponse))
}

func (s *Server) listEnrollmentsByStudent(c *gin.Context) {
	page, err := s.enrollmentService.ListByStudent(c.Request.Context(), c.Param("studentId"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toEnrollmentResponse))
}

func (s *Server) listEnrollmentsByCourse(c *gin.Context) {
	page, err := s.enrollmentService.ListByCourse(c.Request.Context(), c.Param("courseId"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toEnrollmentResponse))
}

func parseEnrollmentStatus(s string) (models.EnrollmentStatus, error) {
	switch status := models.EnrollmentStatus(s); status {
	case models.EnrollmentStatusEnrolled, models.EnrollmentStatusCompleted,
		models.EnrollmentStatusWithdrawn, models.EnrollmentStatusDropped,
		models.EnrollmentStatusFailed:
		return status, nil
	}
	return "", common.ErrorValidation
}
