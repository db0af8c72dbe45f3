package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/services"
)

type createStudentRequest struct {
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Password         string    `json:"password"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	PhoneNumber      string    `json:"phone_number"`
	Code             string    `json:"student_id"`
	DateOfBirth      time.Time `json:"date_of_birth"`
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergency_contact"`
	EmergencyPhone   string    `json:"emergency_phone"`
	EnrollmentDate   time.Time `json:"enrollment_date"`
}

func (s *Server) createStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	student, err := s.studentService.Create(c.Request.Context(), services.CreateStudentRequest{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PhoneNumber:      req.PhoneNumber,
		Code:             req.Code,
		DateOfBirth:      req.DateOfBirth,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		EnrollmentDate:   req.EnrollmentDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStudentResponse(student))
}

func (s *Server) getStudent(c *gin.Context) {
	student, err := s.studentService.GetByID(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStudentResponse(student))
}

func (s *Server) getStudentByCode(c *gin.Context) {
	student, err := s.studentService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStudentResponse(student))
}

type updateStudentRequest struct {
	DateOfBirth      time.Time             `json:"date_of_birth"`
	Address          string                `json:"address"`
	EmergencyContact string                `json:"emergency_contact"`
	EmergencyPhone   string                `json:"emergency_phone"`
	AcademicStatus   models.AcademicStatus `json:"academic_status"`
}

func (s *Server) updateStudent(c *gin.Context) {
	var req updateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}
	if req.AcademicStatus != "" {
		if _, err := parseAcademicStatus(string(req.AcademicStatus)); err != nil {
			writeError(c, err)
			return
		}
	}

	student, err := s.studentService.GetByID(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		writeError(c, err)
		return
	}

	student.DateOfBirth = req.DateOfBirth
	student.Address = req.Address
	student.EmergencyContact = req.EmergencyContact
	student.EmergencyPhone = req.EmergencyPhone
	if req.AcademicStatus != "" {
		student.AcademicStatus = req.AcademicStatus
	}

	updated, err := s.studentService.Update(c.Request.Context(), student)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStudentResponse(updated))
}

func (s *Server) deactivateStudent(c *gin.Context) {
	if err := s.studentService.Deactivate(c.Request.Context(), c.Param("studentId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listStudents(c *gin.Context) {
	page, err := s.studentService.List(c.Request.Context(), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toStudentResponse))
}

func (s *Server) listStudentsByStatus(c *gin.Context) {
	status, err := parseAcademicStatus(c.Param("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := s.studentService.ListByStatus(c.Request.Context(), status, pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toStudentResponse))
}

func (s *Server) searchStudents(c *gin.Context) {
	page, err := s.studentService.Search(c.Request.Context(), c.Query("q"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toStudentResponse))
}

func parseAcademicStatus(s string) (models.AcademicStatus, error) {
	switch status := models.AcademicStatus(s); status {
	case models.AcademicStatusActive, models.AcademicStatusInactive,
		models.AcademicStatusGraduated, models.AcademicStatusSuspended:
		return status, nil
	}
	return "", common.ErrorValidation
}

// getOwnStudentProfile returns the student record linked to the calling
// account.
func (s *Server) getOwnStudentProfile(c *gin.Context) {
	student, err := s.studentService.GetByUserID(c.Request.Context(), identityFrom(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStudentResponse(student))
}
