package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/services"
)

type createTeacherRequest struct {
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	PhoneNumber    string    `json:"phone_number"`
	EmployeeID     string    `json:"employee_id"`
	Department     string    `json:"department"`
	Specialization string    `json:"specialization"`
	Qualifications string    `json:"qualifications"`
	HireDate       time.Time `json:"hire_date"`
	OfficeLocation string    `json:"office_location"`
	OfficeHours    string    `json:"office_hours"`
}

func (s *Server) createTeacher(c *gin.Context) {
	var req createTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	teacher, err := s.teacherService.Create(c.Request.Context(), services.CreateTeacherRequest{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PhoneNumber:    req.PhoneNumber,
		EmployeeID:     req.EmployeeID,
		Department:     req.Department,
		Specialization: req.Specialization,
		Qualifications: req.Qualifications,
		HireDate:       req.HireDate,
		OfficeLocation: req.OfficeLocation,
		OfficeHours:    req.OfficeHours,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTeacherResponse(teacher))
}

func (s *Server) getTeacher(c *gin.Context) {
	teacher, err := s.teacherService.GetByID(c.Request.Context(), c.Param("teacherId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTeacherResponse(teacher))
}

func (s *Server) getTeacherByEmployeeID(c *gin.Context) {
	teacher, err := s.teacherService.GetByEmployeeID(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTeacherResponse(teacher))
}

type updateTeacherRequest struct {
	Department       string                  `json:"department"`
	Specialization   string                  `json:"specialization"`
	Qualifications   string                  `json:"qualifications"`
	OfficeLocation   string                  `json:"office_location"`
	OfficeHours      string                  `json:"office_hours"`
	EmploymentStatus models.EmploymentStatus `json:"employment_status"`
}

func (s *Server) updateTeacher(c *gin.Context) {
	var req updateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}
	if req.EmploymentStatus != "" {
		if _, err := parseEmploymentStatus(string(req.EmploymentStatus)); err != nil {
			writeError(c, err)
			return
		}
	}

	teacher, err := s.teacherService.GetByID(c.Request.Context(), c.Param("teacherId"))
	if err != nil {
		writeError(c, err)
		return
	}

	teacher.Department = req.Department
	teacher.Specialization = req.Specialization
	teacher.Qualifications = req.Qualifications
	teacher.OfficeLocation = req.OfficeLocation
	teacher.OfficeHours = req.OfficeHours
	if req.EmploymentStatus != "" {
		teacher.EmploymentStatus = req.EmploymentStatus
	}

	updated, err := s.teacherService.Update(c.Request.Context(), teacher)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTeacherResponse(updated))
}

func (s *Server) deactivateTeacher(c *gin.Context) {
	if err := s.teacherService.Deactivate(c.Request.Context(), c.Param("teacherId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listTeachers(c *gin.Context) {
	page, err := s.teacherService.List(c.Request.Context(), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toTeacherResponse))
}

func (s *Server) listTeachersByDepartment(c *gin.Context) {
	page, err := s.teacherService.ListByDepartment(c.Request.Context(), c.Param("department"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toTeacherResponse))
}

func (s *Server) searchTeachers(c *gin.Context) {
	page, err := s.teacherService.Search(c.Request.Context(), c.Query("q"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toTeacherResponse))
}

func parseEmploymentStatus(s string) (models.EmploymentStatus, error) {
	switch status := models.EmploymentStatus(s); status {
	case models.EmploymentStatusActive, models.EmploymentStatusOnLeave,
		models.EmploymentStatusRetired:
		return status, nil
	}
	return "", common.ErrorValidation
}

// getOwnTeacherProfile returns the teacher record linked to the calling
// account.
func (s *Server) getOwnTeacherProfile(c *gin.Context) {
	teacher, err := s.teacherService.GetByUserID(c.Request.Context(), identityFrom(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTeacherResponse(teacher))
}
