package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/server/models"
)

type createCourseRequest struct {
	Code        string    `json:"course_code"`
	Name        string    `json:"course_name"`
	Description string    `json:"description"`
	Credits     int       `json:"credits"`
	TeacherID   string    `json:"teacher_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Schedule    string    `json:"schedule"`
	Classroom   string    `json:"classroom"`
	MaxStudents int       `json:"max_students"`
}

func (s *Server) createCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	course, err := s.courseService.Create(c.Request.Context(), &models.Course{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Credits:     req.Credits,
		TeacherID:   req.TeacherID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Schedule:    req.Schedule,
		Classroom:   req.Classroom,
		MaxStudents: req.MaxStudents,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCourseResponse(course))
}

func (s *Server) getCourse(c *gin.Context) {
	course, err := s.courseService.GetByID(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponse(course))
}

func (s *Server) getCourseByCode(c *gin.Context) {
	course, err := s.courseService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponse(course))
}

type updateCourseRequest struct {
	Name        string              `json:"course_name"`
	Description string              `json:"description"`
	Credits     int                 `json:"credits"`
	StartDate   time.Time           `json:"start_date"`
	EndDate     time.Time           `json:"end_date"`
	Schedule    string              `json:"schedule"`
	Classroom   string              `json:"classroom"`
	MaxStudents int                 `json:"max_students"`
	Status      models.CourseStatus `json:"status"`
}

func (s *Server) updateCourse(c *gin.Context) {
	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}
	if req.Status != "" {
		if _, err := parseCourseStatus(string(req.Status)); err != nil {
			writeError(c, err)
			return
		}
	}

	course, err := s.courseService.GetByID(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		writeError(c, err)
		return
	}

	course.Name = req.Name
	course.Description = req.Description
	course.Credits = req.Credits
	course.StartDate = req.StartDate
	course.EndDate = req.EndDate
	course.Schedule = req.Schedule
	course.Classroom = req.Classroom
	course.MaxStudents = req.MaxStudents
	if req.Status != "" {
		course.Status = req.Status
	}

	updated, err := s.courseService.Update(c.Request.Context(), course)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponse(updated))
}

func (s *Server) assignTeacher(c *gin.Context) {
	err := s.courseService.AssignTeacher(c.Request.Context(), c.Param("courseId"), c.Param("teacherId"))
	if err != nil {
		writeError(c, err)
		return
	}

	course, err := s.courseService.GetByID(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponse(course))
}

func (s *Server) deactivateCourse(c *gin.Context) {
	if err := s.courseService.Deactivate(c.Request.Context(), c.Param("courseId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listCourses(c *gin.Context) {
	page, err := s.courseService.List(c.Request.Context(), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toCourseResponse))
}

func (s *Server) listCoursesByTeacher(c *gin.Context) {
	page, err := s.courseService.ListByTeacher(c.Request.Context(), c.Param("teacherId"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toCourseResponse))
}

func (s *Server) listCoursesByStatus(c *gin.Context) {
	status, err := parseCourseStatus(c.Param("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := s.courseService.ListByStatus(c.Request.Context(), status, pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toCourseResponse))
}

func (s *Server) listAvailableCourses(c *gin.Context) {
	page, err := s.courseService.ListAvailable(c.Request.Context(), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toCourseResponse))
}

func (s *Server) searchCourses(c *gin.Context) {
	page, err := s.courseService.Search(c.Request.Context(), c.Query("q"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toCourseResponse))
}

func parseCourseStatus(s string) (models.CourseStatus, error) {
	switch status := models.CourseStatus(s); status {
	case models.CourseStatusActive, models.CourseStatusInactive,
		models.CourseStatusCompleted, models.CourseStatusCancelled:
		return status, nil
	}
	return "", common.ErrorValidation
}
