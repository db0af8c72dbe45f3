package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/server/models"
)

type recordGradeRequest struct {
	StudentID      string           `json:"student_id"`
	CourseID       string           `json:"course_id"`
	AssignmentName string           `json:"assignment_name"`
	Type           models.GradeType `json:"grade_type"`
	Value          float64          `json:"grade_value"`
	MaxPoints      float64          `json:"max_points"`
	Weight         *float64         `json:"weight"`
	GradeDate      time.Time        `json:"grade_date"`
	Comments       string           `json:"comments"`
	ExtraCredit    bool             `json:"extra_credit"`
}

func (s *Server) recordGrade(c *gin.Context) {
	var req recordGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	grade, err := s.gradeService.Record(c.Request.Context(), &models.Grade{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		AssignmentName: req.AssignmentName,
		Type:           req.Type,
		Value:          req.Value,
		MaxPoints:      req.MaxPoints,
		Weight:         req.Weight,
		GradeDate:      req.GradeDate,
		Comments:       req.Comments,
		ExtraCredit:    req.ExtraCredit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGradeResponse(grade))
}

func (s *Server) getGrade(c *gin.Context) {
	grade, err := s.gradeService.GetByID(c.Request.Context(), c.Param("gradeId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGradeResponse(grade))
}

type updateGradeRequest struct {
	AssignmentName string           `json:"assignment_name"`
	Type           models.GradeType `json:"grade_type"`
	Value          float64          `json:"grade_value"`
	MaxPoints      float64          `json:"max_points"`
	Weight         *float64         `json:"weight"`
	GradeDate      time.Time        `json:"grade_date"`
	Comments       string           `json:"comments"`
	ExtraCredit    bool             `json:"extra_credit"`
	Dropped        bool             `json:"dropped"`
}

func (s *Server) updateGrade(c *gin.Context) {
	var req updateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	grade, err := s.gradeService.GetByID(c.Request.Context(), c.Param("gradeId"))
	if err != nil {
		writeError(c, err)
		return
	}

	grade.AssignmentName = req.AssignmentName
	grade.Type = req.Type
	grade.Value = req.Value
	grade.MaxPoints = req.MaxPoints
	grade.Weight = req.Weight
	grade.GradeDate = req.GradeDate
	grade.Comments = req.Comments
	grade.ExtraCredit = req.ExtraCredit
	grade.Dropped = req.Dropped

	updated, err := s.gradeService.Update(c.Request.Context(), grade)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGradeResponse(updated))
}

func (s *Server) deleteGrade(c *gin.Context) {
	if err := s.gradeService.Delete(c.Request.Context(), c.Param("gradeId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listGrades(c *gin.Context) {
	page, err := s.gradeService.List(c.Request.Context(), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toGradeResponse))
}

func (s *Server) listGradesByStudent(c *gin.Context) {
	page, err := s.gradeService.ListByStudent(c.Request.Context(), c.Param("studentId"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toGradeResponse))
}

func (s *Server) listGradesByStudentAndCourse(c *gin.Context) {
	page, err := s.gradeService.ListByStudentAndCourse(c.Request.Context(),
		c.Param("studentId"), c.Param("courseId"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toGradeResponse))
}

func (s *Server) listGradesByCourse(c *gin.Context) {
	page, err := s.gradeService.ListByCourse(c.Request.Context(), c.Param("courseId"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toGradeResponse))
}

type averageResponse struct {
	StudentID string   `json:"student_id"`
	CourseID  string   `json:"course_id"`
	Average   *float64 `json:"average"`
}

func (s *Server) gradeAverage(c *gin.Context) {
	avg, err := s.gradeService.Average(c.Request.Context(), c.Param("studentId"), c.Param("courseId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, averageResponse{
		StudentID: c.Param("studentId"),
		CourseID:  c.Param("courseId"),
		Average:   avg,
	})
}

func (s *Server) gradeWeightedAverage(c *gin.Context) {
	avg, err := s.gradeService.WeightedAverage(c.Request.Context(), c.Param("studentId"), c.Param("courseId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, averageResponse{
		StudentID: c.Param("studentId"),
		CourseID:  c.Param("courseId"),
		Average:   avg,
	})
}
