package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
)

// CourseService manages the course catalog.
type CourseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCourseService(db *sql.DB, m repomanager.RepositoryManager) *CourseService {
	return &CourseService{db: db, repomanager: m}
}

func (s *CourseService) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := validateCourse(course); err != nil {
		return nil, err
	}
	if course.TeacherID != "" {
		if _, err := s.repomanager.Teachers(s.db).GetByID(ctx, course.TeacherID); err != nil {
			return nil, err
		}
	}
	if course.Status == "" {
		course.Status = models.CourseStatusActive
	}
	return s.repomanager.Courses(s.db).Create(ctx, course)
}

func (s *CourseService) GetByID(ctx context.Context, id string) (*models.Course, error) {
	return s.repomanager.Courses(s.db).GetByID(ctx, id)
}

func (s *CourseService) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return s.repomanager.Courses(s.db).GetByCode(ctx, code)
}

func (s *CourseService) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := validateCourse(course); err != nil {
		return nil, err
	}
	return s.repomanager.Courses(s.db).Update(ctx, course)
}

func validateCourse(course *models.Course) error {
	if course.Code == "" || course.Name == "" || course.MaxStudents < 1 {
		return common.ErrorValidation
	}
	if course.Credits < 1 || course.Credits > 10 {
		return common.ErrorValidation
	}
	if !course.StartDate.IsZero() && !course.EndDate.IsZero() && course.EndDate.Before(course.StartDate) {
		return common.ErrorValidation
	}
	return nil
}

// AssignTeacher links the teacher to the course after checking the teacher
// exists and is active staff.
func (s *CourseService) AssignTeacher(ctx context.Context, courseID, teacherID string) error {
	teacher, err := s.repomanager.Teachers(s.db).GetByID(ctx, teacherID)
	if err != nil {
		return err
	}
	if teacher.EmploymentStatus != models.EmploymentStatusActive {
		return fmt.Errorf("teacher is not active staff: %w", common.ErrorValidation)
	}
	return s.repomanager.Courses(s.db).AssignTeacher(ctx, courseID, teacherID)
}

func (s *CourseService) SetStatus(ctx context.Context, id string, status models.CourseStatus) error {
	switch status {
	case models.CourseStatusActive, models.CourseStatusInactive,
		models.CourseStatusCompleted, models.CourseStatusCancelled:
	default:
		return common.ErrorValidation
	}
	return s.repomanager.Courses(s.db).SetStatus(ctx, id, status)
}

// Deactivate is a soft delete; enrollments and grades keep their history.
func (s *CourseService) Deactivate(ctx context.Context, id string) error {
	err := s.repomanager.Courses(s.db).SetStatus(ctx, id, models.CourseStatusInactive)
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return err
}

func (s *CourseService) List(ctx context.Context, params pagex.Params) (pagex.Page[*models.Course], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Courses(s.db).List(ctx, params)
	if err != nil {
		return pagex.Page[*models.Course]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *CourseService) ListByTeacher(ctx context.Context, teacherID string, params pagex.Params) (pagex.Page[*models.Course], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Courses(s.db).ListByTeacher(ctx, teacherID, params)
	if err != nil {
		return pagex.Page[*models.Course]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *CourseService) ListByStatus(ctx context.Context, status models.CourseStatus, params pagex.Params) (pagex.Page[*models.Course], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Courses(s.db).ListByStatus(ctx, status, params)
	if err != nil {
		return pagex.Page[*models.Course]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *CourseService) ListAvailable(ctx context.Context, params pagex.Params) (pagex.Page[*models.Course], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Courses(s.db).ListAvailable(ctx, params)
	if err != nil {
		return pagex.Page[*models.Course]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *CourseService) Search(ctx context.Context, term string, params pagex.Params) (pagex.Page[*models.Course], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Courses(s.db).Search(ctx, term, params)
	if err != nil {
		return pagex.Page[*models.Course]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}
