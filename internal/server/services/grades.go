package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
)

// GradeService records graded items and computes per-course averages.
type GradeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGradeService(db *sql.DB, m repomanager.RepositoryManager) *GradeService {
	return &GradeService{db: db, repomanager: m}
}

func validateGrade(grade *models.Grade) error {
	if grade.StudentID == "" || grade.CourseID == "" || grade.AssignmentName == "" {
		return common.ErrorValidation
	}
	if grade.MaxPoints <= 0 {
		return common.ErrorValidation
	}
	if grade.Value < 0 {
		return common.ErrorValidation
	}
	if !grade.ExtraCredit && grade.Value > grade.MaxPoints {
		return common.ErrorValidation
	}
	if grade.Weight != nil && *grade.Weight <= 0 {
		return common.ErrorValidation
	}
	return nil
}

// Record stores a grade for a student who has an active enrollment in the
// course.
func (s *GradeService) Record(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	if err := validateGrade(grade); err != nil {
		return nil, err
	}

	enrolled, err := s.repomanager.Enrollments(s.db).Exists(ctx, grade.StudentID, grade.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, fmt.Errorf("student is not enrolled in course: %w", common.ErrorValidation)
	}

	if grade.GradeDate.IsZero() {
		grade.GradeDate = time.Now()
	}
	if grade.Type == "" {
		grade.Type = models.GradeTypeOther
	}

	return s.repomanager.Grades(s.db).Create(ctx, grade)
}

func (s *GradeService) GetByID(ctx context.Context, id string) (*models.Grade, error) {
	return s.repomanager.Grades(s.db).GetByID(ctx, id)
}

func (s *GradeService) Update(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	if err := validateGrade(grade); err != nil {
		return nil, err
	}
	return s.repomanager.Grades(s.db).Update(ctx, grade)
}

func (s *GradeService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Grades(s.db).Delete(ctx, id)
}

func (s *GradeService) List(ctx context.Context, params pagex.Params) (pagex.Page[*models.Grade], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Grades(s.db).List(ctx, params)
	if err != nil {
		return pagex.Page[*models.Grade]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *GradeService) ListByStudent(ctx context.Context, studentID string, params pagex.Params) (pagex.Page[*models.Grade], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Grades(s.db).ListByStudent(ctx, studentID, params)
	if err != nil {
		return pagex.Page[*models.Grade]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *GradeService) ListByStudentAndCourse(ctx context.Context, studentID, courseID string, params pagex.Params) (pagex.Page[*models.Grade], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Grades(s.db).ListByStudentAndCourse(ctx, studentID, courseID, params)
	if err != nil {
		return pagex.Page[*models.Grade]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *GradeService) ListByCourse(ctx context.Context, courseID string, params pagex.Params) (pagex.Page[*models.Grade], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Grades(s.db).ListByCourse(ctx, courseID, params)
	if err != nil {
		return pagex.Page[*models.Grade]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

// Average returns the plain mean of the student's non-dropped grades in the
// course; nil when there are none.
func (s *GradeService) Average(ctx context.Context, studentID, courseID string) (*float64, error) {
	return s.repomanager.Grades(s.db).Average(ctx, studentID, courseID)
}

// WeightedAverage weights each non-dropped grade by its weight (default 1).
func (s *GradeService) WeightedAverage(ctx context.Context, studentID, courseID string) (*float64, error) {
	return s.repomanager.Grades(s.db).WeightedAverage(ctx, studentID, courseID)
}
