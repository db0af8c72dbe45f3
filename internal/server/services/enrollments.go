package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/dbx"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
)

// EnrollmentService enforces the enrollment rules: active student, active
// course with free seats, and no second active enrollment in the same
// course.
type EnrollmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewEnrollmentService(db *sql.DB, m repomanager.RepositoryManager) *EnrollmentService {
	return &EnrollmentService{db: db, repomanager: m}
}

func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
	var enrollment *models.Enrollment

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		student, err := s.repomanager.Students(tx).GetByID(ctx, studentID)
		if err != nil {
			return err
		}
		if student.AcademicStatus != models.AcademicStatusActive {
			return fmt.Errorf("student is not active: %w", common.ErrorValidation)
		}

		course, err := s.repomanager.Courses(tx).GetByID(ctx, courseID)
		if err != nil {
			return err
		}
		if course.Status != models.CourseStatusActive {
			return fmt.Errorf("course is not active: %w", common.ErrorValidation)
		}

		exists, err := s.repomanager.Enrollments(tx).Exists(ctx, studentID, courseID)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		active, err := s.repomanager.Enrollments(tx).CountActiveByCourse(ctx, courseID)
		if err != nil {
			return err
		}
		if active >= course.MaxStudents {
			return fmt.Errorf("course is full: %w", common.ErrorValidation)
		}

		enrollment, err = s.repomanager.Enrollments(tx).Create(ctx, &models.Enrollment{
			StudentID:      studentID,
			CourseID:       courseID,
			EnrollmentDate: time.Now(),
			Status:         models.EnrollmentStatusEnrolled,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, err
	}

	return enrollment, nil
}

func (s *EnrollmentService) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	return s.repomanager.Enrollments(s.db).GetByID(ctx, id)
}

// Complete closes an ENROLLED enrollment with a final grade in [0,100].
// The letter, completion date, and earned credits are derived here.
func (s *EnrollmentService) Complete(ctx context.Context, id string, finalGrade float64) (*models.Enrollment, error) {
	if finalGrade < 0 || finalGrade > 100 {
		return nil, common.ErrorValidation
	}

	var enrollment *models.Enrollment
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		e, err := s.repomanager.Enrollments(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		if e.Status != models.EnrollmentStatusEnrolled {
			return fmt.Errorf("enrollment is not active: %w", common.ErrorValidation)
		}

		course, err := s.repomanager.Courses(tx).GetByID(ctx, e.CourseID)
		if err != nil {
			return err
		}

		now := time.Now()
		e.Status = models.EnrollmentStatusCompleted
		e.CompletionDate = &now
		e.FinalGrade = &finalGrade
		e.GradeLetter = models.LetterForGrade(finalGrade)
		credits := 0
		if finalGrade >= 60 {
			credits = course.Credits
		} else {
			e.Status = models.EnrollmentStatusFailed
		}
		e.CreditsEarned = &credits

		enrollment, err = s.repomanager.Enrollments(tx).Update(ctx, e)
		return err
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Cancel withdraws an active enrollment. Completed enrollments cannot be
// withdrawn.
func (s *EnrollmentService) Cancel(ctx context.Context, id string, notes string) (*models.Enrollment, error) {
	var enrollment *models.Enrollment
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		e, err := s.repomanager.Enrollments(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		if e.Status != models.EnrollmentStatusEnrolled {
			return fmt.Errorf("enrollment is not active: %w", common.ErrorValidation)
		}

		e.Status = models.EnrollmentStatusWithdrawn
		if notes != "" {
			e.Notes = notes
		}
		enrollment, err = s.repomanager.Enrollments(tx).Update(ctx, e)
		return err
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) List(ctx context.Context, params pagex.Params) (pagex.Page[*models.Enrollment], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Enrollments(s.db).List(ctx, params)
	if err != nil {
		return pagex.Page[*models.Enrollment]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *EnrollmentService) ListByStatus(ctx context.Context, status models.EnrollmentStatus, params pagex.Params) (pagex.Page[*models.Enrollment], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Enrollments(s.db).ListByStatus(ctx, status, params)
	if err != nil {
		return pagex.Page[*models.Enrollment]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID string, params pagex.Params) (pagex.Page[*models.Enrollment], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Enrollments(s.db).ListByStudent(ctx, studentID, params)
	if err != nil {
		return pagex.Page[*models.Enrollment]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID string, params pagex.Params) (pagex.Page[*models.Enrollment], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Enrollments(s.db).ListByCourse(ctx, courseID, params)
	if err != nil {
		return pagex.Page[*models.Enrollment]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}
