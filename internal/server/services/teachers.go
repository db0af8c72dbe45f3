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
	"github.com/educagestor/educagestor/internal/server/auth"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
)

// CreateTeacherRequest carries the account and profile fields needed to
// register a teacher in one step.
type CreateTeacherRequest struct {
	Username       string
	Email          string
	Password       string
	FirstName      string
	LastName       string
	PhoneNumber    string
	EmployeeID     string
	Department     string
	Specialization string
	Qualifications string
	HireDate       time.Time
	OfficeLocation string
	OfficeHours    string
}

// TeacherService manages teacher profiles. Creating a teacher also creates
// the linked user account with the TEACHER role in one transaction.
type TeacherService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTeacherService(db *sql.DB, m repomanager.RepositoryManager) *TeacherService {
	return &TeacherService{db: db, repomanager: m}
}

func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if req.Username == "" || req.Password == "" || req.Email == "" || req.EmployeeID == "" {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	hireDate := req.HireDate
	if hireDate.IsZero() {
		hireDate = time.Now()
	}

	var teacher *models.Teacher
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PhoneNumber:  req.PhoneNumber,
			Roles:        []authz.Role{authz.RoleTeacher},
			Active:       true,
		})
		if err != nil {
			return err
		}

		teacher, err = s.repomanager.Teachers(tx).Create(ctx, &models.Teacher{
			EmployeeID:       req.EmployeeID,
			UserID:           user.ID,
			Department:       req.Department,
			Specialization:   req.Specialization,
			Qualifications:   req.Qualifications,
			HireDate:         hireDate,
			OfficeLocation:   req.OfficeLocation,
			OfficeHours:      req.OfficeHours,
			EmploymentStatus: models.EmploymentStatusActive,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating teacher: %w", err)
	}

	return teacher, nil
}

func (s *TeacherService) GetByID(ctx context.Context, id string) (*models.Teacher, error) {
	return s.repomanager.Teachers(s.db).GetByID(ctx, id)
}

func (s *TeacherService) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error) {
	return s.repomanager.Teachers(s.db).GetByEmployeeID(ctx, employeeID)
}

func (s *TeacherService) GetByUserID(ctx context.Context, userID string) (*models.Teacher, error) {
	return s.repomanager.Teachers(s.db).GetByUserID(ctx, userID)
}

func (s *TeacherService) Update(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error) {
	return s.repomanager.Teachers(s.db).Update(ctx, teacher)
}

// Deactivate retires the profile and disables the linked login.
func (s *TeacherService) Deactivate(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		teacher, err := s.repomanager.Teachers(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repomanager.Teachers(tx).SetEmploymentStatus(ctx, id, models.EmploymentStatusRetired); err != nil {
			return err
		}
		return s.repomanager.Users(tx).SetActive(ctx, teacher.UserID, false)
	})
}

func (s *TeacherService) List(ctx context.Context, params pagex.Params) (pagex.Page[*models.Teacher], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Teachers(s.db).List(ctx, params)
	if err != nil {
		return pagex.Page[*models.Teacher]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *TeacherService) ListByDepartment(ctx context.Context, department string, params pagex.Params) (pagex.Page[*models.Teacher], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Teachers(s.db).ListByDepartment(ctx, department, params)
	if err != nil {
		return pagex.Page[*models.Teacher]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *TeacherService) Search(ctx context.Context, term string, params pagex.Params) (pagex.Page[*models.Teacher], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Teachers(s.db).Search(ctx, term, params)
	if err != nil {
		return pagex.Page[*models.Teacher]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}
