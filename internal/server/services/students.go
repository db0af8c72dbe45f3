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

// CreateStudentRequest carries the account and profile fields needed to
// register a student in one step.
type CreateStudentRequest struct {
	Username         string
	Email            string
	Password         string
	FirstName        string
	LastName         string
	PhoneNumber      string
	Code             string
	DateOfBirth      time.Time
	Address          string
	EmergencyContact string
	EmergencyPhone   string
	EnrollmentDate   time.Time
}

// StudentService manages student profiles. Creating a student also creates
// the linked user account with the STUDENT role; both rows are written in
// one transaction.
type StudentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStudentService(db *sql.DB, m repomanager.RepositoryManager) *StudentService {
	return &StudentService{db: db, repomanager: m}
}

func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if req.Username == "" || req.Password == "" || req.Email == "" || req.Code == "" {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	enrollmentDate := req.EnrollmentDate
	if enrollmentDate.IsZero() {
		enrollmentDate = time.Now()
	}

	var student *models.Student
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PhoneNumber:  req.PhoneNumber,
			Roles:        []authz.Role{authz.RoleStudent},
			Active:       true,
		})
		if err != nil {
			return err
		}

		student, err = s.repomanager.Students(tx).Create(ctx, &models.Student{
			Code:             req.Code,
			UserID:           user.ID,
			DateOfBirth:      req.DateOfBirth,
			Address:          req.Address,
			EmergencyContact: req.EmergencyContact,
			EmergencyPhone:   req.EmergencyPhone,
			EnrollmentDate:   enrollmentDate,
			AcademicStatus:   models.AcademicStatusActive,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	return student, nil
}

func (s *StudentService) GetByID(ctx context.Context, id string) (*models.Student, error) {
	return s.repomanager.Students(s.db).GetByID(ctx, id)
}

func (s *StudentService) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	return s.repomanager.Students(s.db).GetByCode(ctx, code)
}

func (s *StudentService) GetByUserID(ctx context.Context, userID string) (*models.Student, error) {
	return s.repomanager.Students(s.db).GetByUserID(ctx, userID)
}

func (s *StudentService) Update(ctx context.Context, student *models.Student) (*models.Student, error) {
	return s.repomanager.Students(s.db).Update(ctx, student)
}

// Deactivate marks the profile inactive and disables the linked login.
// Rows are kept; nothing is removed.
func (s *StudentService) Deactivate(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		student, err := s.repomanager.Students(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repomanager.Students(tx).SetAcademicStatus(ctx, id, models.AcademicStatusInactive); err != nil {
			return err
		}
		return s.repomanager.Users(tx).SetActive(ctx, student.UserID, false)
	})
}

func (s *StudentService) List(ctx context.Context, params pagex.Params) (pagex.Page[*models.Student], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Students(s.db).List(ctx, params)
	if err != nil {
		return pagex.Page[*models.Student]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *StudentService) ListByStatus(ctx context.Context, status models.AcademicStatus, params pagex.Params) (pagex.Page[*models.Student], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Students(s.db).ListByStatus(ctx, status, params)
	if err != nil {
		return pagex.Page[*models.Student]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *StudentService) Search(ctx context.Context, term string, params pagex.Params) (pagex.Page[*models.Student], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Students(s.db).Search(ctx, term, params)
	if err != nil {
		return pagex.Page[*models.Student]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}
