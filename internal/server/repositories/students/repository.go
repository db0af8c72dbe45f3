package students

import (
	"context"

	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByCode(ctx context.Context, code string) (*models.Student, error)
	GetByUserID(ctx context.Context, userID string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) (*models.Student, error)
	SetAcademicStatus(ctx context.Context, id string, status models.AcademicStatus) error
	List(ctx context.Context, params pagex.Params) ([]*models.Student, int64, error)
	ListByStatus(ctx context.Context, status models.AcademicStatus, params pagex.Params) ([]*models.Student, int64, error)
	Search(ctx context.Context, term string, params pagex.Params) ([]*models.Student, int64, error)
}
