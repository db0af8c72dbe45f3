package teachers

import (
	"context"

	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error)
	GetByID(ctx context.Context, id string) (*models.Teacher, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID string) (*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error)
	SetEmploymentStatus(ctx context.Context, id string, status models.EmploymentStatus) error
	List(ctx context.Context, params pagex.Params) ([]*models.Teacher, int64, error)
	ListByDepartment(ctx context.Context, department string, params pagex.Params) ([]*models.Teacher, int64, error)
	Search(ctx context.Context, term string, params pagex.Params) ([]*models.Teacher, int64, error)
}
