package materials

import (
	"context"

	"github.com/educagestor/educagestor/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, material *models.Material) (*models.Material, error)
	GetByID(ctx context.Context, id string) (*models.Material, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Material, error)
	Delete(ctx context.Context, id string) error
}
