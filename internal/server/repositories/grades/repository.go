package grades

import (
	"context"

	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, grade *models.Grade) (*models.Grade, error)
	GetByID(ctx context.Context, id string) (*models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) (*models.Grade, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params pagex.Params) ([]*models.Grade, int64, error)
	ListByStudent(ctx context.Context, studentID string, params pagex.Params) ([]*models.Grade, int64, error)
	ListByStudentAndCourse(ctx context.Context, studentID, courseID string, params pagex.Params) ([]*models.Grade, int64, error)
	ListByCourse(ctx context.Context, courseID string, params pagex.Params) ([]*models.Grade, int64, error)
	// Average is the plain mean of non-dropped grade values; nil when the
	// student has no grades in the course.
	Average(ctx context.Context, studentID, courseID string) (*float64, error)
	// WeightedAverage weights each non-dropped grade by its weight,
	// defaulting missing weights to 1.
	WeightedAverage(ctx context.Context, studentID, courseID string) (*float64, error)
}
