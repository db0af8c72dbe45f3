package enrollments

import (
	"context"

	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error)
	GetByID(ctx context.Context, id string) (*models.Enrollment, error)
	// Exists reports whether the student has any non-withdrawn enrollment
	// in the course.
	Exists(ctx context.Context, studentID, courseID string) (bool, error)
	// CountActiveByCourse counts ENROLLED rows for capacity checks.
	CountActiveByCourse(ctx context.Context, courseID string) (int, error)
	Update(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error)
	List(ctx context.Context, params pagex.Params) ([]*models.Enrollment, int64, error)
	ListByStudent(ctx context.Context, studentID string, params pagex.Params) ([]*models.Enrollment, int64, error)
	ListByCourse(ctx context.Context, courseID string, params pagex.Params) ([]*models.Enrollment, int64, error)
	ListByStatus(ctx context.Context, status models.EnrollmentStatus, params pagex.Params) ([]*models.Enrollment, int64, error)
}
