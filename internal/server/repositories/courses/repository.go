package courses

import (
	"context"

	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, course *models.Course) (*models.Course, error)
	AssignTeacher(ctx context.Context, courseID, teacherID string) error
	SetStatus(ctx context.Context, id string, status models.CourseStatus) error
	List(ctx context.Context, params pagex.Params) ([]*models.Course, int64, error)
	ListByTeacher(ctx context.Context, teacherID string, params pagex.Params) ([]*models.Course, int64, error)
	ListByStatus(ctx context.Context, status models.CourseStatus, params pagex.Params) ([]*models.Course, int64, error)
	// ListAvailable returns active courses that still have open seats.
	ListAvailable(ctx context.Context, params pagex.Params) ([]*models.Course, int64, error)
	Search(ctx context.Context, term string, params pagex.Params) ([]*models.Course, int64, error)
}
