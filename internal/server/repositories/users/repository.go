// Package users provides persistence for principal accounts.
package users

import (
	"context"

	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) (*models.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, params pagex.Params) ([]*models.User, int64, error)
	ListByRole(ctx context.Context, role authz.Role, params pagex.Params) ([]*models.User, int64, error)
	Search(ctx context.Context, term string, params pagex.Params) ([]*models.User, int64, error)
}
