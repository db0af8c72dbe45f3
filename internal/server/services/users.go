package services

import (
	"context"
	"database/sql"

	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
)

// UserService exposes account administration: lookups, profile updates, and
// activation toggles. Account creation goes through AuthService.Register.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByUsername(ctx, username)
}

func (s *UserService) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	return s.repomanager.Users(s.db).UpdateProfile(ctx, user)
}

func (s *UserService) Activate(ctx context.Context, id string) error {
	return s.repomanager.Users(s.db).SetActive(ctx, id, true)
}

func (s *UserService) Deactivate(ctx context.Context, id string) error {
	return s.repomanager.Users(s.db).SetActive(ctx, id, false)
}

func (s *UserService) List(ctx context.Context, params pagex.Params) (pagex.Page[*models.User], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Users(s.db).List(ctx, params)
	if err != nil {
		return pagex.Page[*models.User]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *UserService) ListByRole(ctx context.Context, role authz.Role, params pagex.Params) (pagex.Page[*models.User], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Users(s.db).ListByRole(ctx, role, params)
	if err != nil {
		return pagex.Page[*models.User]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}

func (s *UserService) Search(ctx context.Context, term string, params pagex.Params) (pagex.Page[*models.User], error) {
	params = params.Normalize()
	items, total, err := s.repomanager.Users(s.db).Search(ctx, term, params)
	if err != nil {
		return pagex.Page[*models.User]{}, err
	}
	return pagex.NewPage(items, params, total), nil
}
