// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login, and issuing/refreshing
// stateless JWT pairs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/dbx"
	"github.com/educagestor/educagestor/internal/server/auth"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/config"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/ratelimit"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
// Both are self-contained JWTs; nothing is stored server-side.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Session is the result of a successful login, registration, or refresh:
// a fresh token pair plus a snapshot of the account it belongs to.
type Session struct {
	User   *models.User
	Tokens TokenPair
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Roles       []authz.Role
}

// AuthService provides authentication-related operations:
//   - Register: create accounts with at least one role
//   - Login: verify credentials and mint token pairs
//   - Refresh: mint a new pair from a valid refresh token
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
	limiter     ratelimit.Limiter
	rateLimit   int
	rateWindow  time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec, limiter ratelimit.Limiter, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		codec:       codec,
		limiter:     limiter,
		rateLimit:   cfg.LoginRateLimit,
		rateWindow:  cfg.LoginRateWindow,
	}
}

// Register creates a new account and logs it in. The username and email
// must be unused and at least one valid role must be supplied. The user row
// and its role rows are written in one transaction.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return nil, common.ErrorValidation
	}
	if len(req.Roles) == 0 {
		return nil, common.ErrorNoRolesSpecified
	}
	roles := make([]authz.Role, 0, len(req.Roles))
	for _, role := range req.Roles {
		parsed, err := authz.ParseRole(string(role))
		if err != nil {
			return nil, common.ErrorValidation
		}
		roles = append(roles, parsed)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Roles:        roles,
		Active:       true,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		return nil
	}); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.newSession(user)
}

// Login verifies the username/password pair and returns a fresh token pair.
// Failures are collapsed to ErrorUnauthorized so responses do not reveal
// whether the username exists, the password was wrong, or the account is
// deactivated. Attempts are throttled per username.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	decision, err := s.limiter.Allow(ctx, "login:"+username, s.rateLimit, s.rateWindow)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !decision.Allowed {
		return nil, common.ErrTooManyRequests
	}

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !user.Active {
		return nil, common.ErrorUnauthorized
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return s.newSession(user)
}

// Refresh validates a refresh token and mints a new pair for its subject.
// The old refresh token is not revoked; it stays usable until its own
// expiry. A token of the wrong kind, a tampered token, or one for a
// since-deactivated account yields ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	subject, err := s.codec.Verify(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		return nil, common.ErrInvalidRefreshToken
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidRefreshToken
		}
		return nil, common.ErrorInternal
	}
	if !user.Active {
		return nil, common.ErrInvalidRefreshToken
	}

	return s.newSession(user)
}

func (s *AuthService) newSession(user *models.User) (*Session, error) {
	access, err := s.codec.Issue(user.ID, auth.TokenKindAccess)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.codec.Issue(user.ID, auth.TokenKindRefresh)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{
		User:   user,
		Tokens: TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}
