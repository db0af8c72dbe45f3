package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/dbx"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// userColumns is the select list shared by all read queries. Roles are
// aggregated into one comma-separated column so the row scans with plain
// database/sql.
const userColumns = `
	u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
	u.phone_number, u.active, u.created_at, u.updated_at,
	COALESCE(string_agg(r.role, ',' ORDER BY r.role), '') AS roles`

const userFrom = `
	FROM users u
	LEFT JOIN user_roles r ON r.user_id = u.id`

const userGroupBy = ` GROUP BY u.id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var roles string
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.PhoneNumber, &user.Active,
		&user.CreatedAt, &user.UpdatedAt, &roles)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.Roles = splitRoles(roles)
	return user, nil
}

func splitRoles(s string) []authz.Role {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	roles := make([]authz.Role, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, authz.Role(p))
	}
	return roles
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create inserts the user row and its role rows. Callers that need
// atomicity run it inside dbx.WithTx.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, phone_number, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.PhoneNumber, user.Active).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, role := range user.Roles {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
			user.ID, string(role)); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT` + userColumns + userFrom + ` WHERE u.id = $1` + userGroupBy
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT` + userColumns + userFrom + ` WHERE u.username = $1` + userGroupBy
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

// UpdateProfile updates the mutable profile fields; credentials, roles and
// the active flag are managed elsewhere.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, phone_number = $5, updated_at = $6
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.PhoneNumber, time.Now()).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE users SET active = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

var userSortColumns = map[string]string{
	"username":   "u.username",
	"email":      "u.email",
	"created_at": "u.created_at",
}

func (r *PostgresRepository) List(ctx context.Context, params pagex.Params) ([]*models.User, int64, error) {
	return r.list(ctx, ``, nil, params)
}

func (r *PostgresRepository) ListByRole(ctx context.Context, role authz.Role, params pagex.Params) ([]*models.User, int64, error) {
	where := ` WHERE u.id IN (SELECT user_id FROM user_roles WHERE role = $1)`
	return r.list(ctx, where, []any{string(role)}, params)
}

func (r *PostgresRepository) Search(ctx context.Context, term string, params pagex.Params) ([]*models.User, int64, error) {
	where := ` WHERE u.username ILIKE $1 OR u.email ILIKE $1 OR u.first_name ILIKE $1 OR u.last_name ILIKE $1`
	return r.list(ctx, where, []any{"%" + term + "%"}, params)
}

func (r *PostgresRepository) list(ctx context.Context, where string, args []any, params pagex.Params) ([]*models.User, int64, error) {
	countQuery := `SELECT COUNT(*) FROM users u` + where
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(`SELECT%s%s%s%s ORDER BY %s LIMIT %d OFFSET %d`,
		userColumns, userFrom, where, userGroupBy,
		params.OrderBy(userSortColumns, "u.created_at"), params.Limit(), params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		var roles string
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.FirstName, &user.LastName, &user.PhoneNumber, &user.Active,
			&user.CreatedAt, &user.UpdatedAt, &roles); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		user.Roles = splitRoles(roles)
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}
