package users

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name",
	"phone_number", "active", "created_at", "updated_at", "roles",
}

func TestPostgresRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "jdoe", "jdoe@example.com", "hash", "John", "Doe", "555-0101", true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(sqlmock.AnyArg(), "STUDENT").
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := repo.Create(context.Background(), &models.User{
		Username:     "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: "hash",
		FirstName:    "John",
		LastName:     "Doe",
		PhoneNumber:  "555-0101",
		Active:       true,
		Roles:        []authz.Role{authz.RoleStudent},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Create_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err = repo.Create(context.Background(), &models.User{Username: "jdoe"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestPostgresRepository_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM users u`).
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "jdoe", "jdoe@example.com", "hash", "John", "Doe",
				"", true, now, now, "ADMIN,STUDENT"))

	user, err := repo.GetByUsername(context.Background(), "jdoe")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, []authz.Role{authz.RoleAdmin, authz.RoleStudent}, user.Roles)
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT .* FROM users u`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresRepository_GetByUsername_NoRoles(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM users u`).
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "jdoe", "jdoe@example.com", "hash", "John", "Doe",
				"", true, now, now, ""))

	user, err := repo.GetByUsername(context.Background(), "jdoe")

	require.NoError(t, err)
	assert.Empty(t, user.Roles)
}

func TestPostgresRepository_ExistsByUsername(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	found, err := repo.ExistsByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestPostgresRepository_SetActive_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE users SET active`).
		WithArgs("missing", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SetActive(context.Background(), "missing", false)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users u`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT .* FROM users u`).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "a", "a@example.com", "h", "A", "A", "", true, now, now, "STUDENT").
			AddRow("u2", "b", "b@example.com", "h", "B", "B", "", true, now, now, "TEACHER"))

	result, total, err := repo.List(context.Background(), pagex.Params{Page: 1, Size: 20})

	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, result, 2)
	assert.Equal(t, "u1", result[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListByRole(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users u WHERE`).
		WithArgs("TEACHER").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .* FROM users u`).
		WithArgs("TEACHER").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u2", "b", "b@example.com", "h", "B", "B", "", true, now, now, "TEACHER"))

	result, total, err := repo.ListByRole(context.Background(), authz.RoleTeacher, pagex.Params{})

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, result, 1)
	assert.Equal(t, []authz.Role{authz.RoleTeacher}, result[0].Roles)
}
