package adminctl

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educagestor/educagestor/internal/server/auth"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
)

func stubPassword(t *testing.T, password string) {
	t.Helper()
	orig := readPassword
	readPassword = func(_ int) ([]byte, error) {
		return []byte(password), nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func TestBootstrap(t *testing.T) {
	stubPassword(t, "s3cret")

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(sqlmock.AnyArg(), "ADMIN").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	in := strings.NewReader("root\nroot@example.com\n")
	var out bytes.Buffer

	user, err := Bootstrap(context.Background(), db, repomanager.NewPostgresRepositoryManager(), in, &out)
	require.NoError(t, err)

	assert.Equal(t, "root", user.Username)
	assert.Equal(t, []authz.Role{authz.RoleAdmin}, user.Roles)
	assert.True(t, user.Active)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "s3cret"))
	assert.Contains(t, out.String(), "Created administrator")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootstrap_MissingInput(t *testing.T) {
	stubPassword(t, "s3cret")

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	in := strings.NewReader("\nroot@example.com\n")
	var out bytes.Buffer

	_, err = Bootstrap(context.Background(), db, repomanager.NewPostgresRepositoryManager(), in, &out)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
