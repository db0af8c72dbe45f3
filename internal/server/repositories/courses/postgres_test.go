package courses

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var courseRowColumns = []string{
	"id", "code", "name", "description", "credits", "teacher_id",
	"start_date", "end_date", "schedule", "classroom", "max_students", "status",
	"created_at", "updated_at",
}

func courseRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(courseRowColumns).
		AddRow("c1", "MATH101", "Calculus I", "", 4, "t1",
			now, now, "MWF 09:00", "B-204", 30, "ACTIVE", now, now)
}

func TestPostgresRepository_Create_DuplicateCode(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`INSERT INTO courses`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "courses_code_key"})

	_, err = repo.Create(context.Background(), &models.Course{Code: "MATH101"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestPostgresRepository_Create_UnassignedTeacher(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO courses`).
		WithArgs(sqlmock.AnyArg(), "MATH101", "Calculus I", "", 4, nil,
			sqlmock.AnyArg(), sqlmock.AnyArg(), "", "", 30, "ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	course, err := repo.Create(context.Background(), &models.Course{
		Code:        "MATH101",
		Name:        "Calculus I",
		Credits:     4,
		MaxStudents: 30,
		Status:      models.CourseStatusActive,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT .* FROM courses c WHERE c.code`).
		WithArgs("MATH101").
		WillReturnRows(courseRow(time.Now()))

	course, err := repo.GetByCode(context.Background(), "MATH101")

	require.NoError(t, err)
	assert.Equal(t, "c1", course.ID)
	assert.Equal(t, "t1", course.TeacherID)
}

func TestPostgresRepository_AssignTeacher_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE courses SET teacher_id`).
		WithArgs("missing", "t1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.AssignTeacher(context.Background(), "missing", "t1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresRepository_ListAvailable(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses c WHERE c.status = 'ACTIVE'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .* FROM courses c WHERE c.status = 'ACTIVE'`).
		WillReturnRows(courseRow(time.Now()))

	result, total, err := repo.ListAvailable(context.Background(), pagex.Params{})

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, result, 1)
}
