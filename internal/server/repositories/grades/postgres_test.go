package grades

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/migrations"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gradeRowColumns = []string{
	"id", "student_id", "course_id", "assignment_name", "grade_type", "grade_value",
	"max_points", "weight", "grade_date", "comments", "extra_credit", "dropped",
	"created_at", "updated_at",
}

func TestPostgresRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO grades`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	grade, err := repo.Create(context.Background(), &models.Grade{
		StudentID:      "s1",
		CourseID:       "c1",
		AssignmentName: "Quiz 1",
		Type:           models.GradeTypeQuiz,
		Value:          92,
		MaxPoints:      100,
		GradeDate:      now,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, grade.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()
	weight := 2.0

	mock.ExpectQuery(`SELECT .* FROM grades g WHERE g.id`).
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows(gradeRowColumns).
			AddRow("g1", "s1", "c1", "Midterm", "MIDTERM", 85.0, 100.0, weight,
				now, "", false, false, now, now))

	grade, err := repo.GetByID(context.Background(), "g1")

	require.NoError(t, err)
	assert.Equal(t, models.GradeTypeMidterm, grade.Type)
	require.NotNil(t, grade.Weight)
	assert.Equal(t, 2.0, *grade.Weight)
}

func TestPostgresRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectExec(`DELETE FROM grades`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresRepository_Average(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT AVG\(grade_value\) FROM grades`).
		WithArgs("s1", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(88.5))

	avg, err := repo.Average(context.Background(), "s1", "c1")

	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 88.5, *avg)
}

func TestPostgresRepository_Average_NoGrades(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT AVG\(grade_value\) FROM grades`).
		WithArgs("s1", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))

	avg, err := repo.Average(context.Background(), "s1", "c1")

	require.NoError(t, err)
	assert.Nil(t, avg)
}

func TestPostgresRepository_WeightedAverage(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT SUM\(grade_value \* COALESCE\(weight, 1\)\)`).
		WithArgs("s1", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(86.25))

	avg, err := repo.WeightedAverage(context.Background(), "s1", "c1")

	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 86.25, *avg)
}

func TestPostgresRepository_ListByStudentAndCourse(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM grades g WHERE`).
		WithArgs("s1", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .* FROM grades g WHERE g.student_id`).
		WithArgs("s1", "c1").
		WillReturnRows(sqlmock.NewRows(gradeRowColumns).
			AddRow("g1", "s1", "c1", "Quiz 1", "QUIZ", 92.0, 100.0, nil,
				now, "", false, false, now, now))

	result, total, err := repo.ListByStudentAndCourse(context.Background(), "s1", "c1", pagex.Params{})

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, result, 1)
	assert.Nil(t, result[0].Weight)
}

func TestGradeColumnsMatchSchema(t *testing.T) {
	schema, err := migrations.Migrations.ReadFile("00004_enrollments_grades.sql")
	require.NoError(t, err)

	idx := strings.Index(string(schema), "CREATE TABLE grades")
	require.GreaterOrEqual(t, idx, 0)
	table := string(schema)[idx:]

	for _, col := range strings.Split(gradeColumns, ",") {
		col = strings.TrimPrefix(strings.TrimSpace(col), "g.")
		assert.Contains(t, table, "\n    "+col+" ", "grades table is missing column %s", col)
	}
}
