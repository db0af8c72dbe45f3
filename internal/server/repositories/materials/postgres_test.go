package materials

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var materialRowColumns = []string{
	"id", "course_id", "title", "storage_key", "content_type", "uploaded_by", "created_at",
}

func TestPostgresRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO materials`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	material, err := repo.Create(context.Background(), &models.Material{
		CourseID:    "c1",
		Title:       "Syllabus",
		StorageKey:  "courses/c1/syllabus.pdf",
		ContentType: "application/pdf",
		UploadedBy:  "u1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, material.ID)
	assert.Equal(t, now, material.CreatedAt)
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT .* FROM materials WHERE id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(materialRowColumns))

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresRepository_ListByCourse(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM materials WHERE course_id`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(materialRowColumns).
			AddRow("m1", "c1", "Syllabus", "courses/c1/syllabus.pdf", "application/pdf", "u1", now).
			AddRow("m2", "c1", "Week 1 slides", "courses/c1/week1.pdf", "application/pdf", "u1", now))

	result, err := repo.ListByCourse(context.Background(), "c1")

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Syllabus", result[0].Title)
}
