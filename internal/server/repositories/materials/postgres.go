package materials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/dbx"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/google/uuid"
)

const materialColumns = `id, course_id, title, storage_key, content_type, uploaded_by, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, material *models.Material) (*models.Material, error) {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}

	query := `
		INSERT INTO materials (id, course_id, title, storage_key, content_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		material.ID, material.CourseID, material.Title, material.StorageKey,
		material.ContentType, material.UploadedBy).
		Scan(&material.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return material, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m := &models.Material{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.CourseID, &m.Title, &m.StorageKey, &m.ContentType, &m.UploadedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE course_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Material
	for rows.Next() {
		m := &models.Material{}
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.StorageKey,
			&m.ContentType, &m.UploadedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
