package enrollments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/dbx"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const enrollmentColumns = `
	e.id, e.student_id, e.course_id, e.enrollment_date, e.status, e.completion_date,
	e.final_grade, COALESCE(e.grade_letter, ''), e.credits_earned, e.notes,
	e.created_at, e.updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEnrollment(row rowScanner) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := row.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.Status,
		&e.CompletionDate, &e.FinalGrade, &e.GradeLetter, &e.CreditsEarned,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}

	query := `
		INSERT INTO enrollments (id, student_id, course_id, enrollment_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		enrollment.ID, enrollment.StudentID, enrollment.CourseID,
		enrollment.EnrollmentDate, enrollment.Status, enrollment.Notes).
		Scan(&enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return enrollment, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	query := `SELECT` + enrollmentColumns + ` FROM enrollments e WHERE e.id = $1`
	return scanEnrollment(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	var found bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM enrollments
			WHERE student_id = $1 AND course_id = $2 AND status <> 'WITHDRAWN'
		)`
	if err := r.db.QueryRowContext(ctx, query, studentID, courseID).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

func (r *PostgresRepository) CountActiveByCourse(ctx context.Context, courseID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = 'ENROLLED'`
	if err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) Update(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	query := `
		UPDATE enrollments
		SET status = $2, completion_date = $3, final_grade = $4, grade_letter = $5,
			credits_earned = $6, notes = $7, updated_at = $8
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		enrollment.ID, enrollment.Status, enrollment.CompletionDate,
		enrollment.FinalGrade, enrollment.GradeLetter, enrollment.CreditsEarned,
		enrollment.Notes, time.Now()).
		Scan(&enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return enrollment, nil
}

var enrollmentSortColumns = map[string]string{
	"enrollment_date": "e.enrollment_date",
	"status":          "e.status",
	"created_at":      "e.created_at",
}

func (r *PostgresRepository) List(ctx context.Context, params pagex.Params) ([]*models.Enrollment, int64, error) {
	return r.list(ctx, ``, nil, params)
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status models.EnrollmentStatus, params pagex.Params) ([]*models.Enrollment, int64, error) {
	return r.list(ctx, ` WHERE e.status = $1`, []any{status}, params)
}

func (r *PostgresRepository) ListByStudent(ctx context.Context, studentID string, params pagex.Params) ([]*models.Enrollment, int64, error) {
	return r.list(ctx, ` WHERE e.student_id = $1`, []any{studentID}, params)
}

func (r *PostgresRepository) ListByCourse(ctx context.Context, courseID string, params pagex.Params) ([]*models.Enrollment, int64, error) {
	return r.list(ctx, ` WHERE e.course_id = $1`, []any{courseID}, params)
}

func (r *PostgresRepository) list(ctx context.Context, where string, args []any, params pagex.Params) ([]*models.Enrollment, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments e`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(`SELECT%s FROM enrollments e%s ORDER BY %s LIMIT %d OFFSET %d`,
		enrollmentColumns, where,
		params.OrderBy(enrollmentSortColumns, "e.enrollment_date"), params.Limit(), params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}
