package grades

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
)

const gradeColumns = `
	g.id, g.student_id, g.course_id, g.assignment_name, g.grade_type, g.grade_value,
	g.max_points, g.weight, g.grade_date, g.comments, g.extra_credit, g.dropped,
	g.created_at, g.updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGrade(row rowScanner) (*models.Grade, error) {
	g := &models.Grade{}
	err := row.Scan(&g.ID, &g.StudentID, &g.CourseID, &g.AssignmentName, &g.Type,
		&g.Value, &g.MaxPoints, &g.Weight, &g.GradeDate, &g.Comments,
		&g.ExtraCredit, &g.Dropped, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) Create(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	if grade.ID == "" {
		grade.ID = uuid.NewString()
	}

	query := `
		INSERT INTO grades (id, student_id, course_id, assignment_name, grade_type,
			grade_value, max_points, weight, grade_date, comments, extra_credit, dropped)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		grade.ID, grade.StudentID, grade.CourseID, grade.AssignmentName, grade.Type,
		grade.Value, grade.MaxPoints, grade.Weight, grade.GradeDate, grade.Comments,
		grade.ExtraCredit, grade.Dropped).
		Scan(&grade.CreatedAt, &grade.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return grade, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Grade, error) {
	query := `SELECT` + gradeColumns + ` FROM grades g WHERE g.id = $1`
	return scanGrade(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Update(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	query := `
		UPDATE grades
		SET assignment_name = $2, grade_type = $3, grade_value = $4, max_points = $5,
			weight = $6, grade_date = $7, comments = $8, extra_credit = $9,
			dropped = $10, updated_at = $11
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		grade.ID, grade.AssignmentName, grade.Type, grade.Value, grade.MaxPoints,
		grade.Weight, grade.GradeDate, grade.Comments, grade.ExtraCredit,
		grade.Dropped, time.Now()).
		Scan(&grade.CreatedAt, &grade.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return grade, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

var gradeSortColumns = map[string]string{
	"grade_date":  "g.grade_date",
	"grade_value": "g.grade_value",
	"created_at":  "g.created_at",
}

func (r *PostgresRepository) List(ctx context.Context, params pagex.Params) ([]*models.Grade, int64, error) {
	return r.list(ctx, ``, nil, params)
}

func (r *PostgresRepository) ListByStudent(ctx context.Context, studentID string, params pagex.Params) ([]*models.Grade, int64, error) {
	return r.list(ctx, ` WHERE g.student_id = $1`, []any{studentID}, params)
}

func (r *PostgresRepository) ListByStudentAndCourse(ctx context.Context, studentID, courseID string, params pagex.Params) ([]*models.Grade, int64, error) {
	return r.list(ctx, ` WHERE g.student_id = $1 AND g.course_id = $2`, []any{studentID, courseID}, params)
}

func (r *PostgresRepository) ListByCourse(ctx context.Context, courseID string, params pagex.Params) ([]*models.Grade, int64, error) {
	return r.list(ctx, ` WHERE g.course_id = $1`, []any{courseID}, params)
}

func (r *PostgresRepository) Average(ctx context.Context, studentID, courseID string) (*float64, error) {
	query := `
		SELECT AVG(grade_value) FROM grades
		WHERE student_id = $1 AND course_id = $2 AND dropped = false
	`
	var avg *float64
	if err := r.db.QueryRowContext(ctx, query, studentID, courseID).Scan(&avg); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return avg, nil
}

func (r *PostgresRepository) WeightedAverage(ctx context.Context, studentID, courseID string) (*float64, error) {
	query := `
		SELECT SUM(grade_value * COALESCE(weight, 1)) / NULLIF(SUM(COALESCE(weight, 1)), 0)
		FROM grades
		WHERE student_id = $1 AND course_id = $2 AND dropped = false
	`
	var avg *float64
	if err := r.db.QueryRowContext(ctx, query, studentID, courseID).Scan(&avg); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return avg, nil
}

func (r *PostgresRepository) list(ctx context.Context, where string, args []any, params pagex.Params) ([]*models.Grade, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM grades g`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(`SELECT%s FROM grades g%s ORDER BY %s LIMIT %d OFFSET %d`,
		gradeColumns, where,
		params.OrderBy(gradeSortColumns, "g.grade_date"), params.Limit(), params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Grade
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}
