package courses

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

const courseColumns = `
	c.id, c.code, c.name, c.description, c.credits, COALESCE(c.teacher_id, ''),
	c.start_date, c.end_date, c.schedule, c.classroom, c.max_students, c.status,
	c.created_at, c.updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.Credits, &c.TeacherID,
		&c.StartDate, &c.EndDate, &c.Schedule, &c.Classroom, &c.MaxStudents,
		&c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// teacherIDParam maps the empty "unassigned" value to NULL so the foreign
// key stays satisfiable.
func teacherIDParam(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func (r *PostgresRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}

	query := `
		INSERT INTO courses (id, code, name, description, credits, teacher_id,
			start_date, end_date, schedule, classroom, max_students, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		course.ID, course.Code, course.Name, course.Description, course.Credits,
		teacherIDParam(course.TeacherID), course.StartDate, course.EndDate,
		course.Schedule, course.Classroom, course.MaxStudents, course.Status).
		Scan(&course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return course, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT` + courseColumns + ` FROM courses c WHERE c.id = $1`
	return scanCourse(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	query := `SELECT` + courseColumns + ` FROM courses c WHERE c.code = $1`
	return scanCourse(r.db.QueryRowContext(ctx, query, code))
}

func (r *PostgresRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var found bool
	query := `SELECT EXISTS (SELECT 1 FROM courses WHERE code = $1)`
	if err := r.db.QueryRowContext(ctx, query, code).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

func (r *PostgresRepository) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	query := `
		UPDATE courses
		SET name = $2, description = $3, credits = $4, start_date = $5, end_date = $6,
			schedule = $7, classroom = $8, max_students = $9, status = $10, updated_at = $11
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		course.ID, course.Name, course.Description, course.Credits, course.StartDate,
		course.EndDate, course.Schedule, course.Classroom, course.MaxStudents,
		course.Status, time.Now()).
		Scan(&course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return course, nil
}

func (r *PostgresRepository) AssignTeacher(ctx context.Context, courseID, teacherID string) error {
	query := `UPDATE courses SET teacher_id = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, courseID, teacherIDParam(teacherID))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.CourseStatus) error {
	query := `UPDATE courses SET status = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

var courseSortColumns = map[string]string{
	"code":       "c.code",
	"name":       "c.name",
	"start_date": "c.start_date",
	"credits":    "c.credits",
}

func (r *PostgresRepository) List(ctx context.Context, params pagex.Params) ([]*models.Course, int64, error) {
	return r.list(ctx, ``, nil, params)
}

func (r *PostgresRepository) ListByTeacher(ctx context.Context, teacherID string, params pagex.Params) ([]*models.Course, int64, error) {
	return r.list(ctx, ` WHERE c.teacher_id = $1`, []any{teacherID}, params)
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status models.CourseStatus, params pagex.Params) ([]*models.Course, int64, error) {
	return r.list(ctx, ` WHERE c.status = $1`, []any{status}, params)
}

func (r *PostgresRepository) ListAvailable(ctx context.Context, params pagex.Params) ([]*models.Course, int64, error) {
	where := ` WHERE c.status = 'ACTIVE' AND c.max_students >
		(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.status = 'ENROLLED')`
	return r.list(ctx, where, nil, params)
}

func (r *PostgresRepository) Search(ctx context.Context, term string, params pagex.Params) ([]*models.Course, int64, error) {
	where := ` WHERE c.code ILIKE $1 OR c.name ILIKE $1 OR c.description ILIKE $1`
	return r.list(ctx, where, []any{"%" + term + "%"}, params)
}

func (r *PostgresRepository) list(ctx context.Context, where string, args []any, params pagex.Params) ([]*models.Course, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses c`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(`SELECT%s FROM courses c%s ORDER BY %s LIMIT %d OFFSET %d`,
		courseColumns, where,
		params.OrderBy(courseSortColumns, "c.code"), params.Limit(), params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}
