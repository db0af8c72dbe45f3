package teachers

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

const teacherColumns = `
	t.id, t.employee_id, t.user_id, t.department, t.specialization, t.qualifications,
	t.hire_date, t.office_location, t.office_hours, t.employment_status,
	t.created_at, t.updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeacher(row rowScanner) (*models.Teacher, error) {
	t := &models.Teacher{}
	err := row.Scan(&t.ID, &t.EmployeeID, &t.UserID, &t.Department, &t.Specialization,
		&t.Qualifications, &t.HireDate, &t.OfficeLocation, &t.OfficeHours,
		&t.EmploymentStatus, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error) {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}

	query := `
		INSERT INTO teachers (id, employee_id, user_id, department, specialization,
			qualifications, hire_date, office_location, office_hours, employment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		teacher.ID, teacher.EmployeeID, teacher.UserID, teacher.Department,
		teacher.Specialization, teacher.Qualifications, teacher.HireDate,
		teacher.OfficeLocation, teacher.OfficeHours, teacher.EmploymentStatus).
		Scan(&teacher.CreatedAt, &teacher.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return teacher, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Teacher, error) {
	query := `SELECT` + teacherColumns + ` FROM teachers t WHERE t.id = $1`
	return scanTeacher(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error) {
	query := `SELECT` + teacherColumns + ` FROM teachers t WHERE t.employee_id = $1`
	return scanTeacher(r.db.QueryRowContext(ctx, query, employeeID))
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Teacher, error) {
	query := `SELECT` + teacherColumns + ` FROM teachers t WHERE t.user_id = $1`
	return scanTeacher(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) Update(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error) {
	query := `
		UPDATE teachers
		SET department = $2, specialization = $3, qualifications = $4,
			office_location = $5, office_hours = $6, employment_status = $7, updated_at = $8
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		teacher.ID, teacher.Department, teacher.Specialization, teacher.Qualifications,
		teacher.OfficeLocation, teacher.OfficeHours, teacher.EmploymentStatus, time.Now()).
		Scan(&teacher.CreatedAt, &teacher.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return teacher, nil
}

func (r *PostgresRepository) SetEmploymentStatus(ctx context.Context, id string, status models.EmploymentStatus) error {
	query := `UPDATE teachers SET employment_status = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

var teacherSortColumns = map[string]string{
	"employee_id": "t.employee_id",
	"department":  "t.department",
	"hire_date":   "t.hire_date",
}

func (r *PostgresRepository) List(ctx context.Context, params pagex.Params) ([]*models.Teacher, int64, error) {
	return r.list(ctx, ``, nil, params)
}

func (r *PostgresRepository) ListByDepartment(ctx context.Context, department string, params pagex.Params) ([]*models.Teacher, int64, error) {
	return r.list(ctx, ` WHERE t.department = $1`, []any{department}, params)
}

// Search matches against the employee id, department and the linked
// account's name fields.
func (r *PostgresRepository) Search(ctx context.Context, term string, params pagex.Params) ([]*models.Teacher, int64, error) {
	where := ` WHERE t.employee_id ILIKE $1 OR t.department ILIKE $1 OR t.user_id IN
		(SELECT id FROM users WHERE first_name ILIKE $1 OR last_name ILIKE $1)`
	return r.list(ctx, where, []any{"%" + term + "%"}, params)
}

func (r *PostgresRepository) list(ctx context.Context, where string, args []any, params pagex.Params) ([]*models.Teacher, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teachers t`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(`SELECT%s FROM teachers t%s ORDER BY %s LIMIT %d OFFSET %d`,
		teacherColumns, where,
		params.OrderBy(teacherSortColumns, "t.employee_id"), params.Limit(), params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}
