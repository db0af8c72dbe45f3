package students

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

const studentColumns = `
	s.id, s.code, s.user_id, s.date_of_birth, s.address, s.emergency_contact,
	s.emergency_phone, s.enrollment_date, s.academic_status, s.created_at, s.updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.Code, &s.UserID, &s.DateOfBirth, &s.Address,
		&s.EmergencyContact, &s.EmergencyPhone, &s.EnrollmentDate,
		&s.AcademicStatus, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}

	query := `
		INSERT INTO students (id, code, user_id, date_of_birth, address, emergency_contact,
			emergency_phone, enrollment_date, academic_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		student.ID, student.Code, student.UserID, student.DateOfBirth, student.Address,
		student.EmergencyContact, student.EmergencyPhone, student.EnrollmentDate,
		student.AcademicStatus).
		Scan(&student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return student, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students s WHERE s.id = $1`
	return scanStudent(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students s WHERE s.code = $1`
	return scanStudent(r.db.QueryRowContext(ctx, query, code))
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students s WHERE s.user_id = $1`
	return scanStudent(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) Update(ctx context.Context, student *models.Student) (*models.Student, error) {
	query := `
		UPDATE students
		SET date_of_birth = $2, address = $3, emergency_contact = $4,
			emergency_phone = $5, academic_status = $6, updated_at = $7
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		student.ID, student.DateOfBirth, student.Address, student.EmergencyContact,
		student.EmergencyPhone, student.AcademicStatus, time.Now()).
		Scan(&student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return student, nil
}

func (r *PostgresRepository) SetAcademicStatus(ctx context.Context, id string, status models.AcademicStatus) error {
	query := `UPDATE students SET academic_status = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

var studentSortColumns = map[string]string{
	"code":            "s.code",
	"enrollment_date": "s.enrollment_date",
	"created_at":      "s.created_at",
}

func (r *PostgresRepository) List(ctx context.Context, params pagex.Params) ([]*models.Student, int64, error) {
	return r.list(ctx, ``, nil, params)
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status models.AcademicStatus, params pagex.Params) ([]*models.Student, int64, error) {
	return r.list(ctx, ` WHERE s.academic_status = $1`, []any{status}, params)
}

// Search matches against the student code and the linked account's name
// fields.
func (r *PostgresRepository) Search(ctx context.Context, term string, params pagex.Params) ([]*models.Student, int64, error) {
	where := ` WHERE s.code ILIKE $1 OR s.user_id IN
		(SELECT id FROM users WHERE first_name ILIKE $1 OR last_name ILIKE $1)`
	return r.list(ctx, where, []any{"%" + term + "%"}, params)
}

func (r *PostgresRepository) list(ctx context.Context, where string, args []any, params pagex.Params) ([]*models.Student, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(`SELECT%s FROM students s%s ORDER BY %s LIMIT %d OFFSET %d`,
		studentColumns, where,
		params.OrderBy(studentSortColumns, "s.code"), params.Limit(), params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}
