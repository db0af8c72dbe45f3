// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/educagestor/educagestor/internal/dbx"
	"github.com/educagestor/educagestor/internal/server/migrations"
	"github.com/educagestor/educagestor/internal/server/repositories/courses"
	"github.com/educagestor/educagestor/internal/server/repositories/enrollments"
	"github.com/educagestor/educagestor/internal/server/repositories/grades"
	"github.com/educagestor/educagestor/internal/server/repositories/materials"
	"github.com/educagestor/educagestor/internal/server/repositories/students"
	"github.com/educagestor/educagestor/internal/server/repositories/teachers"
	"github.com/educagestor/educagestor/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Students(db dbx.DBTX) students.Repository {
	return students.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Teachers(db dbx.DBTX) teachers.Repository {
	return teachers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Courses(db dbx.DBTX) courses.Repository {
	return courses.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Enrollments(db dbx.DBTX) enrollments.Repository {
	return enrollments.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Grades(db dbx.DBTX) grades.Repository {
	return grades.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Materials(db dbx.DBTX) materials.Repository {
	return materials.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
