package repomanager

import (
	"context"
	"database/sql"

	"github.com/educagestor/educagestor/internal/dbx"
	"github.com/educagestor/educagestor/internal/server/repositories/courses"
	"github.com/educagestor/educagestor/internal/server/repositories/enrollments"
	"github.com/educagestor/educagestor/internal/server/repositories/grades"
	"github.com/educagestor/educagestor/internal/server/repositories/materials"
	"github.com/educagestor/educagestor/internal/server/repositories/students"
	"github.com/educagestor/educagestor/internal/server/repositories/teachers"
	"github.com/educagestor/educagestor/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Students(db dbx.DBTX) students.Repository
	Teachers(db dbx.DBTX) teachers.Repository
	Courses(db dbx.DBTX) courses.Repository
	Enrollments(db dbx.DBTX) enrollments.Repository
	Grades(db dbx.DBTX) grades.Repository
	Materials(db dbx.DBTX) materials.Repository
}
