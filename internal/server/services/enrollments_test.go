package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStudentsRepo struct {
	byID map[string]*models.Student
}

func (f *fakeStudentsRepo) Create(_ context.Context, s *models.Student) (*models.Student, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	f.byID[s.ID] = s
	return s, nil
}

func (f *fakeStudentsRepo) GetByID(_ context.Context, id string) (*models.Student, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeStudentsRepo) GetByCode(_ context.Context, code string) (*models.Student, error) {
	for _, s := range f.byID {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeStudentsRepo) GetByUserID(_ context.Context, userID string) (*models.Student, error) {
	for _, s := range f.byID {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeStudentsRepo) Update(_ context.Context, s *models.Student) (*models.Student, error) {
	f.byID[s.ID] = s
	return s, nil
}

func (f *fakeStudentsRepo) SetAcademicStatus(_ context.Context, id string, status models.AcademicStatus) error {
	s, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	s.AcademicStatus = status
	return nil
}

func (f *fakeStudentsRepo) List(_ context.Context, _ pagex.Params) ([]*models.Student, int64, error) {
	return nil, 0, nil
}

func (f *fakeStudentsRepo) ListByStatus(_ context.Context, _ models.AcademicStatus, _ pagex.Params) ([]*models.Student, int64, error) {
	return nil, 0, nil
}

func (f *fakeStudentsRepo) Search(_ context.Context, _ string, _ pagex.Params) ([]*models.Student, int64, error) {
	return nil, 0, nil
}

type fakeCoursesRepo struct {
	byID map[string]*models.Course
}

func (f *fakeCoursesRepo) Create(_ context.Context, c *models.Course) (*models.Course, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeCoursesRepo) GetByID(_ context.Context, id string) (*models.Course, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCoursesRepo) GetByCode(_ context.Context, code string) (*models.Course, error) {
	for _, c := range f.byID {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCoursesRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, err := f.GetByCode(context.Background(), code)
	return err == nil, nil
}

func (f *fakeCoursesRepo) Update(_ context.Context, c *models.Course) (*models.Course, error) {
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeCoursesRepo) AssignTeacher(_ context.Context, courseID, teacherID string) error {
	c, ok := f.byID[courseID]
	if !ok {
		return common.ErrorNotFound
	}
	c.TeacherID = teacherID
	return nil
}

func (f *fakeCoursesRepo) SetStatus(_ context.Context, id string, status models.CourseStatus) error {
	c, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeCoursesRepo) List(_ context.Context, _ pagex.Params) ([]*models.Course, int64, error) {
	return nil, 0, nil
}

func (f *fakeCoursesRepo) ListByTeacher(_ context.Context, _ string, _ pagex.Params) ([]*models.Course, int64, error) {
	return nil, 0, nil
}

func (f *fakeCoursesRepo) ListByStatus(_ context.Context, _ models.CourseStatus, _ pagex.Params) ([]*models.Course, int64, error) {
	return nil, 0, nil
}

func (f *fakeCoursesRepo) ListAvailable(_ context.Context, _ pagex.Params) ([]*models.Course, int64, error) {
	return nil, 0, nil
}

func (f *fakeCoursesRepo) Search(_ context.Context, _ string, _ pagex.Params) ([]*models.Course, int64, error) {
	return nil, 0, nil
}

type fakeEnrollmentsRepo struct {
	byID map[string]*models.Enrollment
}

func (f *fakeEnrollmentsRepo) Create(_ context.Context, e *models.Enrollment) (*models.Enrollment, error) {
	for _, existing := range f.byID {
		if existing.StudentID == e.StudentID && existing.CourseID == e.CourseID &&
			existing.Status != models.EnrollmentStatusWithdrawn {
			return nil, common.ErrorAlreadyExists
		}
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEnrollmentsRepo) GetByID(_ context.Context, id string) (*models.Enrollment, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeEnrollmentsRepo) Exists(_ context.Context, studentID, courseID string) (bool, error) {
	for _, e := range f.byID {
		if e.StudentID == studentID && e.CourseID == courseID &&
			e.Status != models.EnrollmentStatusWithdrawn {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentsRepo) CountActiveByCourse(_ context.Context, courseID string) (int, error) {
	count := 0
	for _, e := range f.byID {
		if e.CourseID == courseID && e.Status == models.EnrollmentStatusEnrolled {
			count++
		}
	}
	return count, nil
}

func (f *fakeEnrollmentsRepo) Update(_ context.Context, e *models.Enrollment) (*models.Enrollment, error) {
	if _, ok := f.byID[e.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEnrollmentsRepo) List(_ context.Context, _ pagex.Params) ([]*models.Enrollment, int64, error) {
	var out []*models.Enrollment
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEnrollmentsRepo) ListByStatus(_ context.Context, status models.EnrollmentStatus, _ pagex.Params) ([]*models.Enrollment, int64, error) {
	var out []*models.Enrollment
	for _, e := range f.byID {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEnrollmentsRepo) ListByStudent(_ context.Context, studentID string, _ pagex.Params) ([]*models.Enrollment, int64, error) {
	var out []*models.Enrollment
	for _, e := range f.byID {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEnrollmentsRepo) ListByCourse(_ context.Context, courseID string, _ pagex.Params) ([]*models.Enrollment, int64, error) {
	var out []*models.Enrollment
	for _, e := range f.byID {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

type enrollmentFixture struct {
	svc      *EnrollmentService
	mock     sqlmock.Sqlmock
	students *fakeStudentsRepo
	courses  *fakeCoursesRepo
	repo     *fakeEnrollmentsRepo
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	studentsRepo := &fakeStudentsRepo{byID: map[string]*models.Student{}}
	coursesRepo := &fakeCoursesRepo{byID: map[string]*models.Course{}}
	enrollmentsRepo := &fakeEnrollmentsRepo{byID: map[string]*models.Enrollment{}}

	m := &fakeRepoManager{
		students:    studentsRepo,
		courses:     coursesRepo,
		enrollments: enrollmentsRepo,
	}
	return &enrollmentFixture{
		svc:      NewEnrollmentService(db, m),
		mock:     mock,
		students: studentsRepo,
		courses:  coursesRepo,
		repo:     enrollmentsRepo,
	}
}

func (f *enrollmentFixture) addStudent(status models.AcademicStatus) *models.Student {
	s, _ := f.students.Create(context.Background(), &models.Student{
		Code:           "STU-" + uuid.NewString()[:8],
		AcademicStatus: status,
	})
	return s
}

func (f *enrollmentFixture) addCourse(status models.CourseStatus, maxStudents int) *models.Course {
	c, _ := f.courses.Create(context.Background(), &models.Course{
		Code:        "CRS-" + uuid.NewString()[:8],
		Credits:     4,
		MaxStudents: maxStudents,
		Status:      status,
	})
	return c
}

func TestEnrollmentService_Enroll(t *testing.T) {
	f := newEnrollmentFixture(t)
	student := f.addStudent(models.AcademicStatusActive)
	course := f.addCourse(models.CourseStatusActive, 30)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	enrollment, err := f.svc.Enroll(context.Background(), student.ID, course.ID)

	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusEnrolled, enrollment.Status)
	assert.WithinDuration(t, time.Now(), enrollment.EnrollmentDate, time.Minute)
}

func TestEnrollmentService_Enroll_Duplicate(t *testing.T) {
	f := newEnrollmentFixture(t)
	student := f.addStudent(models.AcademicStatusActive)
	course := f.addCourse(models.CourseStatusActive, 30)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err := f.svc.Enroll(context.Background(), student.ID, course.ID)
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err = f.svc.Enroll(context.Background(), student.ID, course.ID)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestEnrollmentService_Enroll_InactiveStudent(t *testing.T) {
	f := newEnrollmentFixture(t)
	student := f.addStudent(models.AcademicStatusSuspended)
	course := f.addCourse(models.CourseStatusActive, 30)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.svc.Enroll(context.Background(), student.ID, course.ID)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestEnrollmentService_Enroll_InactiveCourse(t *testing.T) {
	f := newEnrollmentFixture(t)
	student := f.addStudent(models.AcademicStatusActive)
	course := f.addCourse(models.CourseStatusInactive, 30)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.svc.Enroll(context.Background(), student.ID, course.ID)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestEnrollmentService_Enroll_CourseFull(t *testing.T) {
	f := newEnrollmentFixture(t)
	course := f.addCourse(models.CourseStatusActive, 1)

	first := f.addStudent(models.AcademicStatusActive)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err := f.svc.Enroll(context.Background(), first.ID, course.ID)
	require.NoError(t, err)

	second := f.addStudent(models.AcademicStatusActive)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err = f.svc.Enroll(context.Background(), second.ID, course.ID)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestEnrollmentService_Complete(t *testing.T) {
	f := newEnrollmentFixture(t)
	student := f.addStudent(models.AcademicStatusActive)
	course := f.addCourse(models.CourseStatusActive, 30)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	enrollment, err := f.svc.Enroll(context.Background(), student.ID, course.ID)
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	completed, err := f.svc.Complete(context.Background(), enrollment.ID, 84.5)

	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusCompleted, completed.Status)
	assert.Equal(t, "B", completed.GradeLetter)
	require.NotNil(t, completed.CreditsEarned)
	assert.Equal(t, 4, *completed.CreditsEarned)
	assert.NotNil(t, completed.CompletionDate)
}

func TestEnrollmentService_Complete_FailingGrade(t *testing.T) {
	f := newEnrollmentFixture(t)
	student := f.addStudent(models.AcademicStatusActive)
	course := f.addCourse(models.CourseStatusActive, 30)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	enrollment, err := f.svc.Enroll(context.Background(), student.ID, course.ID)
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	completed, err := f.svc.Complete(context.Background(), enrollment.ID, 42)

	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusFailed, completed.Status)
	assert.Equal(t, "F", completed.GradeLetter)
	require.NotNil(t, completed.CreditsEarned)
	assert.Equal(t, 0, *completed.CreditsEarned)
}

func TestEnrollmentService_Complete_GradeOutOfRange(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.svc.Complete(context.Background(), "e1", 101)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = f.svc.Complete(context.Background(), "e1", -1)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestEnrollmentService_Cancel(t *testing.T) {
	f := newEnrollmentFixture(t)
	student := f.addStudent(models.AcademicStatusActive)
	course := f.addCourse(models.CourseStatusActive, 30)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	enrollment, err := f.svc.Enroll(context.Background(), student.ID, course.ID)
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	cancelled, err := f.svc.Cancel(context.Background(), enrollment.ID, "schedule conflict")

	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusWithdrawn, cancelled.Status)
	assert.Equal(t, "schedule conflict", cancelled.Notes)

	// A withdrawn enrollment frees the seat.
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err = f.svc.Enroll(context.Background(), student.ID, course.ID)
	assert.NoError(t, err)
}

func TestEnrollmentService_Cancel_CompletedRejected(t *testing.T) {
	f := newEnrollmentFixture(t)
	student := f.addStudent(models.AcademicStatusActive)
	course := f.addCourse(models.CourseStatusActive, 30)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	enrollment, err := f.svc.Enroll(context.Background(), student.ID, course.ID)
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err = f.svc.Complete(context.Background(), enrollment.ID, 75)
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err = f.svc.Cancel(context.Background(), enrollment.ID, "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}
