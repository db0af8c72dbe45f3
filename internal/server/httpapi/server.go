// Package httpapi exposes the EducaGestor services over a JSON HTTP API.
// Routes are registered with a per-route access policy; authentication is a
// single middleware that resolves the bearer token into a request identity
// and leaves denial decisions to the policies.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educagestor/educagestor/internal/logging"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/auth"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/services"
)

// AuthAPI is the slice of AuthService the server consumes.
type AuthAPI interface {
	Register(ctx context.Context, req services.RegisterRequest) (*services.Session, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*services.Session, error)
}

// UserAPI is the slice of UserService the server consumes. GetByID also
// backs the authentication middleware's identity lookup.
type UserAPI interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) (*models.User, error)
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, params pagex.Params) (pagex.Page[*models.User], error)
	ListByRole(ctx context.Context, role authz.Role, params pagex.Params) (pagex.Page[*models.User], error)
	Search(ctx context.Context, term string, params pagex.Params) (pagex.Page[*models.User], error)
}

// StudentAPI is the slice of StudentService the server consumes.
type StudentAPI interface {
	Create(ctx context.Context, req services.CreateStudentRequest) (*models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByCode(ctx context.Context, code string) (*models.Student, error)
	GetByUserID(ctx context.Context, userID string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) (*models.Student, error)
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, params pagex.Params) (pagex.Page[*models.Student], error)
	ListByStatus(ctx context.Context, status models.AcademicStatus, params pagex.Params) (pagex.Page[*models.Student], error)
	Search(ctx context.Context, term string, params pagex.Params) (pagex.Page[*models.Student], error)
}

// TeacherAPI is the slice of TeacherService the server consumes.
type TeacherAPI interface {
	Create(ctx context.Context, req services.CreateTeacherRequest) (*models.Teacher, error)
	GetByID(ctx context.Context, id string) (*models.Teacher, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID string) (*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error)
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, params pagex.Params) (pagex.Page[*models.Teacher], error)
	ListByDepartment(ctx context.Context, department string, params pagex.Params) (pagex.Page[*models.Teacher], error)
	Search(ctx context.Context, term string, params pagex.Params) (pagex.Page[*models.Teacher], error)
}

// CourseAPI is the slice of CourseService the server consumes.
type CourseAPI interface {
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) (*models.Course, error)
	AssignTeacher(ctx context.Context, courseID, teacherID string) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, params pagex.Params) (pagex.Page[*models.Course], error)
	ListByTeacher(ctx context.Context, teacherID string, params pagex.Params) (pagex.Page[*models.Course], error)
	ListByStatus(ctx context.Context, status models.CourseStatus, params pagex.Params) (pagex.Page[*models.Course], error)
	ListAvailable(ctx context.Context, params pagex.Params) (pagex.Page[*models.Course], error)
	Search(ctx context.Context, term string, params pagex.Params) (pagex.Page[*models.Course], error)
}

// EnrollmentAPI is the slice of EnrollmentService the server consumes.
type EnrollmentAPI interface {
	Enroll(ctx context.Context, studentID, courseID string) (*models.Enrollment, error)
	GetByID(ctx context.Context, id string) (*models.Enrollment, error)
	Complete(ctx context.Context, id string, finalGrade float64) (*models.Enrollment, error)
	Cancel(ctx context.Context, id string, notes string) (*models.Enrollment, error)
	List(ctx context.Context, params pagex.Params) (pagex.Page[*models.Enrollment], error)
	ListByStatus(ctx context.Context, status models.EnrollmentStatus, params pagex.Params) (pagex.Page[*models.Enrollment], error)
	ListByStudent(ctx context.Context, studentID string, params pagex.Params) (pagex.Page[*models.Enrollment], error)
	ListByCourse(ctx context.Context, courseID string, params pagex.Params) (pagex.Page[*models.Enrollment], error)
}

// GradeAPI is the slice of GradeService the server consumes.
type GradeAPI interface {
	Record(ctx context.Context, grade *models.Grade) (*models.Grade, error)
	GetByID(ctx context.Context, id string) (*models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) (*models.Grade, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params pagex.Params) (pagex.Page[*models.Grade], error)
	ListByStudent(ctx context.Context, studentID string, params pagex.Params) (pagex.Page[*models.Grade], error)
	ListByStudentAndCourse(ctx context.Context, studentID, courseID string, params pagex.Params) (pagex.Page[*models.Grade], error)
	ListByCourse(ctx context.Context, courseID string, params pagex.Params) (pagex.Page[*models.Grade], error)
	Average(ctx context.Context, studentID, courseID string) (*float64, error)
	WeightedAverage(ctx context.Context, studentID, courseID string) (*float64, error)
}

// MaterialAPI is the slice of MaterialService the server consumes.
type MaterialAPI interface {
	Upload(ctx context.Context, courseID, title, contentType, uploadedBy string) (*services.MaterialUpload, error)
	DownloadURL(ctx context.Context, id string) (string, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Material, error)
	Delete(ctx context.Context, id string) error
}

// Services bundles the service dependencies of the HTTP server.
type Services struct {
	Auth        AuthAPI
	Users       UserAPI
	Students    StudentAPI
	Teachers    TeacherAPI
	Courses     CourseAPI
	Enrollments EnrollmentAPI
	Grades      GradeAPI
	Materials   MaterialAPI
}

// Server routes HTTP requests to the services.
type Server struct {
	logger logging.Logger
	codec  *auth.Codec
	engine *gin.Engine

	authService       AuthAPI
	userService       UserAPI
	studentService    StudentAPI
	teacherService    TeacherAPI
	courseService     CourseAPI
	enrollmentService EnrollmentAPI
	gradeService      GradeAPI
	materialService   MaterialAPI
}

// NewServer builds the router and registers all routes.
func NewServer(logger logging.Logger, codec *auth.Codec, svcs Services) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		logger:            logger,
		codec:             codec,
		engine:            engine,
		authService:       svcs.Auth,
		userService:       svcs.Users,
		studentService:    svcs.Students,
		teacherService:    svcs.Teachers,
		courseService:     svcs.Courses,
		enrollmentService: svcs.Enrollments,
		gradeService:      svcs.Grades,
		materialService:   svcs.Materials,
	}
	s.routes()
	return s
}

// Handler returns the root http.Handler for mounting on an http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	adminOnly := authz.Policy{Roles: []authz.Role{authz.RoleAdmin}}
	studentOnly := authz.Policy{Roles: []authz.Role{authz.RoleStudent}}
	teacherOnly := authz.Policy{Roles: []authz.Role{authz.RoleTeacher}}
	staff := authz.Policy{Roles: []authz.Role{authz.RoleAdmin, authz.RoleTeacher}}
	anyRole := authz.Policy{Roles: []authz.Role{authz.RoleAdmin, authz.RoleTeacher, authz.RoleStudent}}
	staffOrOwnStudent := authz.Policy{
		Roles:      []authz.Role{authz.RoleAdmin, authz.RoleTeacher},
		OwnedRoles: []authz.Role{authz.RoleStudent},
		Owner:      studentOwnership(s.studentService),
	}

	s.engine.Use(s.authenticate())

	api := s.engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/refresh", s.refresh)
		authGroup.POST("/logout", s.logout)
	}

	users := api.Group("/users")
	{
		users.GET("/profile", s.require(anyRole), s.getProfile)
		users.PUT("/profile", s.require(anyRole), s.updateProfile)
		users.GET("", s.require(adminOnly), s.listUsers)
		users.GET("/search", s.require(adminOnly), s.searchUsers)
		users.GET("/:userId", s.require(adminOnly), s.getUser)
		users.POST("/:userId/activate", s.require(adminOnly), s.activateUser)
		users.DELETE("/:userId", s.require(adminOnly), s.deactivateUser)
		users.GET("/username/:username", s.require(adminOnly), s.getUserByUsername)
		users.GET("/role/:role", s.require(adminOnly), s.listUsersByRole)
	}

	students := api.Group("/students")
	{
		students.POST("", s.require(staff), s.createStudent)
		students.GET("", s.require(staff), s.listStudents)
		students.GET("/profile", s.require(studentOnly), s.getOwnStudentProfile)
		students.GET("/search", s.require(staff), s.searchStudents)
		students.GET("/status/:status", s.require(staff), s.listStudentsByStatus)
		students.GET("/student-id/:code", s.require(staff), s.getStudentByCode)
		students.GET("/:studentId", s.require(staffOrOwnStudent), s.getStudent)
		students.PUT("/:studentId", s.require(staff), s.updateStudent)
		students.DELETE("/:studentId", s.require(adminOnly), s.deactivateStudent)
	}

	teachers := api.Group("/teachers")
	{
		teachers.POST("", s.require(adminOnly), s.createTeacher)
		teachers.GET("", s.require(staff), s.listTeachers)
		teachers.GET("/profile", s.require(teacherOnly), s.getOwnTeacherProfile)
		teachers.GET("/search", s.require(staff), s.searchTeachers)
		teachers.GET("/department/:department", s.require(staff), s.listTeachersByDepartment)
		teachers.GET("/employee/:employeeId", s.require(staff), s.getTeacherByEmployeeID)
		teachers.GET("/:teacherId", s.require(staff), s.getTeacher)
		teachers.PUT("/:teacherId", s.require(adminOnly), s.updateTeacher)
		teachers.DELETE("/:teacherId", s.require(adminOnly), s.deactivateTeacher)
	}

	courses := api.Group("/courses")
	{
		courses.POST("", s.require(staff), s.createCourse)
		courses.GET("", s.require(anyRole), s.listCourses)
		courses.GET("/search", s.require(anyRole), s.searchCourses)
		courses.GET("/available", s.require(anyRole), s.listAvailableCourses)
		courses.GET("/code/:code", s.require(anyRole), s.getCourseByCode)
		courses.GET("/teacher/:teacherId", s.require(staff), s.listCoursesByTeacher)
		courses.GET("/status/:status", s.require(staff), s.listCoursesByStatus)
		courses.GET("/:courseId", s.require(anyRole), s.getCourse)
		courses.PUT("/:courseId", s.require(staff), s.updateCourse)
		courses.POST("/:courseId/assign-teacher/:teacherId", s.require(adminOnly), s.assignTeacher)
		courses.DELETE("/:courseId", s.require(adminOnly), s.deactivateCourse)

		courses.POST("/:courseId/materials", s.require(staff), s.uploadMaterial)
		courses.GET("/:courseId/materials", s.require(anyRole), s.listMaterials)
	}

	materials := api.Group("/materials")
	{
		materials.GET("/:materialId/download", s.require(anyRole), s.downloadMaterial)
		materials.DELETE("/:materialId", s.require(staff), s.deleteMaterial)
	}

	enrollments := api.Group("/enrollments")
	{
		enrollments.POST("", s.require(staff), s.enroll)
		enrollments.GET("", s.require(staff), s.listEnrollments)
		enrollments.GET("/status/:status", s.require(staff), s.listEnrollmentsByStatus)
		enrollments.GET("/student/:studentId", s.require(staffOrOwnStudent), s.listEnrollmentsByStudent)
		enrollments.GET("/course/:courseId", s.require(staff), s.listEnrollmentsByCourse)
		enrollments.GET("/:enrollmentId", s.require(staff), s.getEnrollment)
		enrollments.POST("/:enrollmentId/complete", s.require(staff), s.completeEnrollment)
		enrollments.DELETE("/:enrollmentId", s.require(staff), s.cancelEnrollment)
	}

	grades := api.Group("/grades")
	{
		grades.POST("", s.require(staff), s.recordGrade)
		grades.GET("", s.require(staff), s.listGrades)
		grades.GET("/student/:studentId", s.require(staffOrOwnStudent), s.listGradesByStudent)
		grades.GET("/student/:studentId/course/:courseId", s.require(staffOrOwnStudent), s.listGradesByStudentAndCourse)
		grades.GET("/student/:studentId/course/:courseId/average", s.require(staffOrOwnStudent), s.gradeAverage)
		grades.GET("/student/:studentId/course/:courseId/weighted-average", s.require(staffOrOwnStudent), s.gradeWeightedAverage)
		grades.GET("/course/:courseId", s.require(staff), s.listGradesByCourse)
		grades.GET("/:gradeId", s.require(staff), s.getGrade)
		grades.PUT("/:gradeId", s.require(staff), s.updateGrade)
		grades.DELETE("/:gradeId", s.require(staff), s.deleteGrade)
	}
}
