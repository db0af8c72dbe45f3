package httpapi

import (
	"time"

	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/services"
)

// mapPage converts a page of domain records into a page of response DTOs,
// preserving the envelope.
func mapPage[T, U any](p pagex.Page[T], f func(T) U) pagex.Page[U] {
	out := pagex.Page[U]{
		Items:      make([]U, 0, len(p.Items)),
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
	for _, item := range p.Items {
		out.Items = append(out.Items, f(item))
	}
	return out
}

type userResponse struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	PhoneNumber string       `json:"phone_number,omitempty"`
	Roles       []authz.Role `json:"roles"`
	Active      bool         `json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Roles:       u.Roles,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type sessionResponse struct {
	User         userResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func toSessionResponse(s *services.Session) sessionResponse {
	return sessionResponse{
		User:         toUserResponse(s.User),
		AccessToken:  s.Tokens.AccessToken,
		RefreshToken: s.Tokens.RefreshToken,
	}
}

type studentResponse struct {
	ID               string                `json:"id"`
	Code             string                `json:"student_id"`
	UserID           string                `json:"user_id"`
	DateOfBirth      time.Time             `json:"date_of_birth"`
	Address          string                `json:"address,omitempty"`
	EmergencyContact string                `json:"emergency_contact,omitempty"`
	EmergencyPhone   string                `json:"emergency_phone,omitempty"`
	EnrollmentDate   time.Time             `json:"enrollment_date"`
	AcademicStatus   models.AcademicStatus `json:"academic_status"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

func toStudentResponse(s *models.Student) studentResponse {
	return studentResponse{
		ID:               s.ID,
		Code:             s.Code,
		UserID:           s.UserID,
		DateOfBirth:      s.DateOfBirth,
		Address:          s.Address,
		EmergencyContact: s.EmergencyContact,
		EmergencyPhone:   s.EmergencyPhone,
		EnrollmentDate:   s.EnrollmentDate,
		AcademicStatus:   s.AcademicStatus,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

type teacherResponse struct {
	ID               string                  `json:"id"`
	EmployeeID       string                  `json:"employee_id"`
	UserID           string                  `json:"user_id"`
	Department       string                  `json:"department"`
	Specialization   string                  `json:"specialization,omitempty"`
	Qualifications   string                  `json:"qualifications,omitempty"`
	HireDate         time.Time               `json:"hire_date"`
	OfficeLocation   string                  `json:"office_location,omitempty"`
	OfficeHours      string                  `json:"office_hours,omitempty"`
	EmploymentStatus models.EmploymentStatus `json:"employment_status"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func toTeacherResponse(t *models.Teacher) teacherResponse {
	return teacherResponse{
		ID:               t.ID,
		EmployeeID:       t.EmployeeID,
		UserID:           t.UserID,
		Department:       t.Department,
		Specialization:   t.Specialization,
		Qualifications:   t.Qualifications,
		HireDate:         t.HireDate,
		OfficeLocation:   t.OfficeLocation,
		OfficeHours:      t.OfficeHours,
		EmploymentStatus: t.EmploymentStatus,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

type courseResponse struct {
	ID          string              `json:"id"`
	Code        string              `json:"course_code"`
	Name        string              `json:"course_name"`
	Description string              `json:"description,omitempty"`
	Credits     int                 `json:"credits"`
	TeacherID   string              `json:"teacher_id,omitempty"`
	StartDate   time.Time           `json:"start_date"`
	EndDate     time.Time           `json:"end_date"`
	Schedule    string              `json:"schedule,omitempty"`
	Classroom   string              `json:"classroom,omitempty"`
	MaxStudents int                 `json:"max_students"`
	Status      models.CourseStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func toCourseResponse(c *models.Course) courseResponse {
	return courseResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		Credits:     c.Credits,
		TeacherID:   c.TeacherID,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Schedule:    c.Schedule,
		Classroom:   c.Classroom,
		MaxStudents: c.MaxStudents,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type enrollmentResponse struct {
	ID             string                  `json:"id"`
	StudentID      string                  `json:"student_id"`
	CourseID       string                  `json:"course_id"`
	EnrollmentDate time.Time               `json:"enrollment_date"`
	Status         models.EnrollmentStatus `json:"status"`
	CompletionDate *time.Time              `json:"completion_date,omitempty"`
	FinalGrade     *float64                `json:"final_grade,omitempty"`
	GradeLetter    string                  `json:"grade_letter,omitempty"`
	CreditsEarned  *int                    `json:"credits_earned,omitempty"`
	Notes          string                  `json:"notes,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func toEnrollmentResponse(e *models.Enrollment) enrollmentResponse {
	return enrollmentResponse{
		ID:             e.ID,
		StudentID:      e.StudentID,
		CourseID:       e.CourseID,
		EnrollmentDate: e.EnrollmentDate,
		Status:         e.Status,
		CompletionDate: e.CompletionDate,
		FinalGrade:     e.FinalGrade,
		GradeLetter:    e.GradeLetter,
		CreditsEarned:  e.CreditsEarned,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

type gradeResponse struct {
	ID             string           `json:"id"`
	StudentID      string           `json:"student_id"`
	CourseID       string           `json:"course_id"`
	AssignmentName string           `json:"assignment_name"`
	Type           models.GradeType `json:"grade_type"`
	Value          float64          `json:"grade_value"`
	MaxPoints      float64          `json:"max_points"`
	Weight         *float64         `json:"weight,omitempty"`
	GradeDate      time.Time        `json:"grade_date"`
	Comments       string           `json:"comments,omitempty"`
	ExtraCredit    bool             `json:"extra_credit"`
	Dropped        bool             `json:"dropped"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func toGradeResponse(g *models.Grade) gradeResponse {
	return gradeResponse{
		ID:             g.ID,
		StudentID:      g.StudentID,
		CourseID:       g.CourseID,
		AssignmentName: g.AssignmentName,
		Type:           g.Type,
		Value:          g.Value,
		MaxPoints:      g.MaxPoints,
		Weight:         g.Weight,
		GradeDate:      g.GradeDate,
		Comments:       g.Comments,
		ExtraCredit:    g.ExtraCredit,
		Dropped:        g.Dropped,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

type materialResponse struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	ContentType string    `json:"content_type,omitempty"`
	UploadedBy  string    `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toMaterialResponse(m *models.Material) materialResponse {
	return materialResponse{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Title:       m.Title,
		ContentType: m.ContentType,
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt,
	}
}
