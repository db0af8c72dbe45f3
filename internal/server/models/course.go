package models

import "time"

// CourseStatus tracks a course's lifecycle.
type CourseStatus string

const (
	CourseStatusActive    CourseStatus = "ACTIVE"
	CourseStatusInactive  CourseStatus = "INACTIVE"
	CourseStatusCompleted CourseStatus = "COMPLETED"
	CourseStatusCancelled CourseStatus = "CANCELLED"
)

// Course is a teachable unit. TeacherID is empty until a teacher is
// assigned.
type Course struct {
	ID          string
	Code        string
	Name        string
	Description string
	Credits     int
	TeacherID   string
	StartDate   time.Time
	EndDate     time.Time
	Schedule    string
	Classroom   string
	MaxStudents int
	Status      CourseStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
