package models

import "time"

// AcademicStatus tracks a student's standing.
type AcademicStatus string

const (
	AcademicStatusActive    AcademicStatus = "ACTIVE"
	AcademicStatusInactive  AcademicStatus = "INACTIVE"
	AcademicStatusGraduated AcademicStatus = "GRADUATED"
	AcademicStatusSuspended AcademicStatus = "SUSPENDED"
)

// Student is the academic profile linked one-to-one to a User account.
// Code is the human-facing student identifier (unique), distinct from the
// surrogate ID.
type Student struct {
	ID               string
	Code             string
	UserID           string
	DateOfBirth      time.Time
	Address          string
	EmergencyContact string
	EmergencyPhone   string
	EnrollmentDate   time.Time
	AcademicStatus   AcademicStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
