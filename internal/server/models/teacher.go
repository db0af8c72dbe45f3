package models

import "time"

// EmploymentStatus tracks a teacher's standing.
type EmploymentStatus string

const (
	EmploymentStatusActive  EmploymentStatus = "ACTIVE"
	EmploymentStatusOnLeave EmploymentStatus = "ON_LEAVE"
	EmploymentStatusRetired EmploymentStatus = "RETIRED"
)

// Teacher is the staff profile linked one-to-one to a User account.
type Teacher struct {
	ID               string
	EmployeeID       string
	UserID           string
	Department       string
	Specialization   string
	Qualifications   string
	HireDate         time.Time
	OfficeLocation   string
	OfficeHours      string
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
