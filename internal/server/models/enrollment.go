package models

import "time"

// EnrollmentStatus tracks an enrollment's lifecycle.
type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentStatusWithdrawn EnrollmentStatus = "WITHDRAWN"
	EnrollmentStatusDropped   EnrollmentStatus = "DROPPED"
	EnrollmentStatusFailed    EnrollmentStatus = "FAILED"
)

// Enrollment links one student to one course. The (StudentID, CourseID)
// pair is unique. Completion fields stay nil until the enrollment is
// completed.
type Enrollment struct {
	ID             string
	StudentID      string
	CourseID       string
	EnrollmentDate time.Time
	Status         EnrollmentStatus
	CompletionDate *time.Time
	FinalGrade     *float64
	GradeLetter    string
	CreditsEarned  *int
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LetterForGrade maps a 0–100 final grade to a letter.
func LetterForGrade(grade float64) string {
	switch {
	case grade >= 90:
		return "A"
	case grade >= 80:
		return "B"
	case grade >= 70:
		return "C"
	case grade >= 60:
		return "D"
	default:
		return "F"
	}
}
