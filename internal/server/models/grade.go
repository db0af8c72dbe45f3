package models

import "time"

// GradeType categorizes a graded item.
type GradeType string

const (
	GradeTypeAssignment    GradeType = "ASSIGNMENT"
	GradeTypeQuiz          GradeType = "QUIZ"
	GradeTypeExam          GradeType = "EXAM"
	GradeTypeProject       GradeType = "PROJECT"
	GradeTypeParticipation GradeType = "PARTICIPATION"
	GradeTypeHomework      GradeType = "HOMEWORK"
	GradeTypeLab           GradeType = "LAB"
	GradeTypeFinalExam     GradeType = "FINAL_EXAM"
	GradeTypeMidterm       GradeType = "MIDTERM"
	GradeTypeOther         GradeType = "OTHER"
)

// Grade is one graded item for a student in a course. Weight is nil when
// the item carries the default weight of 1. Dropped grades are excluded
// from averages.
type Grade struct {
	ID             string
	StudentID      string
	CourseID       string
	AssignmentName string
	Type           GradeType
	Value          float64
	MaxPoints      float64
	Weight         *float64
	GradeDate      time.Time
	Comments       string
	ExtraCredit    bool
	Dropped        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
