package models

import "time"

// Material is course content (syllabus, handout, slides) whose bytes live
// in object storage under StorageKey; only metadata is kept in the
// database. Uploads and downloads go through presigned URLs.
type Material struct {
	ID          string
	CourseID    string
	Title       string
	StorageKey  string
	ContentType string
	UploadedBy  string
	CreatedAt   time.Time
}
