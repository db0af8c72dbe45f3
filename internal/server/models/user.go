// Package models defines the server-side domain records as plain structs.
// Field validation and JSON shapes live at the HTTP layer; persistence
// mapping lives in the repositories.
package models

import (
	"time"

	"github.com/educagestor/educagestor/internal/server/authz"
)

// User is the stored principal: credentials, profile fields and role set.
// Users are never physically deleted; deactivation clears Active.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Roles        []authz.Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
