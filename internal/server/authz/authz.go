// Package authz holds the request-scoped authenticated identity, the
// static per-route access policies, and the single evaluator that decides
// allow/deny for every protected operation.
//
// Policies are declared once at route registration and evaluated centrally.
// The evaluator is a pure decision procedure: the only collaborator touch
// is the optional ownership predicate, which may look up a profile row to
// resolve the resource owner.
package authz

import (
	"context"

	"github.com/educagestor/educagestor/internal/common"
)

// Role is an enumerated access level carried by a principal.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// ParseRole converts a string to a Role, accepting the bare name in any
// case. Returns common.ErrorValidation for unknown values.
func ParseRole(s string) (Role, error) {
	switch s {
	case "ADMIN", "admin", "Admin":
		return RoleAdmin, nil
	case "TEACHER", "teacher", "Teacher":
		return RoleTeacher, nil
	case "STUDENT", "student", "Student":
		return RoleStudent, nil
	}
	return "", common.ErrorValidation
}

// Identity is the ephemeral, request-scoped projection of a principal.
// It lives in the request context only and is discarded with the request.
type Identity struct {
	ID       string
	Username string
	Roles    []Role
	Active   bool
}

// HasRole reports whether the identity carries the given role.
func (id *Identity) HasRole(role Role) bool {
	if id == nil {
		return false
	}
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (id *Identity) hasAny(roles []Role) bool {
	for _, r := range roles {
		if id.HasRole(r) {
			return true
		}
	}
	return false
}

// Params carries the path parameters of the current request, as consumed
// by ownership predicates.
type Params map[string]string

// OwnershipFunc decides whether the identity is the legitimate owner of
// the resource addressed by the path parameters. Implementations may look
// up profile rows; errors other than "not found" should be returned as-is
// so the caller can distinguish infrastructure failures from denials.
type OwnershipFunc func(ctx context.Context, id *Identity, params Params) (bool, error)

// Policy is the static access declaration attached to one route.
//
// Roles grant access unconditionally (ANY-of). OwnedRoles grant access
// only when the ownership predicate holds, implementing patterns such as
// "ADMIN or TEACHER may view any student's record, a STUDENT only their
// own". A policy with an empty role set denies everything but is not used
// in practice: public routes simply carry no policy.
type Policy struct {
	Roles      []Role
	OwnedRoles []Role
	Owner      OwnershipFunc
}

// Authorize evaluates the policy for the given identity and path
// parameters.
//
// Deny reasons:
//   - common.ErrInsufficientRole when the identity is anonymous (nil) or
//     carries no role from Roles or OwnedRoles;
//   - common.ErrOwnershipMismatch when the identity qualifies only through
//     OwnedRoles and the ownership predicate does not hold.
//
// A nil return means allow.
func Authorize(ctx context.Context, id *Identity, p Policy, params Params) error {
	if id == nil || !id.Active {
		return common.ErrInsufficientRole
	}

	if id.hasAny(p.Roles) {
		return nil
	}

	if len(p.OwnedRoles) > 0 && id.hasAny(p.OwnedRoles) {
		if p.Owner == nil {
			return common.ErrOwnershipMismatch
		}
		owns, err := p.Owner(ctx, id, params)
		if err != nil {
			return err
		}
		if owns {
			return nil
		}
		return common.ErrOwnershipMismatch
	}

	return common.ErrInsufficientRole
}
