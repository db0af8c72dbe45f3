package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/server/auth"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// identityFrom returns the authenticated identity attached to the request,
// or nil for anonymous requests.
func identityFrom(c *gin.Context) *authz.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*authz.Identity)
	return id
}

// authenticate resolves the Authorization header into a request identity.
// It never rejects a request: any failure (no header, wrong scheme, bad or
// expired token, unknown or deactivated account) downgrades the request to
// anonymous and leaves the denial to the per-route policy.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			c.Next()
			return
		}
		tokenString, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || tokenString == "" {
			s.logger.Warn(c.Request.Context(), "malformed authorization header, proceeding anonymous")
			c.Next()
			return
		}

		subject, err := s.codec.Verify(tokenString, auth.TokenKindAccess)
		if err != nil {
			s.logger.Warn(c.Request.Context(), "access token rejected, proceeding anonymous", "reason", err)
			c.Next()
			return
		}

		user, err := s.userService.GetByID(c.Request.Context(), subject)
		if err != nil {
			if !errors.Is(err, common.ErrorNotFound) {
				s.logger.Error(c.Request.Context(), "identity lookup failed", "error", err)
			}
			c.Next()
			return
		}
		if !user.Active {
			c.Next()
			return
		}

		c.Set(identityKey, &authz.Identity{
			ID:       user.ID,
			Username: user.Username,
			Roles:    user.Roles,
			Active:   user.Active,
		})
		c.Next()
	}
}

// require enforces the route's access policy. Anonymous denials map to 401
// and authenticated denials to 403, both with the same bare message.
func (s *Server) require(policy authz.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFrom(c)

		params := authz.Params{}
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		err := authz.Authorize(c.Request.Context(), identity, policy, params)
		if err == nil {
			c.Next()
			return
		}

		if errors.Is(err, common.ErrInsufficientRole) || errors.Is(err, common.ErrOwnershipMismatch) {
			status := http.StatusForbidden
			if identity == nil {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, ErrorResponse{Error: "access denied"})
			return
		}

		s.logger.Error(c.Request.Context(), "authorization check failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// studentResolver is the slice of StudentService the ownership predicate
// needs.
type studentResolver interface {
	GetByID(ctx context.Context, id string) (*models.Student, error)
}

// studentOwnership allows a student through routes addressing their own
// profile: the :studentId path segment must resolve to a student row whose
// linked account is the caller.
func studentOwnership(resolver studentResolver) authz.OwnershipFunc {
	return func(ctx context.Context, id *authz.Identity, params authz.Params) (bool, error) {
		studentID := params["studentId"]
		if studentID == "" {
			return false, nil
		}
		student, err := resolver.GetByID(ctx, studentID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return false, nil
			}
			return false, err
		}
		return student.UserID == id.ID, nil
	}
}
