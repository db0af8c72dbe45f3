package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/server/authz"
)

func (s *Server) getProfile(c *gin.Context) {
	identity := identityFrom(c)
	user, err := s.userService.GetByID(c.Request.Context(), identity.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

func (s *Server) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	identity := identityFrom(c)
	user, err := s.userService.GetByID(c.Request.Context(), identity.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber

	updated, err := s.userService.UpdateProfile(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(updated))
}

func (s *Server) listUsers(c *gin.Context) {
	page, err := s.userService.List(c.Request.Context(), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toUserResponse))
}

func (s *Server) getUser(c *gin.Context) {
	user, err := s.userService.GetByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) getUserByUsername(c *gin.Context) {
	user, err := s.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) listUsersByRole(c *gin.Context) {
	role, err := authz.ParseRole(c.Param("role"))
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := s.userService.ListByRole(c.Request.Context(), role, pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toUserResponse))
}

func (s *Server) searchUsers(c *gin.Context) {
	page, err := s.userService.Search(c.Request.Context(), c.Query("q"), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(page, toUserResponse))
}

func (s *Server) activateUser(c *gin.Context) {
	if err := s.userService.Activate(c.Request.Context(), c.Param("userId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deactivateUser(c *gin.Context) {
	if err := s.userService.Deactivate(c.Request.Context(), c.Param("userId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
