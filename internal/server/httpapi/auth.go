package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/server/authz"
	"github.com/educagestor/educagestor/internal/server/services"
)

type registerRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	PhoneNumber string   `json:"phone_number"`
	Roles       []string `json:"roles"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	roles := make([]authz.Role, 0, len(req.Roles))
	for _, r := range req.Roles {
		role, err := authz.ParseRole(r)
		if err != nil {
			writeError(c, common.ErrorValidation)
			return
		}
		roles = append(roles, role)
	}

	session, err := s.authService.Register(c.Request.Context(), services.RegisterRequest{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Roles:       roles,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(session))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	session, err := s.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		writeError(c, common.ErrInvalidRefreshToken)
		return
	}

	session, err := s.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// logout is an acknowledgement only. Tokens are self-contained and not
// stored server-side, so ending a session means the client discards them;
// outstanding tokens stay valid until they expire.
func (s *Server) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
