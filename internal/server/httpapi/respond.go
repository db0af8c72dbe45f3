package httpapi

import (
	"errors"
	"net/http"

	"github.com/educagestor/educagestor/internal/common"
	"github.com/educagestor/educagestor/internal/pagex"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError maps the sentinel error taxonomy onto HTTP statuses. Messages
// stay generic so responses never reveal which check failed.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorNoRolesSpecified):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrInsufficientRole),
		errors.Is(err, common.ErrOwnershipMismatch):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "already exists"})
	case errors.Is(err, common.ErrTooManyRequests):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// pageParams reads the pagination query params shared by list endpoints.
func pageParams(c *gin.Context) pagex.Params {
	var q struct {
		Page int    `form:"page"`
		Size int    `form:"size"`
		Sort string `form:"sort"`
	}
	// Bad values fall back to defaults rather than failing the request.
	_ = c.ShouldBindQuery(&q)
	return pagex.Params{Page: q.Page, Size: q.Size, Sort: q.Sort}.Normalize()
}
