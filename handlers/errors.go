package handlers

import (
	"errors"
	"net/http"

	"github.com/aaauuugggghhhh/unihub-event-management/types"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error onto the API envelope and status code.
func respondError(c *gin.Context, err error) {
	switch {
	case types.IsNotFound(err):
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, err.Error()))
	case types.IsValidation(err):
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
	case types.IsRegistrationClosed(err):
		c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeRegistrationClosed, err.Error()))
	case errors.Is(err, types.ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeAlreadyRegistered, err.Error()))
	case errors.Is(err, types.ErrEmailTaken):
		c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeConflict, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
	}
}
