package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/inorbyt/chain-sync/internal/api/shared/errors"
	"github.com/inorbyt/chain-sync/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, err error) {
	status, apiErr := apierrors.FromError(err, "Validation failed")
	if status == http.StatusInternalServerError {
		status, apiErr = http.StatusBadRequest, apierrors.NewValidationError(err.Error())
	}
	c.JSON(status, apiErr)
}

// respondError maps an executor error to its status. Server errors are logged
// and their cause is not exposed.
func respondError(c *gin.Context, err error, message string) {
	status, apiErr := apierrors.FromError(err, message)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.String("path", c.FullPath()),
			zap.String("message", message),
		)
	}
	c.JSON(status, apiErr)
}
