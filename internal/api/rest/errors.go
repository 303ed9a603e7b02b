package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seedgarden/blessing-engine/internal/api/shared/errors"
	"github.com/seedgarden/blessing-engine/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.NewNotFoundError(message, details...))
}

// respondProofNotFound responds with a proof-specific not found error
func respondProofNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.NewProofNotFoundError(message, details...))
}

// respondServiceUnavailable responds with a service unavailable error
func respondServiceUnavailable(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusServiceUnavailable, errors.NewServiceUnavailableError(message, details...))
}

// respondInternalError responds with an internal server error and logs it
func respondInternalError(c *gin.Context, err error, message string) {
	logger.Error(err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, errors.NewInternalError(message))
}
