package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/pkg/errors"
)

// respondError maps typed errors onto HTTP statuses. Unknown errors are logged and hidden.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var status int
	switch {
	case errors.IsAuth(err):
		status = http.StatusUnauthorized
	case errors.IsForbidden(err):
		status = http.StatusForbidden
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsInvalidStateTransition(err), errors.IsUnavailable(err):
		status = http.StatusConflict
	default:
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": err.Error(),
	})
}
