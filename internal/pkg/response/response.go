package response

import (
	"errors"
	"net/http"

	"foodie/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// Success writes {"success": true, ...payload}.
func Success(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"code":    code,
		"error":   message,
	})
}

// FromError maps an apperr kind to its status and code. Unknown errors become
// a 500 without leaking their text.
func FromError(c *gin.Context, err error) {
	status, code := Classify(err)
	message := apperr.Message(err)
	if code == "INTERNAL_ERROR" {
		message = "Internal Server Error"
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Error(c, status, code, message)
}

func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, apperr.ErrInvalidState):
		return http.StatusBadRequest, "INVALID_STATE"
	case errors.Is(err, apperr.ErrPersistence):
		return http.StatusInternalServerError, "PERSISTENCE_FAILURE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
