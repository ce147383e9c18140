package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
)

// OK writes a success envelope: {"ok": true} merged with fields.
func OK(c *gin.Context, fields gin.H) {
	body := gin.H{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes {"ok": false, "error": msg} with the given status.
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"ok": false, "error": msg})
}

// AbortFail is Fail for middleware: it also stops the handler chain.
func AbortFail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": false, "error": msg})
}

// FromError maps the error taxonomy to a status and writes the failure
// envelope. Unclassified errors degrade to 500 with the underlying
// message exposed.
func FromError(c *gin.Context, err error) {
	Fail(c, StatusOf(err), err.Error())
}

// StatusOf resolves the HTTP status for a service error.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
