package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Status maps an error to the HTTP status a handler should answer with.
func Status(err error) int {
	if _, ok := AsBusiness(err); ok {
		return http.StatusBadRequest
	}
	switch gateway.KindOf(err) {
	case gateway.KindValidation:
		return http.StatusBadRequest
	case gateway.KindPermission:
		return http.StatusForbidden
	case gateway.KindNotFound:
		return http.StatusNotFound
	case gateway.KindConflict:
		return http.StatusConflict
	case gateway.KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Message returns the text shown to the user for err. Business errors carry
// their own message; gateway errors are described by kind, never by the
// driver's text.
func Message(err error, action string) string {
	if be, ok := AsBusiness(err); ok {
		return be.Error()
	}
	switch gateway.KindOf(err) {
	case gateway.KindPermission:
		return "Permission denied. You are not allowed to " + action + "."
	case gateway.KindNotFound:
		return "Not found."
	case gateway.KindConflict:
		return "Failed to " + action + ": conflicting data."
	case gateway.KindUnavailable:
		return "Service temporarily unavailable. Please try again."
	case gateway.KindValidation:
		return "Failed to " + action + ": invalid data."
	}
	return "Failed to " + action + "."
}

// Code returns the machine readable code for err.
func Code(err error, fallback string) string {
	if be, ok := AsBusiness(err); ok {
		return be.Code
	}
	switch k := gateway.KindOf(err); k {
	case gateway.KindUnknown, "":
		return fallback
	default:
		return string(k)
	}
}

// FromError writes err using the mapping above and attaches it to the
// context for the request logger and metrics.
func FromError(c *gin.Context, err error, fallbackCode, action string) {
	_ = c.Error(err)
	Write(c, Status(err), Code(err, fallbackCode), Message(err, action))
}
