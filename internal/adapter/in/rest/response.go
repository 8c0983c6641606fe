package rest

import (
	"errors"
	"net/http"

	"blogapi/internal/service"
	"blogapi/pkg/logger"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message})
}

// fail answers with the status err maps to. Internal details are logged, never returned.
func fail(c *gin.Context, op string, err error) {
	status, message := statusFor(err)
	log := logger.FromContext(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "op", op, "error", err)
	} else {
		log.Debug("request rejected", "op", op, "status", status, "error", err)
	}
	abort(c, status, message)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "invalid or missing credentials"
	case errors.Is(err, service.ErrParentNotFound):
		return http.StatusNotFound, service.ErrParentNotFound.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "already exists"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
