package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"blogapi/internal/model"
	"blogapi/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	tokenCookie     = "accessToken"
)

type identityCtxKey struct{}

// requestID tags the request with an id and a logger carrying it.
func requestID(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		ctx := logger.WithLogger(c.Request.Context(), base.With("request_id", id))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		log := logger.FromContext(c.Request.Context())
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http request completed", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("http request completed", fields...)
		default:
			log.Info("http request completed", fields...)
		}
	}
}

func recoverPanic(c *gin.Context, rec any) {
	logger.FromContext(c.Request.Context()).Error("panic recovered",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"panic", rec,
	)
	abort(c, http.StatusInternalServerError, "internal server error")
}

// requireAuth resolves the caller from the bearer header, falling back to the
// access cookie, and rejects the request when neither verifies.
func (h *Handler) requireAuth(c *gin.Context) {
	identity, err := h.auth.Authenticate(c.Request.Context(), credential(c))
	if err != nil {
		fail(c, "authenticate", err)
		return
	}

	ctx := context.WithValue(c.Request.Context(), identityCtxKey{}, identity)
	ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("user_id", identity.UserID))
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func credential(c *gin.Context) string {
	const prefix = "Bearer "
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, prefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(header, prefix)); token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(tokenCookie); err == nil {
		return cookie
	}
	return ""
}

// identityFrom returns the caller resolved by requireAuth, or the zero
// identity on routes it does not guard.
func identityFrom(c *gin.Context) model.Identity {
	id, _ := c.Request.Context().Value(identityCtxKey{}).(model.Identity)
	return id
}
