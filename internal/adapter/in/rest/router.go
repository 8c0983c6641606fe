package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router builds the gin engine with every route of the API.
func (h *Handler) Router(log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		requestID(log),
		accessLog(),
		gin.CustomRecovery(recoverPanic),
	)

	r.GET("/healthz", func(c *gin.Context) {
		ok(c, http.StatusOK, "ok", nil)
	})

	r.POST("/signup", h.signup)
	r.POST("/login", h.login)
	r.POST("/write", h.createPost)

	authed := r.Group("/", h.requireAuth)
	{
		authed.GET("/logout", h.logout)
		authed.GET("/check-auth", h.checkAuth)

		authed.PUT("/edit/:blogId", h.updatePost)
		authed.GET("/view", h.listPosts)
		authed.DELETE("/delete/:blogId", h.deletePost)

		authed.POST("/comment/:postId", h.createComment)
		authed.GET("/comment/:postId", h.listRootComments)
		authed.PUT("/comment/update/:id", h.updateComment)
		authed.DELETE("/comment/:id", h.deleteComment)
		authed.GET("/replies/:id", h.listReplies)

		authed.GET("/notifications", h.listNotifications)
		authed.GET("/notifications/ws", h.streamNotifications)
	}

	return r
}
