package rest

import (
	"context"
	"net/http"
	"time"

	"blogapi/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

func (h *Handler) listNotifications(c *gin.Context) {
	list, err := h.notifications.GetNotifications(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		fail(c, "list notifications", err)
		return
	}
	ok(c, http.StatusOK, "notifications", list)
}

// streamNotifications pushes the caller's new notifications over a websocket
// until either side goes away.
func (h *Handler) streamNotifications(c *gin.Context) {
	identity := identityFrom(c)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// subscribe before upgrading so a failure can still be answered with an envelope
	ch, err := h.notifications.Listen(ctx, identity.UserID)
	if err != nil {
		fail(c, "listen notifications", err)
		return
	}

	log := logger.FromContext(ctx)
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	log.Info("notification stream opened")

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case n, open := <-ch:
			if !open {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(n); err != nil {
				log.Debug("notification stream closed", "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				log.Debug("notification stream closed", "error", err)
				return
			}
		}
	}
}
