package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogapi/internal/model"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestNotificationStream(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	srv := httptest.NewServer(api.router)
	defer srv.Close()

	tokenA, userA := api.register("a")
	tokenB, userB := api.register("b")
	postID := api.createPost("P")
	_, root := api.comment(tokenA, postID, "root", nil)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/notifications/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Authorization": {"Bearer " + tokenA}})
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	// the subscription exists once the handshake completes
	_, reply := api.comment(tokenB, postID, "hey", &root.ID)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var n model.Notification
	require.NoError(t, conn.ReadJSON(&n))
	require.Equal(t, reply.ID, n.CommentID)
	require.Equal(t, userA, n.RecipientID)
	require.Equal(t, userB, n.SenderID)
	require.Equal(t, "hey", n.Message)
}
