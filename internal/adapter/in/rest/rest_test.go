package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	pubsub "blogapi/internal/adapter/out/pubsub/inmemory"
	"blogapi/internal/adapter/out/security"
	"blogapi/internal/adapter/out/storage/inmemory"
	"blogapi/internal/model"
	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testAPI struct {
	t      *testing.T
	router http.Handler
	signer *security.JWTSigner
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	signer, err := security.NewJWTSigner(testSecret)
	require.NoError(t, err)

	posts := inmemory.NewPostStorage()
	comments := inmemory.NewCommentStorage()
	tx := inmemory.NewTxManager()
	notifications := service.NewNotificationService(inmemory.NewNotificationStorage(), pubsub.New(0))

	h := NewHandler(
		service.NewAuthService(inmemory.NewUserStorage(), security.NewBcryptHasher(bcrypt.MinCost), signer),
		service.NewPostService(posts, comments, notifications, tx),
		service.NewCommentService(comments, posts, notifications, tx),
		notifications,
		Options{KeepAlive: 50 * time.Millisecond},
	)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testAPI{t: t, router: h.Router(log), signer: signer}
}

func (a *testAPI) do(method, path, token string, body any) (int, response) {
	a.t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var out response
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func decode[T any](t *testing.T, r response) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(r.Data, &out))
	return out
}

// register signs a user up and logs them in, returning the token and user id.
func (a *testAPI) register(name string) (string, int64) {
	a.t.Helper()

	email := name + "@example.com"
	code, _ := a.do(http.MethodPost, "/signup", "", gin.H{"username": name, "email": email, "password": "pw-" + name})
	require.Equal(a.t, http.StatusCreated, code)

	code, resp := a.do(http.MethodPost, "/login", "", gin.H{"email": email, "password": "pw-" + name})
	require.Equal(a.t, http.StatusOK, code)
	data := decode[loginData](a.t, resp)
	return data.Token, data.User.UserID
}

func (a *testAPI) createPost(title string) int64 {
	a.t.Helper()

	code, resp := a.do(http.MethodPost, "/write", "", gin.H{"title": title, "body": "body of " + title})
	require.Equal(a.t, http.StatusCreated, code)
	return decode[model.Post](a.t, resp).ID
}

func (a *testAPI) comment(token string, postID int64, text string, parent *int64) (int, model.Comment) {
	a.t.Helper()

	body := gin.H{"text": text}
	if parent != nil {
		body["parentComment"] = *parent
	}
	code, resp := a.do(http.MethodPost, fmt.Sprintf("/comment/%d", postID), token, body)
	if code != http.StatusCreated {
		return code, model.Comment{}
	}
	return code, decode[model.Comment](a.t, resp)
}

func TestScenario_ReplyNotifiesAndRootDeleteCascades(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	tokenA, userA := api.register("a")
	tokenB, _ := api.register("b")

	postID := api.createPost("P")

	code, c1 := api.comment(tokenB, postID, "hi", nil)
	require.Equal(t, http.StatusCreated, code)
	code, c2 := api.comment(tokenA, postID, "thanks", &c1.ID)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, c1.ID, *c2.ParentID)

	code, resp := api.do(http.MethodGet, "/notifications", tokenB, nil)
	require.Equal(t, http.StatusOK, code)
	notes := decode[[]model.Notification](t, resp)
	require.Len(t, notes, 1)
	require.Equal(t, userA, notes[0].SenderID)
	require.Equal(t, c2.ID, notes[0].CommentID)

	code, resp = api.do(http.MethodDelete, fmt.Sprintf("/comment/%d", c1.ID), tokenB, nil)
	require.Equal(t, http.StatusOK, code)
	deleted := decode[map[string][]int64](t, resp)
	require.ElementsMatch(t, []int64{c1.ID, c2.ID}, deleted["deleted"])

	code, resp = api.do(http.MethodGet, fmt.Sprintf("/comment/%d?scope=post", postID), tokenA, nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, decode[[]model.Comment](t, resp))

	code, _ = api.do(http.MethodGet, fmt.Sprintf("/replies/%d", c1.ID), tokenA, nil)
	require.Equal(t, http.StatusNotFound, code)

	code, resp = api.do(http.MethodGet, "/notifications", tokenB, nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, decode[[]model.Notification](t, resp))
}

func TestAuth(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	token, userID := api.register("ann")

	code, resp := api.do(http.MethodPost, "/signup", "", gin.H{"username": "ann2", "email": "ann@example.com", "password": "x"})
	require.Equal(t, http.StatusConflict, code)
	require.False(t, resp.Success)

	code, resp = api.do(http.MethodPost, "/signup", "", gin.H{"username": "", "email": "nope", "password": "x"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "invalid request: username is required; email must be a valid email", resp.Message)

	for _, pw := range []string{strings.Repeat("p", 100), strings.Repeat("é", 40)} {
		code, resp = api.do(http.MethodPost, "/signup", "", gin.H{"username": "long", "email": "long@example.com", "password": pw})
		require.Equal(t, http.StatusBadRequest, code, pw)
		require.Contains(t, resp.Message, "password must be at most 72")
	}

	wrongPassword, wrongResp := api.do(http.MethodPost, "/login", "", gin.H{"email": "ann@example.com", "password": "bad"})
	unknownEmail, unknownResp := api.do(http.MethodPost, "/login", "", gin.H{"email": "who@example.com", "password": "bad"})
	require.Equal(t, http.StatusUnauthorized, wrongPassword)
	require.Equal(t, http.StatusUnauthorized, unknownEmail)
	require.Equal(t, wrongResp, unknownResp)

	code, resp = api.do(http.MethodGet, "/check-auth", token, nil)
	require.Equal(t, http.StatusOK, code)
	check := decode[map[string]any](t, resp)
	require.Equal(t, true, check["isAuthenticated"])

	code, _ = api.do(http.MethodGet, "/check-auth", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = api.do(http.MethodGet, "/view", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	past := time.Now().Add(-48 * time.Hour)
	expired, err := api.signer.Sign(model.Identity{UserID: userID, Role: model.RoleUser}, past, past.Add(service.TokenTTL))
	require.NoError(t, err)
	code, _ = api.do(http.MethodGet, "/view", expired, nil)
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestAuth_CookieAndLogout(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.register("cat")

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(`{"email":"cat@example.com","password":"pw-cat"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, tokenCookie, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	require.True(t, cookies[0].Secure)
	require.Equal(t, int(service.TokenTTL.Seconds()), cookies[0].MaxAge)

	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Empty(t, cleared[0].Value)
	require.Negative(t, cleared[0].MaxAge)
}

func TestPosts(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	token, _ := api.register("pat")

	code, _ := api.do(http.MethodPost, "/write", "", gin.H{"title": "", "body": "b"})
	require.Equal(t, http.StatusBadRequest, code)

	first := api.createPost("first")
	second := api.createPost("second")

	code, resp := api.do(http.MethodGet, "/view", token, nil)
	require.Equal(t, http.StatusOK, code)
	posts := decode[[]model.Post](t, resp)
	require.Len(t, posts, 2)
	require.Equal(t, second, posts[0].ID)

	code, resp = api.do(http.MethodPut, fmt.Sprintf("/edit/%d", first), token, gin.H{"title": "renamed", "body": "b", "author": "pat"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "renamed", decode[model.Post](t, resp).Title)

	code, _ = api.do(http.MethodPut, "/edit/999", token, gin.H{"title": "x", "body": "y"})
	require.Equal(t, http.StatusNotFound, code)

	code, _ = api.do(http.MethodPut, "/edit/abc", token, gin.H{"title": "x", "body": "y"})
	require.Equal(t, http.StatusBadRequest, code)

	_, c := api.comment(token, first, "on first", nil)
	code, _ = api.do(http.MethodDelete, fmt.Sprintf("/delete/%d", first), token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodDelete, fmt.Sprintf("/delete/%d", first), token, nil)
	require.Equal(t, http.StatusNotFound, code)

	code, _ = api.do(http.MethodGet, fmt.Sprintf("/replies/%d", c.ID), token, nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestComments_Validation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	token, _ := api.register("val")

	postID := api.createPost("P")
	otherPost := api.createPost("Q")

	code, resp := api.do(http.MethodPost, fmt.Sprintf("/comment/%d", postID), token, gin.H{"text": ""})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "invalid request: text is required", resp.Message)

	code, resp = api.do(http.MethodGet, fmt.Sprintf("/comment/%d", postID), token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, decode[[]model.Comment](t, resp))

	code, _ = api.comment(token, 999, "no post", nil)
	require.Equal(t, http.StatusNotFound, code)

	missing := int64(12345)
	code, _ = api.comment(token, postID, "orphan", &missing)
	require.Equal(t, http.StatusNotFound, code)

	_, root := api.comment(token, otherPost, "elsewhere", nil)
	code, _ = api.comment(token, postID, "cross-post", &root.ID)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(http.MethodGet, fmt.Sprintf("/comment/%d?scope=everyone", postID), token, nil)
	require.Equal(t, http.StatusBadRequest, code)

	code, resp = api.do(http.MethodGet, "/notifications", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, decode[[]model.Notification](t, resp))
}

func TestComments_OwnershipAndEdits(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	tokenA, _ := api.register("a")
	tokenB, _ := api.register("b")
	postID := api.createPost("P")

	_, root := api.comment(tokenA, postID, "root", nil)
	_, reply := api.comment(tokenB, postID, "reply", &root.ID)

	code, _ := api.do(http.MethodPut, fmt.Sprintf("/comment/update/%d", root.ID), tokenB, gin.H{"text": "hijacked"})
	require.Equal(t, http.StatusNotFound, code)
	code, _ = api.do(http.MethodDelete, fmt.Sprintf("/comment/%d", root.ID), tokenB, nil)
	require.Equal(t, http.StatusNotFound, code)

	code, resp := api.do(http.MethodGet, fmt.Sprintf("/comment/%d", postID), tokenA, nil)
	require.Equal(t, http.StatusOK, code)
	roots := decode[[]model.Comment](t, resp)
	require.Len(t, roots, 1)
	require.Equal(t, "root", roots[0].Text)

	// owner scope hides other authors' roots, post scope shows them
	code, resp = api.do(http.MethodGet, fmt.Sprintf("/comment/%d", postID), tokenB, nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, decode[[]model.Comment](t, resp))
	code, resp = api.do(http.MethodGet, fmt.Sprintf("/comment/%d?scope=post", postID), tokenB, nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, decode[[]model.Comment](t, resp), 1)

	code, resp = api.do(http.MethodPut, fmt.Sprintf("/comment/update/%d", reply.ID), tokenB, gin.H{"text": "reply v2", "isRead": true})
	require.Equal(t, http.StatusOK, code)
	updated := decode[model.Comment](t, resp)
	require.Equal(t, "reply v2", updated.Text)
	require.True(t, updated.IsRead)

	code, resp = api.do(http.MethodGet, "/notifications", tokenA, nil)
	require.Equal(t, http.StatusOK, code)
	notes := decode[[]model.Notification](t, resp)
	require.Len(t, notes, 1)
	require.Equal(t, "edited: reply v2", notes[0].Message)
}

func TestComments_DeleteReplyKeepsGrandchildren(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	tokenA, userA := api.register("a")
	tokenB, _ := api.register("b")
	tokenC, _ := api.register("c")
	postID := api.createPost("P")

	_, root := api.comment(tokenC, postID, "root", nil)
	_, mid := api.comment(tokenB, postID, "mid", &root.ID)
	_, leaf := api.comment(tokenA, postID, "leaf", &mid.ID)

	code, resp := api.do(http.MethodDelete, fmt.Sprintf("/comment/%d", mid.ID), tokenB, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []int64{mid.ID}, decode[map[string][]int64](t, resp)["deleted"])

	code, resp = api.do(http.MethodGet, fmt.Sprintf("/replies/%d", root.ID), tokenA, nil)
	require.Equal(t, http.StatusOK, code)
	replies := decode[[]model.Comment](t, resp)
	require.Len(t, replies, 1)
	require.Equal(t, leaf.ID, replies[0].ID)
	require.Equal(t, root.ID, *replies[0].ParentID)

	// mid's notification is gone and leaf's follows it to the root author
	code, resp = api.do(http.MethodGet, "/notifications", tokenB, nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, decode[[]model.Notification](t, resp))

	code, resp = api.do(http.MethodGet, "/notifications", tokenC, nil)
	require.Equal(t, http.StatusOK, code)
	notes := decode[[]model.Notification](t, resp)
	require.Len(t, notes, 1)
	require.Equal(t, leaf.ID, notes[0].CommentID)
	require.Equal(t, userA, notes[0].SenderID)
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	code, resp := api.do(http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, resp.Success)
}

func TestRequestIDIsEchoed(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	require.Equal(t, "req-1", rec.Header().Get(requestIDHeader))

	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))
}
