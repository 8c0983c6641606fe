package rest

import (
	"context"
	"net/http"
	"slices"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/service"

	"github.com/gorilla/websocket"
)

type AuthService interface {
	Signup(ctx context.Context, req service.SignupRequest) (model.User, error)
	Login(ctx context.Context, req service.LoginRequest) (service.LoginResult, error)
	Authenticate(ctx context.Context, token string) (model.Identity, error)
}

type PostService interface {
	CreatePost(ctx context.Context, req service.CreatePostRequest) (model.Post, error)
	GetPosts(ctx context.Context) ([]model.Post, error)
	UpdatePost(ctx context.Context, req service.UpdatePostRequest) (model.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

type CommentService interface {
	CreateComment(ctx context.Context, req service.CreateCommentRequest) (model.Comment, error)
	UpdateComment(ctx context.Context, req service.UpdateCommentRequest) (model.Comment, error)
	DeleteComment(ctx context.Context, commentID, userID int64) ([]int64, error)
	ListRootComments(ctx context.Context, postID, userID int64, scope service.RootScope) ([]model.Comment, error)
	ListReplies(ctx context.Context, commentID int64) ([]model.Comment, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, recipientID int64) ([]model.Notification, error)
	Listen(ctx context.Context, recipientID int64) (<-chan model.Notification, error)
}

type Options struct {
	// RootScope is used when a root listing carries no ?scope= parameter.
	RootScope service.RootScope
	// KeepAlive is the websocket ping interval.
	KeepAlive time.Duration
	// AllowedOrigins limits websocket upgrades. Empty or "*" allows any origin.
	AllowedOrigins []string
}

type Handler struct {
	auth          AuthService
	posts         PostService
	comments      CommentService
	notifications NotificationService

	rootScope service.RootScope
	keepAlive time.Duration
	upgrader  websocket.Upgrader
}

func NewHandler(
	auth AuthService,
	posts PostService,
	comments CommentService,
	notifications NotificationService,
	opts Options,
) *Handler {
	if opts.RootScope == "" {
		opts.RootScope = service.RootScopeOwner
	}
	if opts.KeepAlive <= 0 {
		opts.KeepAlive = 30 * time.Second
	}
	return &Handler{
		auth:          auth,
		posts:         posts,
		comments:      comments,
		notifications: notifications,
		rootScope:     opts.RootScope,
		keepAlive:     opts.KeepAlive,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(opts.AllowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}
