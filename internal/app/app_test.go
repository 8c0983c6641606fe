package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogapi/config"
	pubsub "blogapi/internal/adapter/out/pubsub/inmemory"

	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		StorageType: config.StorageMemory,
		HTTP:        config.HTTPConfig{Port: "0", AllowedOrigins: []string{"https://blog.example"}},
		WS:          config.WSConfig{KeepAliveSeconds: 5},
		Auth:        config.AuthConfig{JWTSecret: "secret", BcryptCost: 4},
		Comments:    config.CommentsConfig{RootsScope: "owner"},
	}
}

func TestNewApp_Memory(t *testing.T) {
	t.Parallel()

	a, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	require.Nil(t, a.pool)

	rec := httptest.NewRecorder()
	a.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodOptions, "/view", nil)
	req.Header.Set("Origin", "https://blog.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	a.srv.Handler.ServeHTTP(rec, req)
	require.Equal(t, "https://blog.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewApp_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.Comments.RootsScope = "everyone"
	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)

	cfg = memoryConfig()
	cfg.Auth.JWTSecret = ""
	_, err = NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	a, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	require.NoError(t, <-done)

	_, err = a.bus.Subscribe(context.Background(), 1)
	require.ErrorIs(t, err, pubsub.ErrBusClosed)
}
