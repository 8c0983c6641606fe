package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blogapi/config"
	"blogapi/internal/adapter/in/rest"
	pubsub "blogapi/internal/adapter/out/pubsub/inmemory"
	"blogapi/internal/adapter/out/security"
	memstore "blogapi/internal/adapter/out/storage/inmemory"
	pgstore "blogapi/internal/adapter/out/storage/postgres"
	"blogapi/internal/migrate"
	"blogapi/internal/service"
	"blogapi/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
)

type App struct {
	cfg  config.Config
	srv  *http.Server
	pool *pgxpool.Pool
	bus  *pubsub.NotificationBus
}

type storages struct {
	users         service.UserStorage
	posts         service.PostStorage
	comments      service.CommentStorage
	notifications service.NotificationStorage
	tx            service.TxManager
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	scope, err := service.ParseRootScope(cfg.Comments.RootsScope)
	if err != nil {
		return nil, fmt.Errorf("COMMENT_ROOTS_SCOPE: %w", err)
	}
	signer, err := security.NewJWTSigner(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, err
	}

	var (
		st   storages
		pool *pgxpool.Pool
	)
	switch cfg.StorageType {
	case config.StoragePostgres:
		if err := migrate.Up(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MigrationsDir); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err = pgxpool.New(ctx, cfg.Postgres.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("pgxpool: %w", err)
		}
		st = storages{
			users:         pgstore.NewUserStorage(pool, trmpgx.DefaultCtxGetter),
			posts:         pgstore.NewPostStorage(pool, trmpgx.DefaultCtxGetter),
			comments:      pgstore.NewCommentStorage(pool, trmpgx.DefaultCtxGetter),
			notifications: pgstore.NewNotificationStorage(pool, trmpgx.DefaultCtxGetter),
			tx:            manager.Must(trmpgx.NewDefaultFactory(pool)),
		}

	default:
		st = storages{
			users:         memstore.NewUserStorage(),
			posts:         memstore.NewPostStorage(),
			comments:      memstore.NewCommentStorage(),
			notifications: memstore.NewNotificationStorage(),
			tx:            memstore.NewTxManager(),
		}
	}

	bus := pubsub.New(0)

	notificationSvc := service.NewNotificationService(st.notifications, bus)
	authSvc := service.NewAuthService(st.users, security.NewBcryptHasher(cfg.Auth.BcryptCost), signer)
	postSvc := service.NewPostService(st.posts, st.comments, notificationSvc, st.tx)
	commentSvc := service.NewCommentService(st.comments, st.posts, notificationSvc, st.tx)

	h := rest.NewHandler(authSvc, postSvc, commentSvc, notificationSvc, rest.Options{
		RootScope:      scope,
		KeepAlive:      time.Duration(cfg.WS.KeepAliveSeconds) * time.Second,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
	})

	addr := ":" + cfg.HTTP.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.Handler(h.Router(log)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("app initialized", "addr", addr, "storage", cfg.StorageType, "roots_scope", scope)
	return &App{cfg: cfg, srv: srv, pool: pool, bus: bus}, nil
}

func (a *App) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := a.srv.Shutdown(shCtx)
		a.close()
		return err

	case err := <-errCh:
		a.close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// close ends live notification streams, which Shutdown does not wait for,
// then releases the pool.
func (a *App) close() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
