package checkservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/olehsv/check-service/internal/cache"
	"github.com/olehsv/check-service/internal/config"
	jwtlib "github.com/olehsv/check-service/internal/lib/jwt"
	"github.com/olehsv/check-service/internal/lib/password"
	"github.com/olehsv/check-service/internal/migrations"
	authservice "github.com/olehsv/check-service/internal/services/auth"
	checksvc "github.com/olehsv/check-service/internal/services/check"
	sessionservice "github.com/olehsv/check-service/internal/services/session"
	"github.com/olehsv/check-service/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	maker, err := jwtlib.NewMaker(cfg.Auth.SecretKey, cfg.Auth.Algorithm)
	if err != nil {
		return nil, err
	}
	hasher := password.NewHasher(cfg.Auth.SecretKey)

	tokenStore := sessionservice.NewRedisStore(cacheRedis)
	sessionService := sessionservice.New(tokenStore, db, maker,
		cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	authService := authservice.New(db, sessionService, hasher)
	checkService := checksvc.New(db)
	printer := checksvc.NewReceiptPrinter(cfg.Receipt)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, maker, tokenStore, authService, sessionService, checkService, printer)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
