// Package checkservice предоставляет маршруты приложения.
package checkservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/olehsv/check-service/internal/http/handlers/auth/login"
	"github.com/olehsv/check-service/internal/http/handlers/auth/logout"
	"github.com/olehsv/check-service/internal/http/handlers/auth/logoutall"
	"github.com/olehsv/check-service/internal/http/handlers/auth/refresh"
	"github.com/olehsv/check-service/internal/http/handlers/auth/register"
	"github.com/olehsv/check-service/internal/http/handlers/check/client"
	"github.com/olehsv/check-service/internal/http/handlers/check/create"
	"github.com/olehsv/check-service/internal/http/handlers/check/list"
	"github.com/olehsv/check-service/internal/http/handlers/check/read"
	"github.com/olehsv/check-service/internal/http/middlewarectx"
	jwtlib "github.com/olehsv/check-service/internal/lib/jwt"
	authservice "github.com/olehsv/check-service/internal/services/auth"
	checksvc "github.com/olehsv/check-service/internal/services/check"
	sessionservice "github.com/olehsv/check-service/internal/services/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	maker *jwtlib.Maker,
	tokenStore *sessionservice.RedisStore,
	authService *authservice.Service,
	sessionService *sessionservice.Service,
	checkService *checksvc.Service,
	printer *checksvc.ReceiptPrinter,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)
	r.Get("/client/{checkUUID}", client.New(logger, checkService, printer).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(maker, tokenStore, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/refresh-token", refresh.New(logger, sessionService).ServeHTTP)
		r.Delete("/logout", logout.New(logger, sessionService).ServeHTTP)
		r.Delete("/logout-all", logoutall.New(logger, sessionService).ServeHTTP)
		r.Route("/checks", func(r chi.Router) {
			r.Post("/", create.New(logger, checkService).ServeHTTP)
			r.Get("/", list.New(logger, checkService).ServeHTTP)
			r.Get("/{checkUUID}", read.New(logger, checkService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
