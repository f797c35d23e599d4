// Package middlewarectx содержит HTTP middleware: проверку access-токена
// с черным списком и ограничитель частоты запросов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	jwtlib "github.com/olehsv/check-service/internal/lib/jwt"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/http/response"
	"github.com/olehsv/check-service/internal/lib/sl"
	"github.com/olehsv/check-service/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserKey — ключ снимка пользователя в контексте.
	UserKey Key = "user"
	// AccessTokenKey — ключ access-токена в контексте.
	AccessTokenKey Key = "access_token"
)

// BlacklistChecker проверяет, отозван ли access-токен.
type BlacklistChecker interface {
	IsBlacklisted(ctx context.Context, accessToken string) (bool, error)
}

// JWTMiddleware возвращает middleware, которое проверяет bearer-токен:
// подпись, срок действия и черный список. При успехе кладет в контекст
// снимок пользователя из токена и сам токен; поход в базу не нужен.
func JWTMiddleware(maker *jwtlib.Maker, store BlacklistChecker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Err(apperrors.ErrInvalidToken))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := maker.Parse(tokenStr)
			if err != nil || claims.Data == nil {
				if err != nil {
					log.Error("invalid or expired token", sl.Err(err))
				} else {
					log.Error("token carries no user snapshot")
				}
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Err(apperrors.ErrInvalidToken))
				return
			}

			blacklisted, err := store.IsBlacklisted(r.Context(), tokenStr)
			if err != nil {
				log.Error("blacklist lookup failed", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Err(err))
				return
			}
			if blacklisted {
				log.Error("token is blacklisted")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Err(apperrors.ErrInvalidToken))
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, *claims.Data)
			ctx = context.WithValue(ctx, AccessTokenKey, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext возвращает снимок пользователя, положенный JWTMiddleware.
func UserFromContext(ctx context.Context) (models.UserSnapshot, bool) {
	user, ok := ctx.Value(UserKey).(models.UserSnapshot)
	return user, ok
}

// AccessTokenFromContext возвращает access-токен текущего запроса.
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(AccessTokenKey).(string)
	return token, ok
}
