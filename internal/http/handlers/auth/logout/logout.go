// Package logout реализует HTTP-обработчик выхода.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/http/middlewarectx"
	"github.com/olehsv/check-service/internal/http/response"
	"github.com/olehsv/check-service/internal/lib/sl"
)

// Service описывает отзыв access-токена.
type Service interface {
	Logout(ctx context.Context, accessToken string) error
}

// Handler обрабатывает запросы выхода.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Отзывает текущий access-токен до его естественного истечения.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Пустой успешный конверт"
// @Router /logout [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accessToken, ok := middlewarectx.AccessTokenFromContext(r.Context())
	if !ok {
		log.Error("access token is missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Err(apperrors.ErrInvalidToken))
		return
	}

	if err := h.service.Logout(r.Context(), accessToken); err != nil {
		log.Error("logout failed", sl.Err(err))
		render.Status(r, response.StatusOf(err))
		render.JSON(w, r, response.Err(err))
		return
	}

	log.Info("logout success")
	render.JSON(w, r, response.OK())
}
