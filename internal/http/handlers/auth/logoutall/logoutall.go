// Package logoutall реализует HTTP-обработчик выхода со всех устройств.
package logoutall

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

// Service описывает отзыв всех сессий пользователя.
type Service interface {
	LogoutAll(ctx context.Context, userUID string) error
}

// Handler обрабатывает запросы выхода со всех устройств.
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
// @Summary Выход со всех устройств
// @Description Отзывает все активные access-токены пользователя.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Пустой успешный конверт"
// @Router /logout-all [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logoutall"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user is missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Err(apperrors.ErrInvalidToken))
		return
	}

	if err := h.service.LogoutAll(r.Context(), user.UUID); err != nil {
		log.Error("logout all failed", sl.Err(err))
		render.Status(r, response.StatusOf(err))
		render.JSON(w, r, response.Err(err))
		return
	}

	log.Info("all sessions revoked", slog.String("user_uuid", user.UUID))
	render.JSON(w, r, response.OK())
}
