// Package read реализует HTTP-обработчик чтения одного чека.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/http/middlewarectx"
	"github.com/olehsv/check-service/internal/http/response"
	"github.com/olehsv/check-service/internal/lib/sl"
	"github.com/olehsv/check-service/internal/models"
)

// Service описывает чтение чека с проверкой владельца.
type Service interface {
	Get(ctx context.Context, checkUUID, userUID string) (*models.Check, error)
}

// Handler обрабатывает запросы чтения чека.
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
// @Summary Чтение чека
// @Description Возвращает чек текущего пользователя по UUID.
// @Tags Checks
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "UUID чека"
// @Success 200 {object} response.Response "Чек с производными суммами"
// @Failure 404 {object} response.Response "Чек не найден"
// @Router /checks/{uuid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.check.read"

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

	checkUUID := chi.URLParam(r, "checkUUID")
	if _, err := uuid.Parse(checkUUID); err != nil {
		log.Error("invalid check uuid", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeBadRequest, "invalid check uuid"))
		return
	}

	check, err := h.service.Get(r.Context(), checkUUID, user.UUID)
	if err != nil {
		log.Error("failed to get check", sl.Err(err))
		render.Status(r, response.StatusOf(err))
		render.JSON(w, r, response.Err(err))
		return
	}

	render.JSON(w, r, response.OKWithData(check))
}
