// Package refresh реализует HTTP-обработчик обновления сессии.
package refresh

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/http/middlewarectx"
	"github.com/olehsv/check-service/internal/http/response"
	"github.com/olehsv/check-service/internal/lib/sl"
	"github.com/olehsv/check-service/internal/models"
)

// Request — тело запроса обновления: только refresh-токен,
// access-токен берется из заголовка Authorization.
type Request struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Service описывает обмен пары токенов на новую сессию.
type Service interface {
	Refresh(ctx context.Context, accessToken, refreshToken string) (*models.Session, error)
}

// Handler обрабатывает запросы обновления сессии.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление сессии
// @Description Меняет пару access+refresh на новую. Старый access-токен отзывается.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Refresh-токен"
// @Success 200 {object} response.Response "Новая сессия"
// @Failure 401 {object} response.Response "Пара токенов невалидна"
// @Router /refresh-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	session, err := h.service.Refresh(r.Context(), accessToken, req.RefreshToken)
	if err != nil {
		log.Error("refresh failed", sl.Err(err))
		render.Status(r, response.StatusOf(err))
		render.JSON(w, r, response.Err(err))
		return
	}

	log.Info("session refreshed")
	render.JSON(w, r, response.OKWithData(session))
}
