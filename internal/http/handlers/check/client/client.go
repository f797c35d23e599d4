// Package client реализует публичную ручку текстового чека:
// по ссылке с UUID покупатель получает чек без авторизации.
package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"github.com/olehsv/check-service/internal/lib/sl"
	"github.com/olehsv/check-service/internal/models"
	checkservice "github.com/olehsv/check-service/internal/services/check"
)

// Service описывает чтение чека без проверки владельца.
type Service interface {
	Get(ctx context.Context, checkUUID, userUID string) (*models.Check, error)
}

// Handler обрабатывает публичные запросы текстового чека.
type Handler struct {
	log     *slog.Logger
	service Service
	printer *checkservice.ReceiptPrinter
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, printer *checkservice.ReceiptPrinter) *Handler {
	return &Handler{
		log:     log,
		service: service,
		printer: printer,
	}
}

// ServeHTTP godoc
// @Summary Текстовый чек для покупателя
// @Description Возвращает чек фиксированной ширины как text/plain, без авторизации.
// @Tags Client
// @Produce plain
// @Param uuid path string true "UUID чека"
// @Success 200 {string} string "Текст чека"
// @Failure 404 {string} string "Чек не найден"
// @Router /client/{uuid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.check.client"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	checkUUID := chi.URLParam(r, "checkUUID")
	if _, err := uuid.Parse(checkUUID); err != nil {
		log.Error("invalid check uuid", sl.Err(err))
		http.Error(w, "Check not found", http.StatusNotFound)
		return
	}

	check, err := h.service.Get(r.Context(), checkUUID, "")
	if err != nil {
		log.Error("failed to get check", sl.Err(err))
		http.Error(w, "Check not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.printer.Render(check)))
}
