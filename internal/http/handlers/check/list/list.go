// Package list реализует HTTP-обработчик списка чеков с фильтрами,
// сортировкой и пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/http/middlewarectx"
	"github.com/olehsv/check-service/internal/http/response"
	"github.com/olehsv/check-service/internal/lib/sl"
	"github.com/olehsv/check-service/internal/models"
)

// Формат дат в query-параметрах, пример: 2024-04-01T00:00:00
const dateLayout = "2006-01-02T15:04:05"

// Service описывает выборку чеков пользователя.
type Service interface {
	List(ctx context.Context, userUID string, f models.CheckFilter) (*models.PaginatedChecks, error)
}

// Handler обрабатывает запросы списка чеков.
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
// @Summary Список чеков
// @Description Возвращает страницу чеков пользователя с фильтрами и сортировкой.
// @Tags Checks
// @Produce json
// @Security BearerAuth
// @Param search query string false "Подстрока в названии товара"
// @Param created_at_before query string false "Не позже, пример: 2024-04-01T00:00:00"
// @Param created_at_after query string false "Не раньше, пример: 2024-04-01T00:00:00"
// @Param total_gte query number false "Сумма от"
// @Param total_lte query number false "Сумма до"
// @Param payment_type query string false "CASH или CASHLESS"
// @Param ordering query string false "Поле сортировки, префикс - для убывания"
// @Param page query int false "Номер страницы, с нуля"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} response.Response "Страница чеков"
// @Router /checks/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.check.list"

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

	filter, err := parseFilter(r)
	if err != nil {
		log.Error("failed to parse query parameters", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeBadRequest, err.Error()))
		return
	}

	checks, err := h.service.List(r.Context(), user.UUID, filter)
	if err != nil {
		log.Error("failed to list checks", sl.Err(err))
		render.Status(r, response.StatusOf(err))
		render.JSON(w, r, response.Err(err))
		return
	}

	render.JSON(w, r, response.OKWithData(checks))
}

func parseFilter(r *http.Request) (models.CheckFilter, error) {
	q := r.URL.Query()
	filter := models.CheckFilter{
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
	}

	if raw := q.Get("created_at_before"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, &queryError{"created_at_before"}
		}
		filter.CreatedAtBefore = &t
	}
	if raw := q.Get("created_at_after"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, &queryError{"created_at_after"}
		}
		filter.CreatedAtAfter = &t
	}
	if raw := q.Get("total_gte"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, &queryError{"total_gte"}
		}
		filter.TotalGte = &v
	}
	if raw := q.Get("total_lte"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, &queryError{"total_lte"}
		}
		filter.TotalLte = &v
	}
	if raw := q.Get("payment_type"); raw != "" {
		paymentType := models.PaymentType(raw)
		if !paymentType.Valid() {
			return filter, &queryError{"payment_type"}
		}
		filter.PaymentType = paymentType
	}
	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return filter, &queryError{"page"}
		}
		filter.Page = v
	}
	if raw := q.Get("page_size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return filter, &queryError{"page_size"}
		}
		filter.PageSize = v
	}
	return filter, nil
}

type queryError struct {
	param string
}

func (e *queryError) Error() string {
	return "invalid query parameter: " + e.param
}
