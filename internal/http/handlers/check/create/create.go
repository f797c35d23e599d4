// Package create реализует HTTP-обработчик создания чека.
package create

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

// ProductRequest — позиция чека во входных данных.
type ProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
}

// PaymentRequest — оплата чека. Пустой тип означает наличные.
type PaymentRequest struct {
	Type   string  `json:"type" validate:"omitempty,oneof=CASH CASHLESS"`
	Amount float64 `json:"amount" validate:"required"`
}

// Request — входные данные создания чека. Пустой список товаров
// не отсекается валидатором: это доменная ошибка со своим кодом.
type Request struct {
	Products []ProductRequest `json:"products" validate:"dive"`
	Payment  PaymentRequest   `json:"payment" validate:"required"`
}

// Service описывает создание чека.
type Service interface {
	Create(ctx context.Context, userUID string, products []models.Product, payment models.Payment) (*models.Check, error)
}

// Handler обрабатывает запросы создания чека.
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
// @Summary Создание чека
// @Description Сохраняет чек с товарами и оплатой, возвращает его с производными суммами.
// @Tags Checks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Товары и оплата"
// @Success 200 {object} response.Response "Созданный чек"
// @Failure 400 {object} response.Response "Пустой список товаров, нехватка денег или пустой чек"
// @Router /checks/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.check.create"

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

	products := make([]models.Product, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, models.Product{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
	}
	payment := models.Payment{
		Type:   models.PaymentType(req.Payment.Type),
		Amount: req.Payment.Amount,
	}

	check, err := h.service.Create(r.Context(), user.UUID, products, payment)
	if err != nil {
		log.Error("failed to create check", sl.Err(err))
		render.Status(r, response.StatusOf(err))
		render.JSON(w, r, response.Err(err))
		return
	}

	log.Info("check created", slog.String("check_uuid", check.UUID))
	render.JSON(w, r, response.OKWithData(check))
}
