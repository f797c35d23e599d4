package create

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/http/middlewarectx"
	"github.com/olehsv/check-service/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, userUID string, products []models.Product, payment models.Payment) (*models.Check, error) {
	args := m.Called(ctx, userUID, products, payment)
	check, _ := args.Get(0).(*models.Check)
	return check, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	user := models.UserSnapshot{UUID: "user-uuid", Name: "alice"}

	validBody := Request{
		Products: []ProductRequest{{Name: "Молоко", Price: 40, Quantity: 2}},
		Payment:  PaymentRequest{Type: "CASH", Amount: 100},
	}

	tests := []struct {
		name           string
		requestBody    any
		withUser       bool
		mockResp       *models.Check
		mockErr        error
		wantStatusCode int
		wantCustomCode string
	}{
		{
			name:        "valid check",
			requestBody: validBody,
			withUser:    true,
			mockResp: &models.Check{
				UUID:  "check-uuid",
				Total: 80,
				Rest:  20,
			},
			wantStatusCode: http.StatusOK,
			wantCustomCode: "OK",
		},
		{
			name:           "no user in context",
			requestBody:    validBody,
			withUser:       false,
			wantStatusCode: http.StatusUnauthorized,
			wantCustomCode: "INVALID_TOKEN",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			withUser:       true,
			wantStatusCode: http.StatusBadRequest,
			wantCustomCode: "BAD_REQUEST",
		},
		{
			name: "validation error - non-positive quantity",
			requestBody: Request{
				Products: []ProductRequest{{Name: "Молоко", Price: 40, Quantity: -1}},
				Payment:  PaymentRequest{Type: "CASH", Amount: 100},
			},
			withUser:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantCustomCode: "VALIDATION_ERROR",
		},
		{
			name: "validation error - unknown payment type",
			requestBody: Request{
				Products: []ProductRequest{{Name: "Молоко", Price: 40, Quantity: 2}},
				Payment:  PaymentRequest{Type: "CRYPTO", Amount: 100},
			},
			withUser:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantCustomCode: "VALIDATION_ERROR",
		},
		{
			// Пустой список доходит до движка и получает доменный код.
			name: "empty product list",
			requestBody: Request{
				Products: []ProductRequest{},
				Payment:  PaymentRequest{Type: "CASH", Amount: 100},
			},
			withUser:       true,
			mockErr:        apperrors.ErrProductListEmpty,
			wantStatusCode: http.StatusBadRequest,
			wantCustomCode: "PRODUCT_LIST_CANNOT_BE_EMPTY",
		},
		{
			name:           "not enough money",
			requestBody:    validBody,
			withUser:       true,
			mockErr:        apperrors.ErrNotEnoughMoney,
			wantStatusCode: http.StatusBadRequest,
			wantCustomCode: "NOT_ENOUGH_MONEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.mockResp != nil || tt.mockErr != nil {
				serviceMock.On("Create", mock.Anything, user.UUID, mock.Anything, mock.Anything).
					Return(tt.mockResp, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/checks/", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.UserKey, user)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCustomCode, got["custom_code"])

			serviceMock.AssertExpectations(t)
		})
	}
}
