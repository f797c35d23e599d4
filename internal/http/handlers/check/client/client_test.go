package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/config"
	"github.com/olehsv/check-service/internal/models"
	checkservice "github.com/olehsv/check-service/internal/services/check"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Get(ctx context.Context, checkUUID, userUID string) (*models.Check, error) {
	args := m.Called(ctx, checkUUID, userUID)
	check, _ := args.Get(0).(*models.Check)
	return check, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestClientHandler_ServeHTTP(t *testing.T) {
	const checkUUID = "7f2a9a60-52f3-4be0-8a3f-9a3a5c6a8d10"

	printer := checkservice.NewReceiptPrinter(config.Receipt{
		Header:     "ФОП Джонсонюк Борис",
		Footer:     "Дякуємо за покупку!",
		LineLength: 30,
	})

	check := &models.Check{
		UUID:      checkUUID,
		CreatedAt: time.Date(2024, 4, 1, 12, 30, 0, 0, time.UTC),
		Products:  []models.Product{{Name: "Молоко", Price: 40, Quantity: 2, Total: 80}},
		Payment:   models.Payment{Type: models.PaymentTypeCash, Amount: 100},
		Total:     80,
		Rest:      20,
	}

	tests := []struct {
		name           string
		uuid           string
		setupMock      func(*ServiceMock)
		wantStatusCode int
		wantInBody     []string
	}{
		{
			name: "receipt rendered as plain text",
			uuid: checkUUID,
			setupMock: func(m *ServiceMock) {
				// Пустой userUID: владелец не проверяется.
				m.On("Get", mock.Anything, checkUUID, "").Return(check, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantInBody:     []string{"ФОП Джонсонюк Борис", "Молоко", "СУМА", "Готівка", "Дякуємо за покупку!"},
		},
		{
			name:           "malformed uuid",
			uuid:           "not-a-uuid",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusNotFound,
			wantInBody:     []string{"Check not found"},
		},
		{
			name: "unknown check",
			uuid: checkUUID,
			setupMock: func(m *ServiceMock) {
				m.On("Get", mock.Anything, checkUUID, "").
					Return(nil, apperrors.ErrCheckNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantInBody:     []string{"Check not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setupMock(serviceMock)

			handler := New(newNoopLogger(), serviceMock, printer)

			req := httptest.NewRequest(http.MethodGet, "/client/"+tt.uuid, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("checkUUID", tt.uuid)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			for _, want := range tt.wantInBody {
				assert.Contains(t, rec.Body.String(), want)
			}
			if tt.wantStatusCode == http.StatusOK {
				assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
