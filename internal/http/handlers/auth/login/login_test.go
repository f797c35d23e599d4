package login

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
	"github.com/olehsv/check-service/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, rawPassword string) (*models.Session, error) {
	args := m.Called(ctx, email, rawPassword)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	session := &models.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    models.TokenTypeBearer,
	}

	tests := []struct {
		name           string
		requestBody    any
		mockResp       *models.Session
		mockErr        error
		wantStatusCode int
		wantCustomCode string
		wantMessage    string
		wantData       bool
	}{
		{
			name:           "valid login",
			requestBody:    Request{Email: "alice@example.com", Password: "password123"},
			mockResp:       session,
			wantStatusCode: http.StatusOK,
			wantCustomCode: "OK",
			wantData:       true,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantCustomCode: "BAD_REQUEST",
			wantMessage:    "invalid request body",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Email: "alice@example.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantCustomCode: "VALIDATION_ERROR",
			wantMessage:    "field Password is a required field",
		},
		{
			name:           "validation error - bad email",
			requestBody:    Request{Email: "not-an-email", Password: "password123"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantCustomCode: "VALIDATION_ERROR",
			wantMessage:    "field Email must be a valid email",
		},
		{
			name:           "wrong password",
			requestBody:    Request{Email: "alice@example.com", Password: "password123"},
			mockErr:        apperrors.ErrIncorrectPassword,
			wantStatusCode: http.StatusUnauthorized,
			wantCustomCode: "INCORRECT_PASSWORD",
			wantMessage:    "Incorrect password",
		},
		{
			name:           "unknown user",
			requestBody:    Request{Email: "alice@example.com", Password: "password123"},
			mockErr:        apperrors.ErrUserNotFound,
			wantStatusCode: http.StatusNotFound,
			wantCustomCode: "USER_NOT_FOUND",
			wantMessage:    "User not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.mockResp != nil || tt.mockErr != nil {
				req := tt.requestBody.(Request)
				serviceMock.On("Login", mock.Anything, req.Email, req.Password).
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

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantCustomCode, got["custom_code"])

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got["message"])
			} else {
				assert.Nil(t, got["message"])
			}

			if tt.wantData {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "access", data["access_token"])
				assert.Equal(t, "refresh", data["refresh_token"])
				assert.Equal(t, "bearer", data["token_type"])
			} else {
				assert.Nil(t, got["data"])
			}

			if tt.mockResp != nil || tt.mockErr != nil {
				serviceMock.AssertExpectations(t)
			}
		})
	}
}
