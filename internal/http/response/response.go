// Package response содержит типы и функции для формирования единого
// JSON-конверта ответов: {custom_code, message, data}. Доменные ошибки
// превращаются в конверт только здесь, на границе HTTP.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/olehsv/check-service/internal/apperrors"
)

// Response единый JSON-конверт сервера.
type Response struct {
	CustomCode string `json:"custom_code"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// Коды конверта, не привязанные к доменным ошибкам.
const (
	CodeOK              = "OK"
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidationError = "VALIDATION_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// OK возвращает успешный конверт без данных.
func OK() Response {
	return Response{CustomCode: CodeOK}
}

// OKWithData возвращает успешный конверт с данными.
func OKWithData(data any) Response {
	return Response{
		CustomCode: CodeOK,
		Data:       data,
	}
}

// Error возвращает конверт с произвольным кодом и сообщением.
func Error(code, msg string) Response {
	return Response{
		CustomCode: code,
		Message:    msg,
	}
}

// Err превращает ошибку в конверт: доменные ошибки отдают свой код и
// сообщение, все остальное схлопывается во внутреннюю ошибку без деталей.
func Err(err error) Response {
	if appErr := apperrors.From(err); appErr != nil {
		return Error(appErr.Code, appErr.Message)
	}
	return Error(CodeInternalError, "internal error")
}

// StatusOf возвращает HTTP-статус для ошибки.
func StatusOf(err error) int {
	if appErr := apperrors.From(err); appErr != nil {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// ValidationError формирует конверт на основе ошибок валидации.
// Каждое нарушение превращается в человеко-читаемый текст, объединенный
// через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		CustomCode: CodeValidationError,
		Message:    strings.Join(errsMsgs, ", "),
	}
}
