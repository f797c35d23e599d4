// Package apperrors определяет доменные ошибки сервиса чеков.
//
// Каждая ошибка несет машинный код custom_code и сообщение для клиента.
// Слои storage и services возвращают эти ошибки как есть (или оборачивают
// через %w), а HTTP-слой превращает их в единый JSON-конверт.
package apperrors

import (
	"errors"
	"net/http"
)

// Error доменная ошибка с кодом для ответа клиенту.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

var (
	// ErrUserNotFound пользователь не найден по указанным данным.
	ErrUserNotFound = &Error{Code: "USER_NOT_FOUND", Message: "User not found", Status: http.StatusNotFound}
	// ErrUserAlreadyExists пользователь с таким email уже зарегистрирован.
	ErrUserAlreadyExists = &Error{Code: "USER_ALREADY_EXISTS", Message: "User with this email already exists", Status: http.StatusBadRequest}
	// ErrIncorrectPassword пароль не совпал с хешем.
	ErrIncorrectPassword = &Error{Code: "INCORRECT_PASSWORD", Message: "Incorrect password", Status: http.StatusUnauthorized}
	// ErrInvalidToken любая проблема с парой токенов: истек, подделан,
	// в черном списке или не привязан. Причина наружу не раскрывается.
	ErrInvalidToken = &Error{Code: "INVALID_TOKEN", Message: "Token invalid or expired", Status: http.StatusUnauthorized}
	// ErrProductListEmpty чек без единого товара.
	ErrProductListEmpty = &Error{Code: "PRODUCT_LIST_CANNOT_BE_EMPTY", Message: "The product list cannot be empty", Status: http.StatusBadRequest}
	// ErrNotEnoughMoney оплата меньше суммы чека.
	ErrNotEnoughMoney = &Error{Code: "NOT_ENOUGH_MONEY", Message: "Not enough money", Status: http.StatusBadRequest}
	// ErrEmptyCheck сумма чека меньше единицы.
	ErrEmptyCheck = &Error{Code: "EMPTY_CHECK", Message: "Check is empty", Status: http.StatusBadRequest}
	// ErrCheckNotFound чек не найден или принадлежит другому пользователю.
	ErrCheckNotFound = &Error{Code: "CHECK_NOT_FOUND", Message: "Check not found", Status: http.StatusNotFound}
)

// From извлекает доменную ошибку из цепочки err, либо возвращает nil.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
