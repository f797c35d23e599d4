package models

import "time"

// TokenTypeBearer единственный поддерживаемый тип токена.
const TokenTypeBearer = "bearer"

// Session пара токенов, выдаваемая при логине, регистрации и обновлении.
// Не хранится в базе: доказательством валидности служит запись-привязка
// в key-value хранилище.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    time.Time `json:"expires_in"`
	TokenType    string    `json:"token_type"`
}
