// Package models содержит структуры данных сервиса чеков.
package models

import "time"

// User учетная запись пользователя.
type User struct {
	UUID           string     `json:"uuid"`
	Name           string     `json:"name"`
	Email          string     `json:"email,omitempty"`
	HashedPassword string     `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// UserSnapshot публичная часть пользователя, встраиваемая в access-токен,
// чтобы не ходить в базу на каждый авторизованный запрос.
type UserSnapshot struct {
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Snapshot возвращает публичный срез пользователя без хеша пароля.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		UUID:  u.UUID,
		Name:  u.Name,
		Email: u.Email,
	}
}
