// Package auth содержит логику регистрации и входа пользователей.
package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/lib/password"
	"github.com/olehsv/check-service/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя.
	CreateUser(ctx context.Context, user models.User) error

	// GetUserByEmail возвращает пользователя по email или apperrors.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CountUsersByEmail возвращает число пользователей с указанным email.
	CountUsersByEmail(ctx context.Context, email string) (int, error)
}

// SessionCreator выдает новую сессию для пользователя.
type SessionCreator interface {
	Create(ctx context.Context, user *models.User) (*models.Session, error)
}

// Service отвечает за регистрацию и аутентификацию.
type Service struct {
	users    UserRepository
	sessions SessionCreator
	hasher   *password.Hasher
}

// New создает новый экземпляр Service.
func New(users UserRepository, sessions SessionCreator, hasher *password.Hasher) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
	}
}

// Register создает пользователя и сразу выдает ему сессию.
// Email необязателен, но если указан — должен быть уникальным.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string) (*models.Session, error) {
	const op = "auth.Register"

	if email != "" {
		count, err := s.users.CountUsersByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrUserAlreadyExists)
		}
	}

	hashed, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		UUID:           uuid.NewString(),
		Name:           name,
		Email:          email,
		HashedPassword: hashed,
	}
	if err = s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.sessions.Create(ctx, &user)
}

// Login проверяет пароль пользователя и выдает сессию.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.Session, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !s.hasher.Verify(rawPassword, user.HashedPassword) {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrIncorrectPassword)
	}
	return s.sessions.Create(ctx, user)
}
