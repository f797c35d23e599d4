package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/models"
)

// CreateUser сохраняет нового пользователя.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (uuid, name, email, hashed_password)
			  VALUES ($1, $2, NULLIF($3, ''), $4)`
	if _, err := s.DB.ExecContext(ctx, query,
		user.UUID, user.Name, user.Email, user.HashedPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser возвращает пользователя по его UUID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	return s.getUser(ctx, op, `WHERE uuid = $1`, userUID)
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	return s.getUser(ctx, op, `WHERE email = $1`, email)
}

func (s *Storage) getUser(ctx context.Context, op, where string, arg any) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uuid, name, email, hashed_password, created_at
			  FROM users ` + where
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, arg)

	var email, hashedPassword sql.NullString
	if err := row.Scan(&u.UUID, &u.Name, &email, &hashedPassword, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Email = email.String
	u.HashedPassword = hashedPassword.String
	return u, nil
}

// CountUsersByEmail возвращает число пользователей с указанным email.
func (s *Storage) CountUsersByEmail(ctx context.Context, email string) (int, error) {
	const op = "storage.CountUsersByEmail"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT count(*) FROM users WHERE email = $1`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
