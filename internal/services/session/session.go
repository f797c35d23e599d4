// Package session реализует жизненный цикл сессий: выдачу пары токенов,
// выход, выход со всех устройств и обновление сессии.
//
// Пара (refresh, access) проходит состояния: привязана -> обновлена или
// отозвана -> истекла. Привязку доказывает запись в реестре, отзыв —
// запись в черном списке.
package session

import (
	"context"
	"fmt"
	"time"

	jwtlib "github.com/olehsv/check-service/internal/lib/jwt"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/models"
)

// TokenStore описывает контракт хранилища привязок и черного списка.
type TokenStore interface {
	Bind(ctx context.Context, refreshToken, accessToken, userUID string, ttl time.Duration) error
	ConsumeBinding(ctx context.Context, refreshToken, accessToken, userUID string) (bool, error)
	Blacklist(ctx context.Context, accessToken string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, accessToken string) (bool, error)
	FindUserSessions(ctx context.Context, userUID string) ([]string, error)
}

// UserGetter возвращает пользователя по UUID из долговременного хранилища.
type UserGetter interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Service управляет сессиями пользователей.
type Service struct {
	store      TokenStore
	users      UserGetter
	maker      *jwtlib.Maker
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// New создает сервис сессий.
func New(store TokenStore, users UserGetter, maker *jwtlib.Maker, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		store:      store,
		users:      users,
		maker:      maker,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Create выдает новую пару токенов и привязывает ее к пользователю.
func (s *Service) Create(ctx context.Context, user *models.User) (*models.Session, error) {
	const op = "session.Create"

	expiresIn := time.Now().Add(s.accessTTL)
	accessToken, err := s.maker.CreateAccess(user.Snapshot(), expiresIn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	refreshToken, err := s.maker.CreateRefresh(user.UUID, time.Now().Add(s.refreshTTL))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.store.Bind(ctx, refreshToken, accessToken, user.UUID, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		TokenType:    models.TokenTypeBearer,
	}, nil
}

// Logout отзывает access-токен до его естественного истечения.
// Если токен не разбирается, остаток жизни считается нулевым.
// Повторный вызов безвреден: запись в черном списке перезаписывается.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	const op = "session.Logout"

	var remaining time.Duration
	if claims, err := s.maker.Parse(accessToken); err == nil {
		remaining = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.store.Blacklist(ctx, accessToken, remaining); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LogoutAll отзывает все живые сессии пользователя. Каждый найденный
// access-токен попадает в черный список на свой фактический остаток жизни;
// если токен не разбирается, берется полное окно access-токена как верхняя
// граница.
func (s *Service) LogoutAll(ctx context.Context, userUID string) error {
	const op = "session.LogoutAll"

	tokens, err := s.store.FindUserSessions(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, accessToken := range tokens {
		ttl := s.accessTTL
		if claims, err := s.maker.Parse(accessToken); err == nil {
			ttl = time.Until(claims.ExpiresAt.Time)
		}
		if err := s.store.Blacklist(ctx, accessToken, ttl); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// Refresh обменивает пару токенов на новую сессию. Проверки идут строго
// по порядку, и любая неудача дает одну и ту же ошибку ErrInvalidToken:
// по ответу нельзя понять, какой шаг не прошел.
//
// Привязка пары снимается атомарно, поэтому повтор refresh-токена — в том
// числе с другим access-токеном или в конкурентном запросе — не проходит.
func (s *Service) Refresh(ctx context.Context, accessToken, refreshToken string) (*models.Session, error) {
	const op = "session.Refresh"

	claims, err := s.maker.Parse(refreshToken)
	if err != nil || claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidToken)
	}

	user, err := s.users.GetUser(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidToken)
	}

	blacklisted, err := s.store.IsBlacklisted(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if blacklisted {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidToken)
	}

	consumed, err := s.store.ConsumeBinding(ctx, refreshToken, accessToken, user.UUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !consumed {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidToken)
	}

	if err = s.Logout(ctx, accessToken); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.Create(ctx, user)
}
