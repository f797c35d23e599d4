package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olehsv/check-service/internal/cache"
)

// Ключ реестра: {refresh_token}:{access_token}:{user_uuid}, значение — UUID
// пользователя. Существование записи — единственное доказательство того,
// что пара токенов выдана и еще не использована.
//
// Ключ черного списка: bl:{access_token}, значение — сам токен. Запись живет
// столько, сколько осталось жить токену.
const blacklistPrefix = "bl:"

// RedisStore хранит реестр сессий и черный список токенов в redis.
type RedisStore struct {
	cache *cache.Cache
}

// NewRedisStore создает хранилище сессий поверх подключения к redis.
func NewRedisStore(c *cache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

func ledgerKey(refreshToken, accessToken, userUID string) string {
	return refreshToken + ":" + accessToken + ":" + userUID
}

// Bind записывает привязку пары токенов к пользователю на время жизни
// refresh-токена.
func (s *RedisStore) Bind(ctx context.Context, refreshToken, accessToken, userUID string, ttl time.Duration) error {
	const op = "session.Bind"
	if err := s.cache.Set(ctx, ledgerKey(refreshToken, accessToken, userUID), userUID, ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ConsumeBinding атомарно проверяет и удаляет привязку пары токенов.
// Возвращает true, только если привязка существовала: из двух конкурентных
// обновлений одной пары выигрывает ровно одно.
func (s *RedisStore) ConsumeBinding(ctx context.Context, refreshToken, accessToken, userUID string) (bool, error) {
	const op = "session.ConsumeBinding"
	_, found, err := s.cache.GetDel(ctx, ledgerKey(refreshToken, accessToken, userUID))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return found, nil
}

// Blacklist помечает access-токен отозванным на время ttl. Неположительный
// ttl означает, что токен и так на грани истечения: запись все равно
// делается, с минимальным временем жизни.
func (s *RedisStore) Blacklist(ctx context.Context, accessToken string, ttl time.Duration) error {
	const op = "session.Blacklist"
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := s.cache.Set(ctx, blacklistPrefix+accessToken, accessToken, ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsBlacklisted сообщает, отозван ли access-токен.
func (s *RedisStore) IsBlacklisted(ctx context.Context, accessToken string) (bool, error) {
	const op = "session.IsBlacklisted"
	_, found, err := s.cache.Get(ctx, blacklistPrefix+accessToken)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return found, nil
}

// FindUserSessions возвращает access-токены всех живых привязок пользователя,
// сканируя ключи реестра по суффиксу UUID.
func (s *RedisStore) FindUserSessions(ctx context.Context, userUID string) ([]string, error) {
	const op = "session.FindUserSessions"
	keys, err := s.cache.Keys(ctx, "*:*:"+userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var tokens []string
	for _, key := range keys {
		parts := strings.Split(key, ":")
		if len(parts) != 3 {
			continue
		}
		tokens = append(tokens, parts[1])
	}
	return tokens, nil
}
