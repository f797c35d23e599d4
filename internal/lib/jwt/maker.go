// Package jwt реализует кодек access- и refresh-токенов.
//
// Access-токен несет снимок пользователя в claim "data", refresh-токен —
// только subject. Оба подписываются одним секретом и алгоритмом из конфига.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/olehsv/check-service/internal/models"
)

// Maker создает и разбирает подписанные токены.
type Maker struct {
	secretKey string
	method    jwt.SigningMethod
}

// NewMaker создает кодек с указанным секретом и именем HMAC-алгоритма,
// например "HS256".
func NewMaker(secretKey, algorithm string) (*Maker, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("jwt.NewMaker: unknown algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("jwt.NewMaker: algorithm %q is not HMAC", algorithm)
	}
	return &Maker{
		secretKey: secretKey,
		method:    method,
	}, nil
}

// CreateAccess создает access-токен: subject = UUID пользователя,
// в payload кладется публичный снимок пользователя.
func (m *Maker) CreateAccess(user models.UserSnapshot, expiresAt time.Time) (string, error) {
	const op = "jwt.CreateAccess"
	claims := Claims{
		Data: &user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Subject:   user.UUID,
		},
	}
	token, err := jwt.NewWithClaims(m.method, claims).SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// CreateRefresh создает refresh-токен без payload: только subject и сроки.
func (m *Maker) CreateRefresh(sub string, expiresAt time.Time) (string, error) {
	const op = "jwt.CreateRefresh"
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Subject:   sub,
		},
	}
	token, err := jwt.NewWithClaims(m.method, claims).SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Parse проверяет подпись и срок действия токена и возвращает его claims.
// Просроченный, поврежденный и подписанный чужим ключом токен дают
// одинаковый результат — ошибку; различать причины вызывающим не нужно.
func (m *Maker) Parse(tokenStr string) (*Claims, error) {
	const op = "jwt.Parse"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	}, jwt.WithValidMethods([]string{m.method.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
