// Package password реализует хеширование и проверку паролей.
//
// Перед bcrypt к паролю подмешивается общий секрет процесса, поэтому
// украденная база без секрета бесполезна для перебора.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher хеширует и проверяет пароли с подмешанным секретом.
type Hasher struct {
	secret string
	cost   int
}

// NewHasher создает Hasher с указанным секретом и стандартной стоимостью bcrypt.
func NewHasher(secret string) *Hasher {
	return &Hasher{
		secret: secret,
		cost:   bcrypt.DefaultCost,
	}
}

// Hash возвращает bcrypt-хеш пароля с подмешанным секретом.
func (h *Hasher) Hash(rawPassword string) (string, error) {
	const op = "password.Hash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(rawPassword+h.secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// Verify сравнивает пароль с хешем. Возвращает false и для неверного
// пароля, и для поврежденного хеша: наружу разница не видна.
func (h *Hasher) Verify(rawPassword, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawPassword+h.secret)) == nil
}
