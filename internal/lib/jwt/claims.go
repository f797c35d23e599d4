package jwt

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/olehsv/check-service/internal/models"
)

// Claims полезная нагрузка токена. Data заполнен только у access-токенов.
type Claims struct {
	Data                 *models.UserSnapshot `json:"data,omitempty"`
	jwt.RegisteredClaims                      // стандартные claims: sub, iat, exp
}
