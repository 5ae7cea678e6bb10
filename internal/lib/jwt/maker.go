// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	GenerateToken(subject Subject) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// Subject — данные пользователя, которые кладутся в токен.
type Subject struct {
	UserUID   string
	Username  string
	Role      string
	IsTeacher bool
}

// MakerImpl подписывает токены секретным ключом (HS256) с ограниченным временем жизни.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
