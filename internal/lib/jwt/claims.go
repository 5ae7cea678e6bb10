package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
// UID пользователя хранится в стандартном поле sub.
type CustomClaims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	IsTeacher bool   `json:"is_teacher"`
	jwt.RegisteredClaims
}

// GenerateToken создает JWT токен для subject, подписывая его секретным ключом.
func (j *MakerImpl) GenerateToken(subject Subject) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Username:  subject.Username,
		Role:      subject.Role,
		IsTeacher: subject.IsTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.UserUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет подпись, алгоритм и срок действия.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
