package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken signs a token whose subject is the shop id.
func GenerateToken(secret string, shopID int64, ttl time.Duration) (string, error) {
	// 1. Claims: subject, expiry and issue time
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": shopID,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}

	// 2. Sign with HS256
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses a token and returns the shop id it was issued for.
func ValidateToken(secret, tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}
	// JSON numbers decode as float64
	shopID, ok := claims["sub"].(float64)
	if !ok || shopID <= 0 {
		return 0, errors.New("invalid subject claim")
	}
	return int64(shopID), nil
}
