package sqlgateway

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"autoparts-backend/internal/models"
)

type sessionClaims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

func issueToken(secret []byte, ttl time.Duration, acc *models.AuthAccount) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(ttl)
	claims := &sessionClaims{
		AccountID: acc.ID,
		Email:     acc.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   acc.ID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func parseToken(secret []byte, tokenStr string) (*sessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired session token: %w", err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok {
		return nil, fmt.Errorf("unreadable session claims")
	}
	return claims, nil
}
