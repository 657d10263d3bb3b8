package auth

import (
	"errors"
	"fmt"
	"time"

	"farmer-market/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the session payload signed into the cookie.
type Claims struct {
	UserID   uint64 `json:"uid"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Provider string `json:"prv"`
	jwt.RegisteredClaims
}

type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *TokenCodec) TTL() time.Duration { return c.ttl }

func (c *TokenCodec) Issue(p Principal) (string, error) {
	now := c.now()
	claims := &Claims{
		UserID:   p.UserID,
		Role:     string(p.Role),
		Name:     p.Name,
		Provider: p.Provider,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *TokenCodec) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !domain.Role(claims.Role).Valid() || claims.Provider == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
