package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and validates the signed session tokens handed out
// by registration and login. The signing key is fixed for the lifetime of
// the process; rotating it invalidates every outstanding token.
type TokenManager struct {
	Secret      []byte
	RegisterTTL time.Duration
	LoginTTL    time.Duration
}

func NewTokenManager(secret string, registerTTL, loginTTL time.Duration) *TokenManager {
	return &TokenManager{
		Secret:      []byte(secret),
		RegisterTTL: registerTTL,
		LoginTTL:    loginTTL,
	}
}

// Claims carries the identity embedded in a session token.
type Claims struct {
	AccountID string `json:"uid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Generate signs a token for the account that expires after ttl.
func (m *TokenManager) Generate(accountID, role string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Parse validates the signature and expiry and returns the claims.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
