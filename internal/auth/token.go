/* JWT issuing and validation for dashboard administrators */

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	issuer   = "workshop-map-dashboard"
	tokenTTL = 24 * time.Hour
)

// Claims carries the administrator's username.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Tokens signs and validates HS256 tokens with one key.
type Tokens struct {
	key []byte
	now func() time.Time
}

// NewTokens uses secret as the signing key. When secret is empty a random
// key is generated, so tokens do not survive a restart.
func NewTokens(secret string, logger *zap.Logger) *Tokens {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(err)
		}
		if logger != nil {
			logger.Warn("JWT_SECRET_KEY is not set, using an ephemeral signing key",
				zap.String("key_id", hex.EncodeToString(key[:4])))
		}
	}
	return &Tokens{key: key, now: time.Now}
}

// Generate issues a token for username valid for 24 hours.
func (t *Tokens) Generate(username string) (string, error) {
	now := t.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   "admin_auth_token",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// Validate parses tokenString and returns its claims.
func (t *Tokens) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Issuer != issuer {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	return claims, nil
}
