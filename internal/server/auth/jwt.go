// Package auth implements session tokens and PIN hashing for the campaign
// backend.
package auth

import (
	"errors"
	"time"

	"github.com/charbel291291291/election2026/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered claims with the agent id and the root
// grant. RootExpiresAt is an absolute unix timestamp, fixed at grant time:
// it is never extended by activity and is re-checked by the server on every
// privileged call.
type Claims struct {
	jwt.RegisteredClaims
	UserID        string `json:"uid"`
	Root          bool   `json:"root,omitempty"`
	RootExpiresAt int64  `json:"root_exp,omitempty"`
}

// HasActiveRoot reports whether the claims carry a root grant that has not
// passed its absolute expiry at the given instant.
func (c *Claims) HasActiveRoot(now time.Time) bool {
	return c.Root && c.RootExpiresAt > 0 && now.Unix() < c.RootExpiresAt
}

// GenerateToken issues a session token for the given agent.
func GenerateToken(userID string, secretKey []byte, validity time.Duration) (string, error) {
	return sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID: userID,
	}, secretKey)
}

// GenerateRootToken issues a refreshed session token embedding a root grant
// with an absolute expiry rootValidity from now.
func GenerateRootToken(userID string, secretKey []byte, validity, rootValidity time.Duration) (string, error) {
	now := time.Now()
	return sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID:        userID,
		Root:          true,
		RootExpiresAt: now.Add(rootValidity).Unix(),
	}, secretKey)
}

func sign(claims Claims, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseToken validates the signature and base expiry and returns the
// embedded claims. Expired tokens map to common.ErrUnauthorized, anything
// else malformed to common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
