package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of access-token claims the client cares about.
// The token is minted and verified by the backend; the client only reads it
// to avoid round-tripping with a token that is already dead.
type TokenClaims struct {
	Subject   string
	Email     string
	IsAdmin   bool
	ExpiresAt time.Time
}

// DecodeToken parses a JWT without verifying its signature. The client never
// holds the signing secret, so the claims are advisory only; the backend
// remains the authority on every authenticated call.
func DecodeToken(tokenString string) (*TokenClaims, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	claims := &TokenClaims{}
	claims.Subject, _ = mapClaims["sub"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	claims.IsAdmin, _ = mapClaims["is_admin"].(bool)

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}

// IsExpired reports whether the claims carry an expiry in the past.
// Tokens without an exp claim are treated as live.
func (c *TokenClaims) IsExpired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return now.After(c.ExpiresAt)
}
