package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tasklane/internal/domain"
	"tasklane/internal/ports"
)

// Compile-time check.
var _ ports.TokenCodec = (*JWTCodec)(nil)

// JWTCodec signs and verifies HS256 access tokens.
type JWTCodec struct {
	secret []byte
	issuer string
}

// NewJWTCodec creates a codec signing with the given secret.
func NewJWTCodec(secret, issuer string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), issuer: issuer}
}

// Encode implements ports.TokenCodec. The supplied claims are merged with
// the registered iss, iat, and exp claims.
func (c *JWTCodec) Encode(claims map[string]any, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	all := jwt.MapClaims{
		"iss": c.issuer,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	for k, v := range claims {
		all[k] = v
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, all).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Decode implements ports.TokenCodec. Bad signatures, wrong algorithms,
// and expired tokens all wrap domain.ErrUnauthorized.
func (c *JWTCodec) Decode(token string) (map[string]any, error) {
	parsed, err := jwt.Parse(token,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}
