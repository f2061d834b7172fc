package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "linkstash"

// ErrInvalidToken indicates the token failed validation: bad
// signature, malformed payload, missing claims or expired.
var ErrInvalidToken = errors.New("invalid token")

// Token is a signed, encoded claims string. Opaque to everything
// except this codec.
type Token string

// Claims is the identity assertion carried by a bearer token.
type Claims struct {
	Admin bool `json:"adm"`
	jwt.RegisteredClaims
}

// NewClaims builds claims for the given subject with the validity
// window [now, now+ttl].
func NewClaims(subject string, admin bool, now time.Time, ttl time.Duration) Claims {
	now = now.UTC()
	return Claims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// EncodeToken signs the claims with HS256 using the given secret.
// The secret is process-wide configuration owned by the caller.
func EncodeToken(claims Claims, secret string) (Token, error) {
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("subject is required")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return Token(signed), nil
}

// DecodeToken verifies the signature and required claims and returns
// the decoded claims. It decides only whether the token is structurally
// and temporally valid, never whether the caller is authorized.
func DecodeToken(token Token, secret string) (*Claims, error) {
	raw := strings.TrimSpace(string(token))
	if raw == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if err := validateClaims(claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func validateClaims(claims *Claims) error {
	if claims.Issuer != issuer {
		return fmt.Errorf("unexpected issuer: %s", claims.Issuer)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return errors.New("subject missing")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return errors.New("timestamps missing")
	}
	now := time.Now().UTC()
	if now.After(claims.ExpiresAt.Time) {
		return errors.New("token expired")
	}
	if claims.ExpiresAt.Time.Before(claims.IssuedAt.Time) {
		return errors.New("token expiry precedes issued-at")
	}
	return nil
}
