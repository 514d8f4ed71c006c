package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessAuth is the only access scope this system issues.
const AccessAuth = "auth"

var (
	ErrSecretRequired = errors.New("auth: jwt secret required")
	ErrInvalidToken   = errors.New("auth: invalid token")
)

type tokenClaims struct {
	Access string `json:"access"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies the compact tokens handed out at
// registration and login. A token encodes the user id and the "auth"
// access scope; no expiry claim is set, tokens stay valid until revoked.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec builds a codec around the process-wide signing secret.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}
	return &TokenCodec{secret: []byte(secret)}, nil
}

// Issue signs a token whose subject is the given user id.
func (c *TokenCodec) Issue(userID string) (string, error) {
	claims := tokenClaims{
		Access: AccessAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses a token and returns its subject user id and access scope.
// Malformed tokens, foreign signing methods and bad signatures all come
// back as ErrInvalidToken; callers never see the parser's own errors.
func (c *TokenCodec) Verify(token string) (subjectID, access string, err error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return "", "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return "", "", ErrInvalidToken
	}

	return claims.Subject, claims.Access, nil
}
