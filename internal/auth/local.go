package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seyitm/baby-ai/internal"
)

// LocalAuthProvider validates the access token against the project's shared
// JWT secret (HS256) without a network round-trip and reads the user identity
// from the claims. The raw token still travels with every store call so
// row-level security applies regardless.
type LocalAuthProvider struct {
	secret []byte
	logger internal.Logger
}

func NewLocalAuthProvider(secret string, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{secret: []byte(secret), logger: logger}
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (a *LocalAuthProvider) ValidateTokenLocal(token string) (*internal.User, error) {
	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		a.logger.Warnf("token validation failed: %v", err)
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &internal.User{ID: claims.Subject, Email: claims.Email}, nil
}

func (a *LocalAuthProvider) ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error) {
	return nil, errors.New("not implemented in LocalAuthProvider")
}

var _ Provider = (*LocalAuthProvider)(nil)
