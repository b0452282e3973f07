package testutil

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/devtales-app/backend/pkg/internal/auth"
)

// SignTestToken issues a token the way the external identity provider
// would, signed with the given shared secret.
func SignTestToken(t *testing.T, secret, subject, name string) string {
	t.Helper()

	claims := auth.Claims{
		Name: name,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("unable to sign test token: %v", err)
	}

	return signed
}
