package auth

import (
	"fmt"
	"strings"

	"github.com/dgrijalva/jwt-go"
)

// Claims is the payload the identity provider signs into every access
// token. Subject carries the stable external user identifier.
type Claims struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	jwt.StandardClaims
}

// TokenReader verifies bearer tokens issued by the external identity
// provider with a shared HS256 secret.
type TokenReader struct {
	secret []byte
}

func NewTokenReader(secret string) (*TokenReader, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token secret is not configured")
	}
	return &TokenReader{secret: []byte(secret)}, nil
}

func (v *TokenReader) ReadToken(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return claims, err
	}
	if !token.Valid {
		return claims, fmt.Errorf("invalid token")
	}
	if len(claims.Subject) == 0 {
		return claims, fmt.Errorf("token has no subject")
	}

	return claims, nil
}

// ParseBearer pulls the token out of an Authorization header value.
func ParseBearer(header string) (string, error) {
	if len(header) == 0 {
		return "", fmt.Errorf("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("malformed authorization header")
	}
	return parts[1], nil
}
