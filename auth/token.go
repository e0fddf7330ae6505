package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const sessionTokenType = "admin_session"

// IssueSessionToken mints a signed admin session token with the given
// lifetime. The token replaces the client-settable login flag the old
// dashboard relied on: only the server can produce one, and it expires.
func IssueSessionToken(secret []byte, ttl time.Duration) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, fmt.Errorf("JWT secret not configured")
	}

	expiresAt := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"typ": sessionTokenType,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionToken parses and validates an admin session token, checking
// both the signature and the token type claim.
func ParseSessionToken(secret []byte, tokenStr string) (jwt.MapClaims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("JWT secret not configured")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if typ, ok := claims["typ"].(string); !ok || typ != sessionTokenType {
		return nil, fmt.Errorf("invalid token type")
	}
	return claims, nil
}
