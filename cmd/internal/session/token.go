package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("invalid session")

// CheckToken verifies an HMAC signed token and returns its claim set.
// Registered temporal claims (exp, nbf, iat) are enforced when present.
func CheckToken(token, secret string) (jwt.MapClaims, error) {
	if token == "" || secret == "" {
		return nil, ErrInvalidSession
	}

	tok, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// NewToken signs claims with HS256. Tokens are normally minted by the
// identity service; this exists for tooling and tests.
func NewToken(claims jwt.MapClaims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
