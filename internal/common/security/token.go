package security

import (
	"fmt"
	"time"

	"library_api/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity data embedded in an issued token.
type Claims struct {
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS512 bearer tokens. The signing key is
// injected at construction and immutable afterwards; it is safe for
// concurrent use.
type TokenIssuer struct {
	key      []byte
	validity time.Duration
	auth     *jwtauth.JWTAuth
}

func NewTokenIssuer(key []byte, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{
		key:      key,
		validity: validity,
		auth:     jwtauth.New("HS512", key, nil),
	}
}

// JWTAuth exposes the verifier used by the router's token-extraction
// middleware. It shares the issuer's key and algorithm.
func (t *TokenIssuer) JWTAuth() *jwtauth.JWTAuth {
	return t.auth
}

// Issue signs a token carrying the account id and username, expiring after
// the configured validity window.
func (t *TokenIssuer) Issue(userID, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.validity)),
		},
	})

	tokenString, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenString, nil
}

// Verify parses tokenString and returns its claims. Malformed input, a bad
// signature and an expired token all map to ErrInvalidToken; validity is
// purely cryptographic plus time-based, no store is consulted.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(tk *jwt.Token) (interface{}, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{"HS512"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
