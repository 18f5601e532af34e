package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signingKey signs and verifies access tokens.
// TODO(auth): load from a secret manager once one is provisioned.
var signingKey = []byte("imobiliare_signing_key_change_me_2026")

const tokenIssuer = "imobiliare"

// CustomClaims carries the account identity inside the JWT payload.
type CustomClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed HS256 token for the given account.
func GenerateToken(userID string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &CustomClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
}

// ValidateToken checks the signature and expiry of a token string and
// returns its claims.
func ValidateToken(raw string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}
