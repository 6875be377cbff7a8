// jwt.go issues and validates HS256 bearer tokens.
// Tokens are minted out of band (see `pdftext token`) by whoever holds
// JWT_SECRET, typically the frontend's server side.
package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims are the claims carried by service tokens.
type JWTClaims struct {
	jwt.RegisteredClaims
}

// GenerateJWT creates a signed token for subject that expires after ttl.
func GenerateJWT(subject, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates and parses a JWT token string.
func ParseJWT(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
