package jwt

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims defines the JWT payload carried by login tokens.
type Claims struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	jwtlib.RegisteredClaims
}

// Sign issues a signed HS256 token embedding the user's email and id.
func Sign(email, userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "social-feed",
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates signature and expiry, and extracts claims from token.
func Parse(token string, secret string) (*Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(token, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwtlib.ErrTokenInvalidClaims
	}
	return claims, nil
}
