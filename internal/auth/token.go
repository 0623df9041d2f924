// Package auth issues and verifies the session tokens that carry a user's identity claim
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingCredential is returned when no token was presented at all
	ErrMissingCredential = errors.New("missing credential")
	// ErrUnauthenticated is returned when a token was presented but cannot be trusted
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidClaims is returned when a claim set cannot identify a user
	ErrInvalidClaims = errors.New("invalid claims")
)

// Claims is the identity payload embedded in a session token.
// It is an arbitrary key/value set that must at least hold an "email" entry.
type Claims map[string]any

// Email returns the identity carried by the claims, or an empty string
func (c Claims) Email() string {
	email, _ := c["email"].(string)
	return email
}

// TokenGenerator handles session token issuing and validation
type TokenGenerator struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenGenerator creates a new token generator signing with secret and expiring tokens after expiry
func NewTokenGenerator(secret string, expiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Issue signs claims into an HS256 token.
// Client supplied "iat" and "exp" entries are replaced with server values.
func (tg *TokenGenerator) Issue(claims Claims) (string, error) {
	if claims.Email() == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidClaims)
	}

	now := tg.now()
	mapClaims := make(jwt.MapClaims, len(claims)+2)
	for key, value := range claims {
		mapClaims[key] = value
	}
	mapClaims["iat"] = now.Unix()
	mapClaims["exp"] = now.Add(tg.expiry).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	tokenString, err := token.SignedString(tg.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates a token and returns its claims.
//
// An empty token yields ErrMissingCredential, every other failure wraps ErrUnauthenticated.
func (tg *TokenGenerator) Verify(tokenString string) (Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingCredential
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tg.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(tg.now))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse token: %w", ErrUnauthenticated, err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: token is invalid", ErrUnauthenticated)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrUnauthenticated)
	}

	claims := Claims(mapClaims)
	if claims.Email() == "" {
		return nil, fmt.Errorf("%w: email not found in token", ErrUnauthenticated)
	}

	return claims, nil
}
