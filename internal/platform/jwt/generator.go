package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration is the default lifetime of an issued token.
const DefaultExpiration = time.Hour

var (
	// ErrTokenExpired is returned when a token's expiry time has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrInvalidToken is returned for a malformed token, a bad signature,
	// or an unexpected signing algorithm.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carries the identity fields embedded in a signed token.
type Claims struct {
	UserID uint
	Email  string
}

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// Validator defines the interface for JWT token validation.
type Validator interface {
	// ValidateToken verifies the token's signature and expiry and returns its claims.
	ValidateToken(token string) (Claims, error)
}

// tokenClaims is the wire representation of the token payload.
// The payload carries exactly the user id and email as identity claims.
type tokenClaims struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// generator implements the Generator and Validator interfaces.
type generator struct {
	secret     []byte
	expiration time.Duration
}

var (
	_ Generator = (*generator)(nil)
	_ Validator = (*generator)(nil)
)

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates an HS256-signed JWT token carrying the user's id and email.
func (g *generator) GenerateToken(userID uint, email string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		ID:    userID,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken parses the token, verifies its HMAC signature and expiry,
// and returns the embedded claims. The payload is never trusted before the
// signature has been verified.
func (g *generator) ValidateToken(tokenStr string) (Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: claims.ID, Email: claims.Email}, nil
}
