// Package password provides one-way password hashing and verification.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	// Hash applies a salted one-way hash to the plaintext password.
	// The result differs between calls because bcrypt embeds a random salt.
	Hash(plain string) (string, error)

	// Verify compares a plaintext password against a stored hash in constant time.
	// A mismatch returns (false, nil); an error is returned only for a malformed hash.
	Verify(plain, hash string) (bool, error)
}

// bcryptHasher implements the Hasher interface on top of bcrypt.
type bcryptHasher struct {
	cost int
}

var _ Hasher = (*bcryptHasher)(nil)

// NewHasher creates a bcrypt-backed Hasher with the default cost.
func NewHasher() *bcryptHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash generates a salted bcrypt hash of the plaintext password.
func (h *bcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the bcrypt hash.
// The first argument to bcrypt is the hashed password, the second the plaintext.
func (h *bcryptHasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case err == bcrypt.ErrMismatchedHashAndPassword:
		return false, nil
	default:
		// Malformed or truncated hash input
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
}
