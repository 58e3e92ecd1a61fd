// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and profile data.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	PasswordHash string `gorm:"size:255;not null"`

	// FirstName is the user's given name.
	FirstName string `gorm:"size:100;not null"`

	// LastName is the user's family name.
	LastName string `gorm:"size:100;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// Username returns the user's display name composed of first and last name.
func (u *User) Username() string {
	return u.FirstName + " " + u.LastName
}
