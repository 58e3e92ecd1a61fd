// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrIncorrectPassword is returned when the supplied password does not match the stored hash.
	ErrIncorrectPassword = errors.New("incorrect password")
)
