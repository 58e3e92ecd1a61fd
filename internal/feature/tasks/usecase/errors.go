// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when no task (or task-entry pair) matches
	// the requested ids within the requesting user's scope.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInconsistentPair is returned when a task/entry lookup that must
	// resolve to exactly one row resolves to more than one.
	ErrInconsistentPair = errors.New("expected exactly one matching task-entry pair")
)
