// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"quizauth/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the credential store operations.
//
// Implementations enforce username uniqueness on Create and report a conflict as
// domainerrors.ErrUsernameTaken. Connectivity and timeout failures are reported as
// domainerrors.ErrStoreUnavailable.
type UserRepository interface {
	// FindByUsername retrieves a single user by their exact username.
	// It returns ErrUserNotFound when no such user exists.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user, filling in ID and CreatedAt.
	Create(ctx context.Context, user *entity.User) error
}
