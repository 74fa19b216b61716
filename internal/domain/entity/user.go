// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. It is created once at registration and never updated.
type User struct {
	ID           uuid.UUID // Assigned by the store on insert.
	Username     string    // Unique login name, 3-30 ASCII alphanumeric characters.
	PasswordHash string    // bcrypt output; the plaintext password is never kept.
	CreatedAt    time.Time // Set by the store on insert.
}

// Identity is the subject proven by a valid access token.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// IssuedToken is a signed access token and the instant it stops being valid.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}
