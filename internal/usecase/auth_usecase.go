// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CredentialsInput carries a username and plaintext password. It is never logged or stored.
type CredentialsInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by Register and Login.
type AuthOutput struct {
	UserID    uuid.UUID
	Username  string
	Token     string
	ExpiresAt time.Time
}

// VerifyOutput is the identity proven by a token.
type VerifyOutput struct {
	UserID   uuid.UUID
	Username string
}

// AuthUsecase defines the credential-issuance operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *CredentialsInput) (*AuthOutput, error)
	Login(ctx context.Context, input *CredentialsInput) (*AuthOutput, error)
	Verify(ctx context.Context, token string) (*VerifyOutput, error)
}
