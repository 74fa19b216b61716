package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"quizauth/internal/domain/entity"
)

// Claims defines the custom claims for the access token.
type Claims struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying access tokens.
// Verification is stateless and never consults the credential store.
type TokenService interface {
	// Issue signs a new access token for the given user.
	Issue(userID uuid.UUID, username string) (*entity.IssuedToken, error)

	// Verify checks signature and expiry and returns the identity the token proves.
	// It fails with ErrTokenExpired or ErrTokenMalformed.
	Verify(token string) (*entity.Identity, error)
}
