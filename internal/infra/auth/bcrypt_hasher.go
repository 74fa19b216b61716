// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"quizauth/config"
	"quizauth/internal/domain/service"
)

// maxPasswordBytes is the bcrypt key length; later bytes never affect the hash.
const maxPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) (service.PasswordHasher, error) {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	return NewBcryptHasherWithCost(cost)
}

// NewBcryptHasherWithCost builds a hasher with an explicit work factor.
func NewBcryptHasherWithCost(cost int) (service.PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &bcryptHasher{cost: cost}, nil
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation. Input past 72 bytes is ignored.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(bcryptKey(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt.GenerateFromPassword")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptKey(password))
	// err is nil if the password and hash match.
	return err == nil
}

// bcryptKey truncates the password to the bytes bcrypt consumes.
// x/crypto/bcrypt rejects longer input instead of truncating it.
func bcryptKey(password string) []byte {
	key := []byte(password)
	if len(key) > maxPasswordBytes {
		key = key[:maxPasswordBytes]
	}

	return key
}
