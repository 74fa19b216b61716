// Package memory implements an in-memory credential store for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"quizauth/internal/domain/entity"
	domainerrors "quizauth/internal/domain/errors"
	"quizauth/internal/domain/repository"

	"github.com/google/uuid"
)

// UserRepository keeps users in a map keyed by username.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
	now   func() time.Time
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates an empty store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]entity.User),
		now:   time.Now,
	}
}

// FindByUsername returns a copy of the stored user.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

// Create stores the user, assigning ID and CreatedAt. The uniqueness check and the
// insert happen under one lock.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return domainerrors.ErrUsernameTaken.WrapMessage("username unique constraint")
	}

	user.ID = uuid.New()
	user.CreatedAt = r.now().UTC()
	r.users[user.Username] = *user

	return nil
}
