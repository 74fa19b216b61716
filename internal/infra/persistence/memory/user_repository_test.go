package memory

import (
	"context"
	"sync"
	"testing"

	"quizauth/internal/domain/entity"
	domainerrors "quizauth/internal/domain/errors"
	"quizauth/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := &entity.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, *user, *found)

	// Returned users are copies.
	found.PasswordHash = "changed"
	again, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", again.PasswordHash)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository()

	user, err := repo.FindByUsername(context.Background(), "ghost")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UsernameIsCaseSensitive(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Username: "alice", PasswordHash: "h"}))
	require.NoError(t, repo.Create(ctx, &entity.User{Username: "Alice", PasswordHash: "h"}))
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Username: "alice", PasswordHash: "h1"}))

	err := repo.Create(ctx, &entity.User{Username: "alice", PasswordHash: "h2"})
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h1", found.PasswordHash)
}

func TestUserRepository_ConcurrentCreate(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	const workers = 16
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, &entity.User{Username: "racer", PasswordHash: "h"})
		}(i)
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++

			continue
		}
		assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
	}
	assert.Equal(t, 1, created)
}

func TestUserRepository_CanceledContext(t *testing.T) {
	repo := NewUserRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByUsername(ctx, "alice")
	assert.True(t, errors.Is(err, domainerrors.ErrStoreUnavailable))

	err = repo.Create(ctx, &entity.User{Username: "alice"})
	assert.True(t, errors.Is(err, domainerrors.ErrStoreUnavailable))
}
