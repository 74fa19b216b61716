// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"quizauth/config"
	"quizauth/internal/domain/entity"
	domainerrors "quizauth/internal/domain/errors"
	"quizauth/internal/domain/repository"
	"quizauth/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultQueryTimeout = 5 * time.Second

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB, cfg *config.Config) repository.UserRepository {
	timeout := defaultQueryTimeout
	if cfg != nil && cfg.Store.QueryTimeout > 0 {
		timeout = cfg.Store.QueryTimeout
	}

	return &userRepository{
		db:           db,
		queryTimeout: timeout,
	}
}

// FindByUsername retrieves a single user by their exact username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.queryTimeout)
	defer cancel()

	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		Take(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		if isStoreUnavailable(err) {
			return nil, errors.Wrap(domainerrors.ErrStoreUnavailable.WithDetails(err.Error()), "failed to find user by username")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by username")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// Create inserts a new user. The database assigns the ID; the unique constraint on
// username is the authority on duplicates.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	ctx, cancel := context.WithTimeout(ctx, repo.queryTimeout)
	defer cancel()

	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUsernameTaken.WrapMessage("username unique constraint")
		}
		if isStoreUnavailable(err) {
			return errors.Wrap(domainerrors.ErrStoreUnavailable.WithDetails(err.Error()), "failed to create user")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required user information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
	}
}
