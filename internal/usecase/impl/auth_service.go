// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "quizauth/internal/delivery/context"
	"quizauth/internal/domain/entity"
	domainerrors "quizauth/internal/domain/errors"
	"quizauth/internal/domain/repository"
	"quizauth/internal/domain/service"
	"quizauth/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const outcomeSuccess = "success"

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	metrics      service.AuthMetrics
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Metrics      service.AuthMetrics `optional:"true"`
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	metrics := params.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		metrics:      metrics,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account and issues its first token.
func (srv *authService) Register(ctx context.Context, input *usecase.CredentialsInput) (output *usecase.AuthOutput, err error) {
	defer func() { srv.observe(service.OperationRegister, err) }()

	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	// Fast path only. Concurrent registrations are settled by the store's unique constraint.
	_, err = srv.userRepo.FindByUsername(ctx, input.Username)
	switch {
	case err == nil:
		srv.log(ctx).Warn("Username already registered", slog.String("username", input.Username))

		return nil, domainerrors.ErrUsernameTaken.WrapMessage("username found before insert")
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "failed to check username availability")
	}

	hashedPassword, err := srv.hashPassword(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed.WithDetails(err.Error()), "failed to hash password during registration")
	}

	newUser := &entity.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}
	if err = srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, domainerrors.ErrUsernameTaken) {
			srv.log(ctx).Warn("Username taken by concurrent registration", slog.String("username", input.Username))
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	output, err = srv.issue(newUser)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return output, nil
}

// Login authenticates a username/password pair.
//
// An unknown username and a wrong password produce the same error so that
// callers cannot tell which accounts exist.
func (srv *authService) Login(ctx context.Context, input *usecase.CredentialsInput) (output *usecase.AuthOutput, err error) {
	defer func() { srv.observe(service.OperationLogin, err) }()

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Login failed", slog.String("username", input.Username))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login rejected")
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !srv.checkPassword(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login failed", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login rejected")
	}

	output, err = srv.issue(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token on login", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID))

	return output, nil
}

// Verify returns the identity carried by a valid token. It never touches the store.
func (srv *authService) Verify(ctx context.Context, token string) (output *usecase.VerifyOutput, err error) {
	defer func() { srv.observe(service.OperationVerify, err) }()

	if token == "" {
		return nil, domainerrors.ErrTokenMissing
	}

	identity, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.log(ctx).Debug("Token rejected", slog.Any("error", err))

		return nil, err
	}

	return &usecase.VerifyOutput{
		UserID:   identity.UserID,
		Username: identity.Username,
	}, nil
}

func (srv *authService) issue(user *entity.User) (*usecase.AuthOutput, error) {
	issued, err := srv.tokenService.Issue(user.ID, user.Username)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed.WithDetails(err.Error()), "failed to issue token")
	}

	return &usecase.AuthOutput{
		UserID:    user.ID,
		Username:  user.Username,
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

func (srv *authService) hashPassword(password string) (string, error) {
	start := time.Now()
	defer func() { srv.metrics.ObservePasswordHash(service.OperationRegister, time.Since(start)) }()

	return srv.hasher.Hash(password)
}

func (srv *authService) checkPassword(password, hash string) bool {
	start := time.Now()
	defer func() { srv.metrics.ObservePasswordHash(service.OperationLogin, time.Since(start)) }()

	return srv.hasher.Check(password, hash)
}

func (srv *authService) observe(operation string, err error) {
	if err == nil {
		srv.metrics.ObserveRequest(operation, outcomeSuccess)

		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		srv.metrics.ObserveRequest(operation, appErr.ErrorCode())

		return
	}

	srv.metrics.ObserveRequest(operation, domainerrors.ErrInternalError.ErrorCode())
}

type noopMetrics struct{}

func (noopMetrics) ObserveRequest(string, string) {}

func (noopMetrics) ObservePasswordHash(string, time.Duration) {}
