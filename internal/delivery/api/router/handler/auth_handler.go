// Package handler contains the echo handlers for the public endpoints.
package handler

import (
	"log/slog"
	"net/http"

	"quizauth/internal/delivery/api/response"
	deliverycontext "quizauth/internal/delivery/context"
	domainerrors "quizauth/internal/domain/errors"
	"quizauth/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves register, login and verify.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// CredentialsRequest is the body of POST /register and POST /login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse is the data returned after register and login.
type AuthResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Token    string    `json:"token"`
}

// IdentityResponse is the data returned by verify.
type IdentityResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	input, err := bindCredentials(c)
	if err != nil {
		return err
	}

	output, err := h.authUC.Register(c.Request().Context(), input)
	if err != nil {
		return errors.Wrap(err, "register")
	}

	return response.Success(c, http.StatusCreated, "User registered successfully", AuthResponse{
		UserID:   output.UserID,
		Username: output.Username,
		Token:    output.Token,
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	input, err := bindCredentials(c)
	if err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), input)
	if err != nil {
		return errors.Wrap(err, "login")
	}

	return response.Success(c, http.StatusOK, "Login successful", AuthResponse{
		UserID:   output.UserID,
		Username: output.Username,
		Token:    output.Token,
	})
}

// Verify handles GET /verify. It runs behind AuthMiddleware.Authenticate.
func (h *AuthHandler) Verify(c echo.Context) error {
	userID, username, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return domainerrors.ErrTokenMissing
	}

	return response.Success(c, http.StatusOK, "Token is valid", IdentityResponse{
		UserID:   userID,
		Username: username,
	})
}

func bindCredentials(c echo.Context) (*usecase.CredentialsInput, error) {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code == http.StatusRequestEntityTooLarge {
			return nil, err
		}

		return nil, domainerrors.ErrInvalidPayload.WrapMessage(err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	return &usecase.CredentialsInput{
		Username: req.Username,
		Password: req.Password,
	}, nil
}
