package middleware

import (
	"strings"

	deliverycontext "quizauth/internal/delivery/context"
	domainerrors "quizauth/internal/domain/errors"
	"quizauth/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerScheme = "Bearer"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
}

// AuthMiddleware authenticates requests carrying a bearer access token.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{authUC: params.AuthUC}
}

// Authenticate verifies the bearer token and stores the identity on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrTokenMissing
		}
		if token == "" {
			return domainerrors.ErrTokenMalformed.WrapMessage("empty bearer token")
		}

		identity, err := m.authUC.Verify(c.Request().Context(), token)
		if err != nil {
			return err
		}

		deliverycontext.SetIdentity(c, identity.UserID, identity.Username)

		return next(c)
	}
}

// BearerToken extracts the token from an Authorization header value.
// ok is false when the header does not start with the bearer scheme, matched
// case-insensitively. The token is returned as sent and may be empty.
func BearerToken(header string) (token string, ok bool) {
	prefix := bearerScheme + " "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	return header[len(prefix):], true
}
