package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quizauth/internal/delivery/api/validator"
	domainerrors "quizauth/internal/domain/errors"
	mockusecase "quizauth/internal/mocks/usecase"
	"quizauth/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	userID := uuid.New()

	testCases := []struct {
		name       string
		body       string
		setupMock  func(m *mockusecase.MockAuthUsecase)
		wantStatus int
		wantErr    error
	}{
		{
			name: "created",
			body: `{"username":"alice","password":"secret123","extra":"ignored"}`,
			setupMock: func(m *mockusecase.MockAuthUsecase) {
				m.EXPECT().Register(mock.Anything, &usecase.CredentialsInput{Username: "alice", Password: "secret123"}).
					Return(&usecase.AuthOutput{UserID: userID, Username: "alice", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:      "invalid json never reaches the usecase",
			body:      `not json`,
			setupMock: func(m *mockusecase.MockAuthUsecase) {},
			wantErr:   domainerrors.ErrInvalidPayload,
		},
		{
			name:      "validation failure never reaches the usecase",
			body:      `{"username":"al","password":"secret123"}`,
			setupMock: func(m *mockusecase.MockAuthUsecase) {},
			wantErr:   domainerrors.ErrValidationFailed,
		},
		{
			name: "store unavailable",
			body: `{"username":"alice","password":"secret123"}`,
			setupMock: func(m *mockusecase.MockAuthUsecase) {
				m.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrStoreUnavailable)
			},
			wantErr: domainerrors.ErrStoreUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			authUC := mockusecase.NewMockAuthUsecase(t)
			tc.setupMock(authUC)
			h := NewAuthHandler(AuthHandlerParams{AuthUC: authUC, Logger: slog.Default()})

			c, rec := newContext(http.MethodPost, tc.body)
			err := h.Register(c)

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var body struct {
				Error   bool         `json:"error"`
				Message string       `json:"message"`
				Data    AuthResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Error)
			assert.Equal(t, "User registered successfully", body.Message)
			assert.Equal(t, AuthResponse{UserID: userID, Username: "alice", Token: "tok"}, body.Data)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	authUC := mockusecase.NewMockAuthUsecase(t)
	authUC.EXPECT().Login(mock.Anything, &usecase.CredentialsInput{Username: "alice", Password: "wrongpass"}).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("login rejected"))
	h := NewAuthHandler(AuthHandlerParams{AuthUC: authUC, Logger: slog.Default()})

	c, _ := newContext(http.MethodPost, `{"username":"alice","password":"wrongpass"}`)
	err := h.Login(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthHandler_VerifyWithoutIdentity(t *testing.T) {
	h := NewAuthHandler(AuthHandlerParams{AuthUC: mockusecase.NewMockAuthUsecase(t), Logger: slog.Default()})

	c, _ := newContext(http.MethodGet, "")
	err := h.Verify(c)

	assert.True(t, errors.Is(err, domainerrors.ErrTokenMissing))
}
