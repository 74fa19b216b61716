package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "quizauth/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		err        error
		wantStatus int
		wantBody   string
		wantLogged bool
	}{
		{
			name:       "client app error",
			method:     http.MethodPost,
			err:        domainerrors.ErrUsernameTaken.WrapMessage("register"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":true,"message":"Username already exists"}`,
		},
		{
			name:       "wrapped app error keeps its status",
			method:     http.MethodGet,
			err:        errors.Wrap(domainerrors.ErrTokenExpired, "verify"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":true,"message":"Token expired"}`,
		},
		{
			name:       "server app error is logged but not exposed",
			method:     http.MethodPost,
			err:        domainerrors.ErrStoreUnavailable.WithDetails("dial tcp: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":true,"message":"Internal server error"}`,
			wantLogged: true,
		},
		{
			name:       "framework not found",
			method:     http.MethodGet,
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":true,"message":"Not Found"}`,
		},
		{
			name:       "body too large",
			method:     http.MethodPost,
			err:        echo.ErrStatusRequestEntityTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   `{"error":true,"message":"Request Entity Too Large"}`,
		},
		{
			name:       "unknown error becomes generic 500",
			method:     http.MethodGet,
			err:        errors.New("secret-bearing failure"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":true,"message":"Internal server error"}`,
			wantLogged: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logs, nil))

			e := echo.New()
			req := httptest.NewRequest(tc.method, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewErrorMiddleware(logger).HandleHTTPError(tc.err, c)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "connection refused")
			assert.NotContains(t, rec.Body.String(), "secret-bearing")
			assert.Equal(t, tc.wantLogged, logs.Len() > 0)
		})
	}
}

func TestErrorMiddleware_HeadRequestHasNoBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewErrorMiddleware(slog.Default()).HandleHTTPError(echo.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestErrorMiddleware_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	NewErrorMiddleware(slog.Default()).HandleHTTPError(domainerrors.ErrInternalError, c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
