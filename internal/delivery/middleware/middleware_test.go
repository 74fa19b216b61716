package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizauth/config"
	deliverycontext "quizauth/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	testCases := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "generated when absent", header: ""},
		{name: "propagated when valid", header: "client-trace-42", wantSame: true},
		{name: "replaced when invalid", header: "bad id\r\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := NewRequestIDMiddleware(slog.Default())
			var seen string
			err := mw.Process(func(c echo.Context) error {
				seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())
				assert.NotNil(t, deliverycontext.GetLogger(c.Request().Context()))

				return nil
			})(c)
			require.NoError(t, err)

			got := rec.Header().Get(deliverycontext.HeaderXRequestID)
			assert.Equal(t, got, seen)
			if tc.wantSame {
				assert.Equal(t, tc.header, got)
			} else {
				_, parseErr := uuid.Parse(got)
				assert.NoError(t, parseErr)
			}
		})
	}
}

func TestLoggerMiddleware_LogsServerErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		_ = c.String(http.StatusInternalServerError, "boom")
	}

	cfg := &config.Config{}
	mw := NewLoggerMiddleware(logger, cfg)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ok", nil), httptest.NewRecorder())
	require.NoError(t, mw.Handle(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c))
	assert.Empty(t, buf.String())

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/fail", nil), httptest.NewRecorder())
	require.NoError(t, mw.Handle(func(echo.Context) error { return echo.ErrInternalServerError })(c))
	assert.Contains(t, buf.String(), `"status":500`)
	assert.Contains(t, buf.String(), `"uri":"/fail"`)
}

func TestLoggerMiddleware_DebugLogsEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	cfg := &config.Config{}
	cfg.Env.Debug = true
	mw := NewLoggerMiddleware(logger, cfg)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer secret-token")
	c := e.NewContext(req, httptest.NewRecorder())
	require.NoError(t, mw.Handle(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c))

	assert.Contains(t, buf.String(), `"status":200`)
	assert.NotContains(t, buf.String(), "secret-token")
}
