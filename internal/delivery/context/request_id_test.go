package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestIsValidRequestID(t *testing.T) {
	testCases := []struct {
		id   string
		want bool
	}{
		{id: uuid.NewString(), want: true},
		{id: "trace-01:abc_def.1", want: true},
		{id: "", want: false},
		{id: "has space", want: false},
		{id: "line\nbreak", want: false},
		{id: strings.Repeat("a", 129), want: false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, IsValidRequestID(tc.id), "id %q", tc.id)
	}
}

func TestRequestIDAndLoggerContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestIDFromContext(ctx))

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))

	scoped := fallback.With(slog.String("request_id", "abc"))
	ctx = WithLogger(WithRequestID(ctx, "abc"), scoped)
	assert.Equal(t, "abc", GetRequestIDFromContext(ctx))
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}

func TestIdentityFromRequestIDFile(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, _, ok := GetIdentity(c)
	assert.False(t, ok)

	userID := uuid.New()
	SetIdentity(c, userID, "alice")

	gotID, gotName, ok := GetIdentity(c)
	assert.True(t, ok)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "alice", gotName)
}
