package auth

import (
	"strings"
	"testing"
	"time"

	"quizauth/config"
	domainerrors "quizauth/internal/domain/errors"
	"quizauth/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestJWTService(t *testing.T, ttl time.Duration) (service.TokenService, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := NewJWTServiceWithOptions(testSecret, ttl, WithClock(clock.Now))
	require.NoError(t, err)

	return svc, clock
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, clock := newTestJWTService(t, time.Hour)

	userID := uuid.New()
	issued, err := svc.Issue(userID, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, clock.now.Add(time.Hour), issued.ExpiresAt)

	identity, err := svc.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}

func TestJWTService_Claims(t *testing.T) {
	svc, clock := newTestJWTService(t, 24*time.Hour)

	userID := uuid.New()
	issued, err := svc.Issue(userID, "alice")
	require.NoError(t, err)

	claims := &service.Claims{}
	_, err = jwt.ParseWithClaims(issued.Token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithTimeFunc(clock.Now))
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, clock.now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, clock.now.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestJWTService_Expiry(t *testing.T) {
	svc, clock := newTestJWTService(t, time.Hour)

	issued, err := svc.Issue(uuid.New(), "alice")
	require.NoError(t, err)

	start := clock.now

	// One second before expiry is still valid.
	clock.now = start.Add(time.Hour - time.Second)
	_, err = svc.Verify(issued.Token)
	assert.NoError(t, err)

	// Expiry instant itself is no longer valid.
	clock.now = start.Add(time.Hour)
	_, err = svc.Verify(issued.Token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))

	clock.now = start.Add(48 * time.Hour)
	_, err = svc.Verify(issued.Token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, _ := newTestJWTService(t, time.Hour)

	issued, err := svc.Issue(uuid.New(), "alice")
	require.NoError(t, err)

	parts := strings.Split(issued.Token, ".")
	require.Len(t, parts, 3)

	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	for i := range len(parts[2]) {
		sig := []byte(parts[2])
		idx := strings.IndexByte(alphabet, sig[i])
		require.GreaterOrEqual(t, idx, 0)
		// Flipping the lowest bit changes only unused bits when i is the last position.
		sig[i] = alphabet[idx^1]
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		identity, err := svc.Verify(tampered)
		assert.Nil(t, identity, "position %d", i)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed), "position %d", i)
	}
}

func TestJWTService_TamperedTrailingCharacter(t *testing.T) {
	svc, _ := newTestJWTService(t, time.Hour)

	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	for range 20 {
		issued, err := svc.Issue(uuid.New(), "alice")
		require.NoError(t, err)

		last := len(issued.Token) - 1
		idx := strings.IndexByte(alphabet, issued.Token[last])
		require.GreaterOrEqual(t, idx, 0)
		tampered := issued.Token[:last] + string(alphabet[idx^1])

		_, err = svc.Verify(tampered)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed), tampered)
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc, clock := newTestJWTService(t, time.Hour)

	other, err := NewJWTServiceWithOptions("another_secret", time.Hour, WithClock(clock.Now))
	require.NoError(t, err)

	issued, err := other.Issue(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = svc.Verify(issued.Token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed))
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	svc, clock := newTestJWTService(t, time.Hour)
	userID := uuid.New()

	claims := &service.Claims{
		UserID:   userID,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(clock.now),
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed))
}

func TestJWTService_MissingClaims(t *testing.T) {
	svc, clock := newTestJWTService(t, time.Hour)

	testCases := []struct {
		name   string
		claims jwt.Claims
	}{
		{
			name: "no expiry",
			claims: &service.Claims{
				UserID:   uuid.New(),
				Username: "alice",
			},
		},
		{
			name: "no user id",
			claims: &service.Claims{
				Username: "alice",
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
				},
			},
		},
		{
			name: "subject mismatch",
			claims: &service.Claims{
				UserID:   uuid.New(),
				Username: "alice",
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   uuid.NewString(),
					ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc.claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = svc.Verify(token)
			assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed))
		})
	}
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc, _ := newTestJWTService(t, time.Hour)

	for _, raw := range []string{"", "clearly-not-a-jwt-token-format", "a.b.c"} {
		identity, err := svc.Verify(raw)
		assert.Nil(t, identity)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed), "token %q", raw)
	}
}

func TestJWTService_ErrorsDoNotLeakSecret(t *testing.T) {
	svc, _ := newTestJWTService(t, time.Hour)

	_, err := svc.Verify("clearly-not-a-jwt-token-format")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testSecret)
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_TTLFromConfig(t *testing.T) {
	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Access: testSecret},
		Auth:      &config.AuthConfig{TokenTTL: 30 * time.Minute},
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	before := time.Now().Truncate(time.Second)
	issued, err := svc.Issue(uuid.New(), "alice")
	require.NoError(t, err)

	assert.WithinDuration(t, before.Add(30*time.Minute), issued.ExpiresAt, 2*time.Second)
}
