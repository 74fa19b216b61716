package validator

import (
	"strings"
	"testing"

	domainerrors "quizauth/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestCustomValidator_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		input   credentials
		wantMsg string
	}{
		{
			name:  "valid",
			input: credentials{Username: "alice", Password: "secret123"},
		},
		{
			name:    "missing username",
			input:   credentials{Password: "secret123"},
			wantMsg: `"username" is required`,
		},
		{
			name:    "non alphanumeric username",
			input:   credentials{Username: "al!ce", Password: "secret123"},
			wantMsg: `"username" must only contain alpha-numeric characters`,
		},
		{
			name:    "short username",
			input:   credentials{Username: "al", Password: "secret123"},
			wantMsg: `"username" length must be at least 3 characters long`,
		},
		{
			name:    "long username",
			input:   credentials{Username: strings.Repeat("a", 31), Password: "secret123"},
			wantMsg: `"username" length must be less than or equal to 30 characters long`,
		},
		{
			name:    "missing password",
			input:   credentials{Username: "alice"},
			wantMsg: `"password" is required`,
		},
		{
			name:    "short password",
			input:   credentials{Username: "alice", Password: "12345"},
			wantMsg: `"password" length must be at least 6 characters long`,
		},
		{
			name:  "username at bounds",
			input: credentials{Username: strings.Repeat("a", 30), Password: strings.Repeat("p", 200)},
		},
	}

	v := New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&tc.input)
			if tc.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, 400, appErr.HTTPCode())
			assert.Equal(t, tc.wantMsg, appErr.Message())
		})
	}
}
