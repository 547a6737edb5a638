package auth_test

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"

	auth "github.com/portalis/go-portal-auth"
)

func TestAuthErrorCodes(t *testing.T) {
	cases := []struct {
		name     string
		err      *goerrors.Error
		code     int
		textCode string
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, goerrors.CodeBadRequest, "INVALID_CREDENTIALS"},
		{"account pending", auth.ErrAccountPending, goerrors.CodeUnauthorized, "ACCOUNT_PENDING"},
		{"account blocked", auth.ErrAccountBlocked, goerrors.CodeForbidden, "ACCOUNT_BLOCKED"},
		{"token expired", auth.ErrTokenExpired, goerrors.CodeUnauthorized, "TOKEN_EXPIRED"},
		{"token malformed", auth.ErrTokenMalformed, goerrors.CodeUnauthorized, "TOKEN_MALFORMED"},
		{"identity not found", auth.ErrIdentityNotFound, goerrors.CodeUnauthorized, "IDENTITY_NOT_FOUND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.textCode, tc.err.TextCode)
		})
	}
}

func TestCredentialErrorsShareMessage(t *testing.T) {
	// unknown email and wrong password must be indistinguishable to callers
	assert.Equal(t, "Invalid email or password", auth.ErrInvalidCredentials.Message)
}

func TestStatusMessagesMatchPortalCopy(t *testing.T) {
	assert.Equal(t,
		"Please activate your account. Check your email for an activation email",
		auth.ErrAccountPending.Message,
	)
	assert.Equal(t, "Your account has been blocked", auth.ErrAccountBlocked.Message)
}

func TestIsTokenExpiredError(t *testing.T) {
	assert.True(t, auth.IsTokenExpiredError(auth.ErrTokenExpired))
	assert.True(t, auth.IsTokenExpiredError(errors.New("jwt: token is expired by 3h")))
	assert.False(t, auth.IsTokenExpiredError(errors.New("some other error")))
	assert.False(t, auth.IsTokenExpiredError(nil))
}

func TestIsMalformedError(t *testing.T) {
	assert.True(t, auth.IsMalformedError(auth.ErrTokenMalformed))
	assert.True(t, auth.IsMalformedError(errors.New("missing or malformed JWT")))
	assert.False(t, auth.IsMalformedError(errors.New("some other error")))
	assert.False(t, auth.IsMalformedError(nil))
}
