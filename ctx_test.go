package auth_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/portalis/go-portal-auth"
)

func TestUserContext(t *testing.T) {
	user := &auth.User{Email: "member@example.com"}

	ctx := auth.WithContext(context.Background(), user)

	found, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user, found)

	_, ok = auth.FromContext(context.Background())
	assert.False(t, ok, "empty contexts carry no user")
}

func TestClaimsContext(t *testing.T) {
	claims := &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		UID:              "user-1",
	}

	ctx := auth.WithClaimsContext(context.Background(), claims)

	found, ok := auth.GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-1", found.UserID())

	_, ok = auth.GetClaims(context.Background())
	assert.False(t, ok)
}

func TestGetRouterClaims(t *testing.T) {
	claims := &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		UID:              "user-1",
		Admin:            true,
	}

	t.Run("reads claims from the configured key", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["token-claims"] = claims

		found, ok := auth.GetRouterClaims(ctx, "token-claims")
		require.True(t, ok)
		assert.Equal(t, "user-1", found.UserID())
	})

	t.Run("empty key falls back to the middleware default", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["user"] = claims

		found, ok := auth.GetRouterClaims(ctx, "")
		require.True(t, ok)
		assert.Equal(t, "user-1", found.UserID())
	})

	t.Run("missing or foreign values do not map", func(t *testing.T) {
		ctx := router.NewMockContext()
		_, ok := auth.GetRouterClaims(ctx, "user")
		assert.False(t, ok)

		ctx = router.NewMockContext()
		ctx.LocalsMock["user"] = "not-a-claims-object"
		_, ok = auth.GetRouterClaims(ctx, "user")
		assert.False(t, ok)
	})
}

func TestIsAdminFromRouter(t *testing.T) {
	ctx := router.NewMockContext()
	ctx.LocalsMock["user"] = &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		UID:              "user-1",
		Admin:            true,
	}

	assert.True(t, auth.IsAdminFromRouter(ctx, "user"))

	ctx = router.NewMockContext()
	assert.False(t, auth.IsAdminFromRouter(ctx, "user"))
}
