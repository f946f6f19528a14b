package helper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "sekolahku_backend/internals/features/users/auth/model"
	userService "sekolahku_backend/internals/features/users/user/service"
	"sekolahku_backend/internals/helpers/testdb"
)

func TestBlacklistLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &authModel.TokenBlacklist{})
	const secret = "s3cret"

	ok, err := IsBlacklisted(ctx, db, "tok-a", secret)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Add(ctx, db, "tok-a", secret, time.Now().Add(time.Hour)))
	require.NoError(t, Add(ctx, db, "tok-a", secret, time.Now().Add(2*time.Hour)))
	require.NoError(t, Add(ctx, db, "tok-old", secret, time.Now().Add(-time.Minute)))

	ok, err = IsBlacklisted(ctx, db, "tok-a", secret)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsBlacklisted(ctx, db, "tok-old", secret)
	require.NoError(t, err)
	assert.False(t, ok, "expired rows no longer block")

	var stored authModel.TokenBlacklist
	require.NoError(t, db.Where("token = ?", hmacHex("tok-a", secret)).Take(&stored).Error)
	assert.NotEqual(t, "tok-a", stored.Token)

	n, err := PurgeExpired(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var total int64
	require.NoError(t, db.Model(&authModel.TokenBlacklist{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestRequireEditorScope(t *testing.T) {
	app := fiber.New()
	withScope := func(s *userService.SessionScope) fiber.Handler {
		return func(c *fiber.Ctx) error {
			SetSessionScope(c, s)
			_, err := RequireEditorScope(c, "prestasi")
			if err != nil {
				return err
			}
			return c.SendStatus(fiber.StatusNoContent)
		}
	}
	app.Get("/none", withScope(nil))
	app.Get("/viewer", withScope(&userService.SessionScope{SchoolLevel: "sd", Role: "viewer"}))
	app.Get("/staff", withScope(&userService.SessionScope{SchoolLevel: "sd", Role: "staff"}))

	for path, want := range map[string]int{
		"/none":   fiber.StatusForbidden,
		"/viewer": fiber.StatusForbidden,
		"/staff":  fiber.StatusNoContent,
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
