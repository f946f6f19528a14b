package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/dashboard/views"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/testdb"
)

func TestSetupRoutesWiring(t *testing.T) {
	prev := configs.JWTSecret
	configs.JWTSecret = "routes-test-secret"
	t.Cleanup(func() { configs.JWTSecret = prev })
	t.Setenv("DASHBOARD_CSRF", "false")

	db := testdb.Open(t, &authModel.TokenBlacklist{})
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler, Views: views.NewEngine()})
	SetupRoutes(app, db, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/api/a/about", "/api/a/achievements"} {
		resp, err = app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)

		var body helper.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, "UNAUTHORIZED", body.ErrorCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard/about", resp.Header.Get("Location"))
}
