package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermodel "sekolahku_backend/internals/features/users/user/model"
	userService "sekolahku_backend/internals/features/users/user/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/testdb"
)

func TestUseSessionScope(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &usermodel.ProfileModel{}, &usermodel.UserRoleModel{})

	ready := uuid.New()
	require.NoError(t, userService.EnsureProfileRow(ctx, db, ready, "Guru", "sma"))
	require.NoError(t, userService.GrantRole(ctx, db, ready, "staff"))
	noRole := uuid.New()
	require.NoError(t, userService.EnsureProfileRow(ctx, db, noRole, "Baru", "sd"))

	app := fiber.New()
	app.Get("/scope", func(c *fiber.Ctx) error {
		if id := c.Query("uid"); id != "" {
			c.Locals(helper.LocUserID, id)
		}
		return c.Next()
	}, UseSessionScope(db), func(c *fiber.Ctx) error {
		s, ok := helperAuth.GetSessionScope(c)
		if !ok {
			return c.SendString("none")
		}
		return c.SendString(s.SchoolLevel + "/" + s.Role)
	})

	cases := map[string]string{
		"":               "none",
		ready.String():   "sma/staff",
		noRole.String():  "none",
		"bukan-uuid":     "none",
		uuid.NewString(): "none",
	}
	for uid, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/scope?uid="+uid, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, want, string(body), "uid=%q", uid)
	}
}
