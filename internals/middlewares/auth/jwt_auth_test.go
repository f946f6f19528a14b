package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userService "sekolahku_backend/internals/features/users/user/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newApp(opts AuthJWTOpts) *fiber.App {
	app := fiber.New()
	app.Get("/who", AuthJWT(opts), func(c *fiber.Ctx) error {
		id := helper.GetOptionalUserID(c)
		if id == nil {
			return c.SendString("anon")
		}
		return c.SendString(id.String())
	})
	return app
}

func get(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestAuthJWT(t *testing.T) {
	uid := uuid.New()
	valid := sign(t, jwt.MapClaims{"id": uid.String(), "exp": time.Now().Add(time.Hour).Unix()}, testSecret)
	expired := sign(t, jwt.MapClaims{"id": uid.String(), "exp": time.Now().Add(-time.Hour).Unix()}, testSecret)
	wrongKey := sign(t, jwt.MapClaims{"id": uid.String()}, "other")

	strict := newApp(AuthJWTOpts{Secret: testSecret})

	t.Run("bearer ok", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		code, body := get(t, strict, req)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, uid.String(), body)
	})

	for name, tok := range map[string]string{"missing": "", "expired": expired, "wrong key": wrongKey} {
		t.Run(name+" rejected", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tok != "" {
				req.Header.Set("Authorization", "Bearer "+tok)
			}
			code, _ := get(t, strict, req)
			assert.Equal(t, http.StatusUnauthorized, code)
		})
	}

	t.Run("cookie only when allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: valid})
		code, _ := get(t, strict, req)
		assert.Equal(t, http.StatusUnauthorized, code)

		withCookie := newApp(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true})
		req = httptest.NewRequest(http.MethodGet, "/who", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: valid})
		code, body := get(t, withCookie, req)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, uid.String(), body)
	})

	t.Run("blacklisted", func(t *testing.T) {
		app := newApp(AuthJWTOpts{
			Secret:           testSecret,
			BlacklistChecker: func(*fiber.Ctx, string) (bool, error) { return true, nil },
		})
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		code, _ := get(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("optional lets anonymous through", func(t *testing.T) {
		app := newApp(AuthJWTOpts{Secret: testSecret, Optional: true})
		code, body := get(t, app, httptest.NewRequest(http.MethodGet, "/who", nil))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "anon", body)

		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		code, body = get(t, app, req)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "anon", body)
	})
}

func TestOnlyRoles(t *testing.T) {
	app := fiber.New()
	guard := OnlyRoles("khusus admin", "admin")
	setScope := func(role string) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if role != "" {
				helperAuth.SetSessionScope(c, &userService.SessionScope{UserID: uuid.New(), SchoolLevel: "sd", Role: role})
			}
			return c.Next()
		}
	}
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }
	app.Get("/admin", setScope("admin"), guard, ok)
	app.Get("/staff", setScope("staff"), guard, ok)
	app.Get("/none", setScope(""), guard, ok)

	for path, want := range map[string]int{"/admin": 204, "/staff": 403, "/none": 403} {
		code, _ := get(t, app, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, code, path)
	}
}
