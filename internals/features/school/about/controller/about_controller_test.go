package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/school/about/model"
	userService "sekolahku_backend/internals/features/users/user/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/testdb"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

// X-Test-Scope: "<level>/<role>" menyimulasikan hasil session resolver.
func newApp(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-Test-Scope"); v != "" {
			level, role, _ := strings.Cut(v, "/")
			helperAuth.SetSessionScope(c, &userService.SessionScope{UserID: uuid.New(), SchoolLevel: level, Role: role})
		}
		return c.Next()
	})
	ctl := NewAboutController(db)
	app.Get("/about", ctl.Get)
	app.Put("/about", ctl.Save)
	return app
}

func call(t *testing.T, app *fiber.App, method, scope, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, "/about", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if scope != "" {
		req.Header.Set("X-Test-Scope", scope)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestAboutGetWithoutScopeIsEmpty(t *testing.T) {
	db := testdb.Open(t, &model.AboutModel{})
	app := newApp(db)

	code, env := call(t, app, http.MethodGet, "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "null", string(env.Data))
}

func TestAboutSaveFlow(t *testing.T) {
	db := testdb.Open(t, &model.AboutModel{})
	app := newApp(db)

	code, env := call(t, app, http.MethodGet, "sma/admin", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", string(env.Data))

	code, env = call(t, app, http.MethodPut, "sma/admin", `{"contact_phone":"021-1","contact_email":"a@b.id"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, MsgContactSaved, env.Message)
	var first map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.Equal(t, "Profil Sekolah", first["title"])
	assert.Equal(t, "", first["content"])
	assert.Equal(t, "SMA", first["school_level_label"])

	code, env = call(t, app, http.MethodPut, "sma/staff", `{"contact_phone":"021-2"}`)
	require.Equal(t, http.StatusOK, code)
	var second map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, "021-2", second["contact_phone"])
	assert.Nil(t, second["contact_email"])

	var n int64
	require.NoError(t, db.Model(&model.AboutModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestAboutSaveGuards(t *testing.T) {
	db := testdb.Open(t, &model.AboutModel{})
	app := newApp(db)

	code, env := call(t, app, http.MethodPut, "", `{"contact_phone":"1"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Profil atau peran belum diatur", env.Message)

	code, _ = call(t, app, http.MethodPut, "sd/viewer", `{"contact_phone":"1"}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = call(t, app, http.MethodPut, "sd/admin", `{"contact_email":"bukan-email"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)

	var n int64
	require.NoError(t, db.Model(&model.AboutModel{}).Count(&n).Error)
	assert.Zero(t, n)
}
