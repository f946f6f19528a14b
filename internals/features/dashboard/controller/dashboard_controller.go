package controller

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/dashboard/views"
	userService "sekolahku_backend/internals/features/users/user/service"
	helper "sekolahku_backend/internals/helpers"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

const (
	LocCSRF      = "csrf"
	storeTimeout = 5 * time.Second
)

type DashboardController struct {
	DB           *gorm.DB
	Validator    *validator.Validate
	CookieSecure bool
	Uploader     helperOSS.ImageUploader
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{
		DB:           db,
		Validator:    validator.New(),
		CookieSecure: configs.CookieSecure,
	}
}

func storeCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), storeTimeout)
}

// page menyiapkan data layout. Tanpa scope flash tidak dibaca (halaman kosong tanpa toast).
func (ctl *DashboardController) page(c *fiber.Ctx, title string, scope *userService.SessionScope) fiber.Map {
	data := fiber.Map{
		"Title":   title,
		"Scope":   scope,
		"CanEdit": scope != nil && scope.CanEdit(),
	}
	if token, ok := c.Locals(LocCSRF).(string); ok {
		data["CSRF"] = token
	}
	if scope != nil {
		if f := helper.PopFlash(c); f != nil {
			data["Flash"] = f
		}
	}
	return data
}

func (ctl *DashboardController) render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	return c.Status(status).Render(name, data, views.MainLayout)
}

func (ctl *DashboardController) renderEmpty(c *fiber.Ctx, title string) error {
	return ctl.render(c, fiber.StatusOK, "empty", ctl.page(c, title, nil))
}

func (ctl *DashboardController) flashAndRedirect(c *fiber.Ctx, kind helper.FlashKind, msg, to string) error {
	helper.SetFlash(c, kind, msg, ctl.CookieSecure)
	return c.Redirect(to, fiber.StatusSeeOther)
}

// errorToast: pesan error store apa adanya, fallback "Terjadi kesalahan".
func errorToast(err error) *helper.Flash {
	return &helper.Flash{Kind: helper.FlashError, Message: helper.ErrorMessage(err)}
}

func validationToast(err error) *helper.Flash {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &helper.Flash{Kind: helper.FlashError, Message: "Isian " + ve[0].Field() + " tidak valid"}
	}
	return errorToast(err)
}

// denied: mutasi tanpa scope / role editor → toast error lalu kembali ke halaman asal.
func (ctl *DashboardController) denied(c *fiber.Ctx, err error, back string) error {
	return ctl.flashAndRedirect(c, helper.FlashError, helper.ErrorMessage(err), back)
}
