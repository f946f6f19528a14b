package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	authService "sekolahku_backend/internals/features/users/auth/service"
	helper "sekolahku_backend/internals/helpers"
)

// GET /dashboard/login
func (ctl *DashboardController) LoginPage(c *fiber.Ctx) error {
	data := ctl.page(c, "Masuk", nil)
	data["Identifier"] = ""
	if f := helper.PopFlash(c); f != nil {
		data["Flash"] = f
	}
	return ctl.render(c, fiber.StatusOK, "login", data)
}

// POST /dashboard/login (form: identifier, password)
func (ctl *DashboardController) Login(c *fiber.Ctx) error {
	identifier := c.FormValue("identifier")
	password := c.FormValue("password")

	ctx, cancel := storeCtx(c)
	defer cancel()

	user, err := authService.Authenticate(ctx, ctl.DB, identifier, password)
	if err != nil {
		data := ctl.page(c, "Masuk", nil)
		data["Identifier"] = identifier
		data["Flash"] = errorToast(err)
		return ctl.render(c, fiber.StatusUnauthorized, "login", data)
	}

	token, exp, err := authService.IssueAccessToken(*user, time.Now().UTC())
	if err != nil {
		log.Printf("[ERROR] dashboard sign token: %v", err)
		return ctl.flashAndRedirect(c, helper.FlashError, "Gagal membuat sesi login", "/dashboard/login")
	}
	authService.SetAccessCookie(c, token, exp)
	return ctl.flashAndRedirect(c, helper.FlashSuccess, "Login berhasil", "/dashboard/about")
}

// POST /dashboard/logout
func (ctl *DashboardController) Logout(c *fiber.Ctx) error {
	if raw := helper.GetRawAccessToken(c); raw != "" {
		ctx, cancel := storeCtx(c)
		defer cancel()
		if err := authService.RevokeAccessToken(ctx, ctl.DB, raw); err != nil {
			log.Printf("[WARN] dashboard logout blacklist: %v", err)
		}
	}
	authService.ClearAccessCookie(c)
	return ctl.flashAndRedirect(c, helper.FlashSuccess, "Logout berhasil", "/dashboard/login")
}
