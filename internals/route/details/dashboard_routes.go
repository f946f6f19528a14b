package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	dashboardRoute "sekolahku_backend/internals/features/dashboard/route"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

func DashboardRoutes(app *fiber.App, db *gorm.DB, uploader helperOSS.ImageUploader) {
	dashboardRoute.DashboardRoutes(app, db, dashboardRoute.Options{
		CSRF:         configs.GetEnvBool("DASHBOARD_CSRF", true),
		CookieSecure: configs.CookieSecure,
		Uploader:     uploader,
	})
}
