package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helperOSS "sekolahku_backend/internals/helpers/oss"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	featuresMiddleware "sekolahku_backend/internals/middlewares/features"
	routeDetails "sekolahku_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes: uploader boleh nil (OSS belum dikonfigurasi).
func SetupRoutes(app *fiber.App, db *gorm.DB, uploader helperOSS.ImageUploader) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== ADMIN (per jenjang) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + Session Scope)...")
	admin := app.Group("/api/a",
		authMiddleware.RequireJWT(db),
		featuresMiddleware.UseSessionScope(db),
	)
	routeDetails.SchoolAdminRoutes(admin, db, uploader)

	// ===================== DASHBOARD (HTML) =====================
	log.Println("[INFO] Mounting Dashboard routes...")
	routeDetails.DashboardRoutes(app, db, uploader)
}
