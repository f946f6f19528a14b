package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sekolahku_backend/internals/features/users/auth/controller"
	rateLimiter "sekolahku_backend/internals/middlewares"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	scopeMiddleware "sekolahku_backend/internals/middlewares/features"
)

// AuthRoutes → /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)

	// 🔐 Protected
	baseAuth.Post("/logout", authMiddleware.RequireJWT(db), authController.Logout)
	baseAuth.Get("/me",
		authMiddleware.RequireJWT(db),
		scopeMiddleware.UseSessionScope(db),
		authController.Me,
	)
}
