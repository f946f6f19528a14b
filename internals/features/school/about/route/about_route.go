package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	aboutController "sekolahku_backend/internals/features/school/about/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// AboutAdminRoutes dipasang di bawah /api/a (JWT + session scope sudah aktif).
func AboutAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := aboutController.NewAboutController(db)

	g := r.Group("/about")
	g.Get("/", ctl.Get)
	g.Put("/",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorEditor("kontak"), constants.EditorRoles),
		ctl.Save,
	)
}
