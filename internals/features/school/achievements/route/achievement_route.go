package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	achievementController "sekolahku_backend/internals/features/school/achievements/controller"
	helperOSS "sekolahku_backend/internals/helpers/oss"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// AchievementAdminRoutes dipasang di bawah /api/a. uploader boleh nil.
func AchievementAdminRoutes(r fiber.Router, db *gorm.DB, uploader helperOSS.ImageUploader) {
	ctl := achievementController.NewAchievementController(db, uploader)
	editorOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorEditor("prestasi"), constants.EditorRoles)

	g := r.Group("/achievements")
	g.Get("/", ctl.List)
	g.Post("/images", editorOnly, ctl.UploadImage)
	g.Post("/", editorOnly, ctl.Create)
	g.Get("/:id", ctl.Detail)
	g.Patch("/:id", editorOnly, ctl.Patch)
	g.Delete("/:id", editorOnly, ctl.Delete)
}
