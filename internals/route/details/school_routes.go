package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AboutRoutes "sekolahku_backend/internals/features/school/about/route"
	AchievementRoutes "sekolahku_backend/internals/features/school/achievements/route"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

/* ===================== ADMIN (scope jenjang) ===================== */
// r sudah membawa JWT + session scope. uploader nil → upload gambar 503.
func SchoolAdminRoutes(r fiber.Router, db *gorm.DB, uploader helperOSS.ImageUploader) {
	AboutRoutes.AboutAdminRoutes(r, db)
	AchievementRoutes.AchievementAdminRoutes(r, db, uploader)
}
