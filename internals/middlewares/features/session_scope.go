package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userService "sekolahku_backend/internals/features/users/user/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

const scopeLookupTimeout = 5 * time.Second

// UseSessionScope menjalankan resolver sekali per request. Gagal resolve tidak
// menghentikan request; handler yang membaca scope memutuskan sendiri.
func UseSessionScope(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := helper.GetOptionalUserID(c)
		if userID == nil {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), scopeLookupTimeout)
		defer cancel()

		if scope, ok := userService.ResolveSessionScope(ctx, db, userID); ok {
			helperAuth.SetSessionScope(c, scope)
		}
		return c.Next()
	}
}
