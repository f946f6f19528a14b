package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// RequireJWT: dipakai /api/... (Bearer atau cookie), cek blacklist ke DB.
func RequireJWT(db *gorm.DB) fiber.Handler {
	return AuthJWT(defaultOpts(db, false))
}

// OptionalJWT: dipakai halaman dashboard; tanpa sesi tetap lanjut sebagai anonim.
func OptionalJWT(db *gorm.DB) fiber.Handler {
	return AuthJWT(defaultOpts(db, true))
}

func defaultOpts(db *gorm.DB, optional bool) AuthJWTOpts {
	secret := configs.JWTSecret
	return AuthJWTOpts{
		Secret: secret,
		BlacklistChecker: func(c *fiber.Ctx, raw string) (bool, error) {
			return helperAuth.IsBlacklisted(c.UserContext(), db, raw, secret)
		},
		AllowCookieFallback: true,
		Optional:            optional,
	}
}
