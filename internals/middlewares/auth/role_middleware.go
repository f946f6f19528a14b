package auth

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// OnlyRolesSlice: role diambil dari session scope (hasil resolver), bukan dari klaim JWT.
// Tanpa scope → 403 "Profil atau peran belum diatur".
func OnlyRolesSlice(message string, allowedRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, ok := helperAuth.GetSessionScope(c)
		if !ok {
			return helperAuth.ErrScopeUnresolved
		}
		for _, allowed := range allowedRoles {
			if scope.Role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, message)
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(message string, roles ...string) fiber.Handler {
	return OnlyRolesSlice(message, roles)
}
