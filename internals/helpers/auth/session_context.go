package helper

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	userService "sekolahku_backend/internals/features/users/user/service"
)

const LocSessionScope = "session_scope"

var (
	ErrScopeUnresolved = fiber.NewError(fiber.StatusForbidden, "Profil atau peran belum diatur")
)

func SetSessionScope(c *fiber.Ctx, scope *userService.SessionScope) {
	if scope != nil {
		c.Locals(LocSessionScope, scope)
	}
}

// GetSessionScope: (nil,false) kalau middleware belum jalan atau scope tidak ada.
func GetSessionScope(c *fiber.Ctx) (*userService.SessionScope, bool) {
	s, ok := c.Locals(LocSessionScope).(*userService.SessionScope)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// RequireEditorScope dipakai handler mutasi: scope harus ada dan role admin/staff.
func RequireEditorScope(c *fiber.Ctx, feature string) (*userService.SessionScope, error) {
	s, ok := GetSessionScope(c)
	if !ok {
		return nil, ErrScopeUnresolved
	}
	if !s.CanEdit() {
		return nil, fiber.NewError(fiber.StatusForbidden, constants.RoleErrorEditor(feature))
	}
	return s, nil
}
