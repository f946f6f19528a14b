package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helper "sekolahku_backend/internals/helpers"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(c *fiber.Ctx, rawToken string) (bool, error) // true = token sudah logout
	AllowCookieFallback bool                                              // pakai cookie access_token jika tidak ada Bearer
	// Optional: request tanpa token / token invalid tetap diteruskan sebagai anonim.
	Optional bool
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		reject := func(msg string) error {
			if o.Optional {
				return c.Next()
			}
			return fiber.NewError(fiber.StatusUnauthorized, msg)
		}

		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := helper.BearerToken(c)
		if raw == "" && o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies(helper.AccessTokenCookie))
		}
		if raw == "" {
			return reject("Unauthorized")
		}

		// 2) Cek blacklist (opsional)
		if o.BlacklistChecker != nil {
			black, err := o.BlacklistChecker(c, raw)
			if err != nil {
				log.Printf("[ERROR] cek blacklist: %v", err)
			} else if black {
				return reject("Token revoked")
			}
		}

		// 3) Parse + verifikasi algoritma
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return reject("Invalid token")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return reject("Invalid token claims")
		}

		// user_id: ambil id/sub dalam urutan preferensi
		uid := strClaim(claims, "id")
		if uid == "" {
			uid = strClaim(claims, "sub")
		}
		if _, err := uuid.Parse(uid); err != nil {
			return reject("user_id tidak valid")
		}

		c.Locals("jwt_claims", claims)
		c.Locals(helper.LocUserID, uid)
		if name := strClaim(claims, "user_name"); name != "" {
			c.Locals("user_name", name)
		}
		helper.SetRawAccessToken(c, raw)
		return c.Next()
	}
}

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
