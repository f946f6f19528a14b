package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	authHelper "sekolahku_backend/internals/features/users/auth/helper"
	authRepo "sekolahku_backend/internals/features/users/auth/repository"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helpers "sekolahku_backend/internals/helpers"
	helpersAuth "sekolahku_backend/internals/helpers/auth"
)

const accessTTLDefault = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("Identifier atau Password salah")
	ErrInactiveUser       = errors.New("Akun Anda telah dinonaktifkan. Hubungi admin.")
)

/* ==========================
   Small Helpers
========================== */

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func accessTTL() time.Duration {
	if configs.AccessTokenTTL > 0 {
		return configs.AccessTokenTTL
	}
	return accessTTLDefault
}

/* ==========================
   Core (dipakai API & dashboard)
========================== */

// Authenticate mencocokkan email/username + password (bcrypt).
func Authenticate(ctx context.Context, db *gorm.DB, identifier, password string) (*userModel.UserModel, error) {
	identifier = strings.TrimSpace(identifier)
	if err := authHelper.ValidateLoginInput(identifier, password); err != nil {
		return nil, err
	}
	user, err := authRepo.FindUserByEmailOrUsername(ctx, db, identifier)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ERROR] login lookup %q: %v", identifier, err)
		}
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	if err := authHelper.CheckPasswordHash(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func buildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL()).Unix(),
	}
}

// IssueAccessToken menandatangani access token HS256.
func IssueAccessToken(user userModel.UserModel, now time.Time) (string, time.Time, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", time.Time{}, err
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now)).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, now.Add(accessTTL()), nil
}

// RevokeAccessToken memasukkan token ke blacklist sampai exp-nya lewat.
func RevokeAccessToken(ctx context.Context, db *gorm.DB, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	secret, err := getJWTSecret()
	if err != nil {
		return err
	}
	return helpersAuth.Add(ctx, db, raw, secret, resolveBlacklistExpiry(raw, secret))
}

func resolveBlacklistExpiry(raw, secret string) time.Time {
	fallback := nowUTC().Add(accessTTL())
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return fallback
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0).UTC().Add(time.Minute)
	}
	return fallback
}

func SetAccessCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     helpers.AccessTokenCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   configs.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  expires,
	})
}

func ClearAccessCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     helpers.AccessTokenCookie,
		Value:    "",
		HTTPOnly: true,
		Secure:   configs.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  nowUTC().Add(-time.Hour),
		MaxAge:   -1,
	})
}

/* ==========================
   LOGIN (username/email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}

	user, err := Authenticate(c.UserContext(), db, input.Identifier, input.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInactiveUser):
		return helpers.JsonError(c, fiber.StatusForbidden, err.Error())
	case err != nil:
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	token, exp, err := IssueAccessToken(*user, nowUTC())
	if err != nil {
		log.Printf("[ERROR] sign access token: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	SetAccessCookie(c, token, exp)

	return helpers.JsonOK(c, "Login berhasil", fiber.Map{
		"user": fiber.Map{
			"id":        user.ID,
			"user_name": user.UserName,
			"email":     user.Email,
		},
		"access_token": token,
		"expires_at":   exp,
	})
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helpers.GetRawAccessToken(c)
	if accessToken != "" {
		if err := RevokeAccessToken(c.UserContext(), db, accessToken); err != nil {
			log.Printf("[WARN] Failed to blacklist token: %v", err)
		}
	} else {
		log.Println("[INFO] Logout tanpa access token; lanjut clear cookies (idempotent)")
	}
	ClearAccessCookie(c)
	return helpers.JsonOK(c, "Logout berhasil", nil)
}

/* ==========================
   ME (user + scope)
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	user, err := authRepo.FindUserByID(c.UserContext(), db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, helpers.ErrorMessage(err))
	}

	var scope any
	if s, ok := helpersAuth.GetSessionScope(c); ok {
		scope = fiber.Map{
			"school_level":       s.SchoolLevel,
			"school_level_label": s.LevelLabel(),
			"role":               s.Role,
		}
	}

	return helpers.JsonOK(c, "ok", fiber.Map{
		"user":  user,
		"scope": scope,
	})
}
