package helper

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Notifikasi sekali-tampil untuk dashboard (pengganti toast di SPA).
const flashCookie = "flash"

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind
	Message string
}

func SetFlash(c *fiber.Ctx, kind FlashKind, message string, secure bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    string(kind) + ":" + base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(time.Minute),
	})
}

// PopFlash membaca lalu menghapus flash; nil kalau tidak ada.
func PopFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.ClearCookie(flashCookie)

	kind, enc, ok := strings.Cut(raw, ":")
	if !ok {
		return nil
	}
	msg, err := base64.RawURLEncoding.DecodeString(enc)
	if err != nil || len(msg) == 0 {
		return nil
	}
	k := FlashKind(kind)
	if k != FlashSuccess && k != FlashError {
		k = FlashError
	}
	return &Flash{Kind: k, Message: string(msg)}
}
