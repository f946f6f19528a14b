package route

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"gorm.io/gorm"

	dashboardController "sekolahku_backend/internals/features/dashboard/controller"
	helper "sekolahku_backend/internals/helpers"
	helperOSS "sekolahku_backend/internals/helpers/oss"
	rateLimiter "sekolahku_backend/internals/middlewares"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	scopeMiddleware "sekolahku_backend/internals/middlewares/features"
)

// Uploader boleh nil; hapus prestasi lalu tidak menyentuh bucket.
type Options struct {
	CSRF         bool
	CookieSecure bool
	Uploader     helperOSS.ImageUploader
}

// csrfRedirect: kembali ke halaman asal. POST tanpa pasangan GET (logout)
// jatuh ke halaman login.
func csrfRedirect(c *fiber.Ctx) string {
	if ref := c.Get(fiber.HeaderReferer); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Host == c.Hostname() && strings.HasPrefix(u.Path, "/dashboard") {
			return u.RequestURI()
		}
	}
	if c.Method() == fiber.MethodPost && strings.HasSuffix(c.Path(), "/logout") {
		return "/dashboard/login"
	}
	if c.Method() == fiber.MethodPost && strings.HasSuffix(c.Path(), "/delete") {
		return strings.TrimSuffix(c.Path(), "/delete")
	}
	return c.Path()
}

func csrfMiddleware(secure bool) fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "form:_csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		Expiration:     time.Hour,
		ContextKey:     dashboardController.LocCSRF,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			helper.SetFlash(c, helper.FlashError, "Sesi formulir kedaluwarsa, silakan coba lagi", secure)
			return c.Redirect(csrfRedirect(c), fiber.StatusSeeOther)
		},
	})
}

// DashboardRoutes → /dashboard (HTML). Sesi dari cookie access_token, opsional.
func DashboardRoutes(app *fiber.App, db *gorm.DB, opts Options) {
	ctl := dashboardController.NewDashboardController(db)
	ctl.CookieSecure = opts.CookieSecure
	ctl.Uploader = opts.Uploader

	handlers := []fiber.Handler{
		authMiddleware.OptionalJWT(db),
		scopeMiddleware.UseSessionScope(db),
	}
	if opts.CSRF {
		handlers = append(handlers, csrfMiddleware(opts.CookieSecure))
	}
	g := app.Group("/dashboard", handlers...)

	g.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard/about", fiber.StatusSeeOther)
	})

	g.Get("/login", ctl.LoginPage)
	g.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	g.Post("/logout", ctl.Logout)

	g.Get("/about", ctl.AboutPage)
	g.Post("/about", ctl.AboutSubmit)

	g.Get("/achievements", ctl.AchievementsPage)
	g.Get("/achievements/new", ctl.AchievementNew)
	g.Post("/achievements", ctl.AchievementCreate)
	g.Get("/achievements/:id", ctl.AchievementDetail)
	g.Get("/achievements/:id/edit", ctl.AchievementEdit)
	g.Post("/achievements/:id", ctl.AchievementUpdate)
	g.Get("/achievements/:id/delete", ctl.AchievementDeleteConfirm)
	g.Post("/achievements/:id/delete", ctl.AchievementDelete)
}
