// Package views berisi template HTML dashboard (embed) dan engine-nya.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"

	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/dbtime"
)

//go:embed templates
var templatesFS embed.FS

const MainLayout = "layouts/main"

// NewEngine dipasang di fiber.Config{Views: ...}.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(template.FuncMap{
		"formatStamp": dbtime.FormatStamp,
		"markdown":    helper.RenderMarkdown,
		"levelLabel":  constants.SchoolLevelLabel,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	})
	return engine
}
