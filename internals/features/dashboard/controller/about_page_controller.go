package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/dashboard/formstate"
	aboutController "sekolahku_backend/internals/features/school/about/controller"
	aboutDTO "sekolahku_backend/internals/features/school/about/dto"
	aboutModel "sekolahku_backend/internals/features/school/about/model"
	aboutService "sekolahku_backend/internals/features/school/about/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

const (
	aboutTitle = "Profil & Kontak"
	aboutPath  = "/dashboard/about"
)

type aboutForm = formstate.Form[aboutDTO.SaveContactRequest]

func (ctl *DashboardController) renderAbout(c *fiber.Ctx, status int, data fiber.Map, rec *aboutModel.AboutModel, form *aboutForm) error {
	data["Record"] = rec
	data["Form"] = form
	return ctl.render(c, status, "about", data)
}

// GET /dashboard/about[?edit=1]
func (ctl *DashboardController) AboutPage(c *fiber.Ctx) error {
	scope, ok := helperAuth.GetSessionScope(c)
	if !ok {
		return ctl.renderEmpty(c, aboutTitle)
	}
	data := ctl.page(c, aboutTitle, scope)

	ctx, cancel := storeCtx(c)
	defer cancel()

	rec, err := aboutService.FetchContact(ctx, ctl.DB, scope.SchoolLevel)
	if err != nil {
		log.Printf("[ERROR] dashboard fetch about level=%s: %v", scope.SchoolLevel, err)
		data["Flash"] = errorToast(err)
	}

	form := formstate.New(aboutDTO.ToRequest(rec))
	if c.QueryBool("edit") && scope.CanEdit() && form.HasRecord() {
		_ = form.Edit()
	}
	return ctl.renderAbout(c, fiber.StatusOK, data, rec, form)
}

// POST /dashboard/about (action=save|cancel)
func (ctl *DashboardController) AboutSubmit(c *fiber.Ctx) error {
	if c.FormValue("action") == "cancel" {
		// Cancel: draft dibuang, GET menampilkan snapshot terakhir
		return c.Redirect(aboutPath, fiber.StatusSeeOther)
	}

	scope, err := helperAuth.RequireEditorScope(c, "kontak")
	if err != nil {
		return ctl.denied(c, err, aboutPath)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	rec, err := aboutService.FetchContact(ctx, ctl.DB, scope.SchoolLevel)
	if err != nil {
		return ctl.flashAndRedirect(c, helper.FlashError, helper.ErrorMessage(err), aboutPath)
	}
	form := formstate.New(aboutDTO.ToRequest(rec))
	if form.HasRecord() {
		_ = form.Edit()
	}

	var req aboutDTO.SaveContactRequest
	if err := c.BodyParser(&req); err != nil {
		return ctl.flashAndRedirect(c, helper.FlashError, "Payload tidak valid", aboutPath)
	}
	req.Normalize()
	_ = form.SetDraft(req)

	data := ctl.page(c, aboutTitle, scope)
	if err := req.Validate(ctl.Validator); err != nil {
		data["Flash"] = validationToast(err)
		return ctl.renderAbout(c, fiber.StatusUnprocessableEntity, data, rec, form)
	}
	if err := form.Submit(); err != nil {
		return ctl.flashAndRedirect(c, helper.FlashError, err.Error(), aboutPath)
	}

	if _, err := aboutService.SaveContactForLevel(ctx, ctl.DB, scope.SchoolLevel, req.ToFields()); err != nil {
		log.Printf("[ERROR] dashboard save about level=%s: %v", scope.SchoolLevel, err)
		_ = form.Fail()
		data["Flash"] = errorToast(err)
		return ctl.renderAbout(c, fiber.StatusUnprocessableEntity, data, rec, form)
	}
	return ctl.flashAndRedirect(c, helper.FlashSuccess, aboutController.MsgContactSaved, aboutPath)
}
