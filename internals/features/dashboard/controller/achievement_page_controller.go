package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/dashboard/formstate"
	achievementController "sekolahku_backend/internals/features/school/achievements/controller"
	achievementDTO "sekolahku_backend/internals/features/school/achievements/dto"
	achievementService "sekolahku_backend/internals/features/school/achievements/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

const (
	achievementsTitle = "Prestasi"
	achievementsPath  = "/dashboard/achievements"
)

type achievementForm = formstate.Form[achievementDTO.AchievementRequest]

func detailPath(id uuid.UUID) string { return achievementsPath + "/" + id.String() }

func parsePageID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	return id, err == nil
}

func (ctl *DashboardController) renderAchievementForm(c *fiber.Ctx, status int, data fiber.Map, editingID *uuid.UUID, form *achievementForm) error {
	data["Form"] = form
	if editingID != nil {
		data["EditingID"] = editingID.String()
	}
	return ctl.render(c, status, "achievements/form", data)
}

// GET /dashboard/achievements
func (ctl *DashboardController) AchievementsPage(c *fiber.Ctx) error {
	scope, ok := helperAuth.GetSessionScope(c)
	if !ok {
		return ctl.renderEmpty(c, achievementsTitle)
	}
	data := ctl.page(c, achievementsTitle, scope)

	ctx, cancel := storeCtx(c)
	defer cancel()

	rows, err := achievementService.FetchAchievements(ctx, ctl.DB, scope.Role, scope.SchoolLevel)
	if err != nil {
		log.Printf("[ERROR] dashboard fetch achievements: %v", err)
		data["Flash"] = errorToast(err)
	}
	data["Items"] = achievementDTO.FromModels(rows)
	return ctl.render(c, fiber.StatusOK, "achievements/list", data)
}

// GET /dashboard/achievements/new
func (ctl *DashboardController) AchievementNew(c *fiber.Ctx) error {
	scope, err := helperAuth.RequireEditorScope(c, "prestasi")
	if err != nil {
		return ctl.denied(c, err, achievementsPath)
	}
	data := ctl.page(c, "Tambah Prestasi", scope)
	return ctl.renderAchievementForm(c, fiber.StatusOK, data, nil, formstate.New[achievementDTO.AchievementRequest](nil))
}

// GET /dashboard/achievements/:id
func (ctl *DashboardController) AchievementDetail(c *fiber.Ctx) error {
	scope, ok := helperAuth.GetSessionScope(c)
	if !ok {
		return ctl.renderEmpty(c, achievementsTitle)
	}
	id, ok := parsePageID(c)
	if !ok {
		return ctl.flashAndRedirect(c, helper.FlashError, "ID prestasi tidak valid", achievementsPath)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	row, err := achievementService.GetAchievement(ctx, ctl.DB, id)
	if err != nil {
		return ctl.flashAndRedirect(c, helper.FlashError, helper.ErrorMessage(err), achievementsPath)
	}

	snapshot := achievementDTO.FromModelToRequest(row)
	form := formstate.New(&snapshot)
	_ = form.OpenDetail()

	data := ctl.page(c, row.Title, scope)
	data["Item"] = achievementDTO.FromModelDetail(row)
	data["Form"] = form
	return ctl.render(c, fiber.StatusOK, "achievements/detail", data)
}

// GET /dashboard/achievements/:id/edit
func (ctl *DashboardController) AchievementEdit(c *fiber.Ctx) error {
	scope, err := helperAuth.RequireEditorScope(c, "prestasi")
	if err != nil {
		return ctl.denied(c, err, achievementsPath)
	}
	id, ok := parsePageID(c)
	if !ok {
		return ctl.flashAndRedirect(c, helper.FlashError, "ID prestasi tidak valid", achievementsPath)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	row, err := achievementService.GetAchievement(ctx, ctl.DB, id)
	if err != nil {
		return ctl.flashAndRedirect(c, helper.FlashError, helper.ErrorMessage(err), achievementsPath)
	}
	snapshot := achievementDTO.FromModelToRequest(row)
	form := formstate.New(&snapshot)
	_ = form.Edit()

	data := ctl.page(c, "Edit Prestasi", scope)
	return ctl.renderAchievementForm(c, fiber.StatusOK, data, &id, form)
}

// POST /dashboard/achievements
func (ctl *DashboardController) AchievementCreate(c *fiber.Ctx) error {
	scope, err := helperAuth.RequireEditorScope(c, "prestasi")
	if err != nil {
		return ctl.denied(c, err, achievementsPath)
	}
	return ctl.submitAchievement(c, scope.SchoolLevel, nil, formstate.New[achievementDTO.AchievementRequest](nil))
}

// POST /dashboard/achievements/:id (action=save|cancel)
func (ctl *DashboardController) AchievementUpdate(c *fiber.Ctx) error {
	id, ok := parsePageID(c)
	if !ok {
		return ctl.flashAndRedirect(c, helper.FlashError, "ID prestasi tidak valid", achievementsPath)
	}
	if c.FormValue("action") == "cancel" {
		return c.Redirect(detailPath(id), fiber.StatusSeeOther)
	}

	scope, err := helperAuth.RequireEditorScope(c, "prestasi")
	if err != nil {
		return ctl.denied(c, err, achievementsPath)
	}

	ctx, cancel := storeCtx(c)
	row, err := achievementService.GetAchievement(ctx, ctl.DB, id)
	cancel()
	if err != nil {
		return ctl.flashAndRedirect(c, helper.FlashError, helper.ErrorMessage(err), achievementsPath)
	}
	snapshot := achievementDTO.FromModelToRequest(row)
	form := formstate.New(&snapshot)
	_ = form.Edit()
	return ctl.submitAchievement(c, scope.SchoolLevel, &id, form)
}

// submitAchievement: Editing → Submitting → (Viewing + redirect | Editing + toast).
func (ctl *DashboardController) submitAchievement(c *fiber.Ctx, level string, editingID *uuid.UUID, form *achievementForm) error {
	scope, _ := helperAuth.GetSessionScope(c)
	data := ctl.page(c, achievementsTitle, scope)

	var req achievementDTO.AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return ctl.flashAndRedirect(c, helper.FlashError, "Payload tidak valid", achievementsPath)
	}
	req.Normalize()
	_ = form.SetDraft(req)

	if err := req.Validate(ctl.Validator); err != nil {
		data["Flash"] = validationToast(err)
		return ctl.renderAchievementForm(c, fiber.StatusUnprocessableEntity, data, editingID, form)
	}
	fields, err := req.ToFields()
	if err != nil {
		data["Flash"] = errorToast(err)
		return ctl.renderAchievementForm(c, fiber.StatusUnprocessableEntity, data, editingID, form)
	}
	if err := form.Submit(); err != nil {
		return ctl.flashAndRedirect(c, helper.FlashError, err.Error(), achievementsPath)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	if _, err := achievementService.SaveAchievement(ctx, ctl.DB, editingID, level, fields); err != nil {
		if errors.Is(err, achievementService.ErrAchievementNotFound) {
			return ctl.flashAndRedirect(c, helper.FlashError, err.Error(), achievementsPath)
		}
		log.Printf("[ERROR] dashboard save achievement: %v", err)
		_ = form.Fail()
		data["Flash"] = errorToast(err)
		return ctl.renderAchievementForm(c, fiber.StatusUnprocessableEntity, data, editingID, form)
	}

	msg := achievementController.MsgAchievementCreated
	if editingID != nil {
		msg = achievementController.MsgAchievementUpdated
	}
	return ctl.flashAndRedirect(c, helper.FlashSuccess, msg, achievementsPath)
}

// GET /dashboard/achievements/:id/delete (halaman konfirmasi)
func (ctl *DashboardController) AchievementDeleteConfirm(c *fiber.Ctx) error {
	scope, err := helperAuth.RequireEditorScope(c, "prestasi")
	if err != nil {
		return ctl.denied(c, err, achievementsPath)
	}
	id, ok := parsePageID(c)
	if !ok {
		return ctl.flashAndRedirect(c, helper.FlashError, "ID prestasi tidak valid", achievementsPath)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	row, err := achievementService.GetAchievement(ctx, ctl.DB, id)
	if err != nil {
		return ctl.flashAndRedirect(c, helper.FlashError, helper.ErrorMessage(err), achievementsPath)
	}
	data := ctl.page(c, "Hapus Prestasi", scope)
	data["Item"] = achievementDTO.FromModel(row)
	return ctl.render(c, fiber.StatusOK, "achievements/delete", data)
}

// POST /dashboard/achievements/:id/delete: hanya confirm=yes yang menghapus.
func (ctl *DashboardController) AchievementDelete(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireEditorScope(c, "prestasi"); err != nil {
		return ctl.denied(c, err, achievementsPath)
	}
	id, ok := parsePageID(c)
	if !ok {
		return ctl.flashAndRedirect(c, helper.FlashError, "ID prestasi tidak valid", achievementsPath)
	}
	if c.FormValue("confirm") != "yes" {
		return c.Redirect(detailPath(id), fiber.StatusSeeOther)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	if err := achievementService.RemoveAchievement(ctx, ctl.DB, id, ctl.Uploader); err != nil {
		log.Printf("[ERROR] dashboard delete achievement id=%s: %v", id, err)
		return ctl.flashAndRedirect(c, helper.FlashError, helper.ErrorMessage(err), achievementsPath)
	}
	return ctl.flashAndRedirect(c, helper.FlashSuccess, achievementController.MsgAchievementDeleted, achievementsPath)
}
