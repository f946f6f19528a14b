package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/school/about/dto"
	"sekolahku_backend/internals/features/school/about/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

const MsgContactSaved = "Data kontak berhasil disimpan!"

type AboutController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAboutController(db *gorm.DB) *AboutController {
	return &AboutController{
		DB:        db,
		Validator: validator.New(),
	}
}

/*
=========================================================

	GET /api/a/about
	Kontak jenjang user saat ini; null kalau belum ada / scope belum resolve.
	=========================================================
*/
func (ctl *AboutController) Get(c *fiber.Ctx) error {
	scope, ok := helperAuth.GetSessionScope(c)
	if !ok {
		return helper.JsonOK(c, "ok", nil)
	}

	row, err := service.FetchContact(c.UserContext(), ctl.DB, scope.SchoolLevel)
	if err != nil {
		log.Printf("[ERROR] fetch about level=%s: %v", scope.SchoolLevel, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.ErrorMessage(err))
	}
	return helper.JsonOK(c, "ok", dto.FromModel(row))
}

/*
=========================================================

	PUT /api/a/about
	Buat (pertama kali) atau update kontak jenjang user saat ini.
	=========================================================
*/
func (ctl *AboutController) Save(c *fiber.Ctx) error {
	scope, err := helperAuth.RequireEditorScope(c, "kontak")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SaveContactRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(ctl.Validator); err != nil {
		return helper.JsonValidationError(c, err)
	}

	ctx := c.UserContext()
	if _, err := service.SaveContactForLevel(ctx, ctl.DB, scope.SchoolLevel, req.ToFields()); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLevel):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case helper.IsDuplicateKey(err):
			return helper.JsonError(c, fiber.StatusConflict, "Data kontak untuk jenjang ini sudah ada, muat ulang halaman")
		}
		log.Printf("[ERROR] save about level=%s: %v", scope.SchoolLevel, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.ErrorMessage(err))
	}

	// full refetch setelah mutasi
	row, err := service.FetchContact(ctx, ctl.DB, scope.SchoolLevel)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.ErrorMessage(err))
	}
	return helper.JsonUpdated(c, MsgContactSaved, dto.FromModel(row))
}
