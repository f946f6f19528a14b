package controller

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	dto "sekolahku_backend/internals/features/school/achievements/dto"
	"sekolahku_backend/internals/features/school/achievements/service"
	userService "sekolahku_backend/internals/features/users/user/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

const (
	MsgAchievementCreated = "Prestasi berhasil ditambahkan!"
	MsgAchievementUpdated = "Prestasi berhasil diupdate!"
	MsgAchievementDeleted = "Prestasi berhasil dihapus!"

	msgConfirmDelete = "Yakin ingin menghapus prestasi ini? Kirim ulang dengan ?confirm=true"

	imageDir     = "achievements"
	storeTimeout = 5 * time.Second
)

type AchievementController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Uploader  helperOSS.ImageUploader // nil → upload gambar nonaktif
}

func NewAchievementController(db *gorm.DB, uploader helperOSS.ImageUploader) *AchievementController {
	return &AchievementController{
		DB:        db,
		Validator: validator.New(),
		Uploader:  uploader,
	}
}

func storeCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), storeTimeout)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID prestasi tidak valid")
	}
	return id, nil
}

// respondList: full refetch sesuai scope, dipakai setelah mutasi.
func (ctl *AchievementController) respondList(
	c *fiber.Ctx,
	ctx context.Context,
	scope *userService.SessionScope,
	write func(*fiber.Ctx, string, any) error,
	msg string,
) error {
	rows, err := service.FetchAchievements(ctx, ctl.DB, scope.Role, scope.SchoolLevel)
	if err != nil {
		log.Printf("[ERROR] refetch achievements: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.ErrorMessage(err))
	}
	return write(c, msg, dto.FromModels(rows))
}

func storeError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrAchievementNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrDateRequired):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Database sedang sibuk, coba lagi")
	}
	log.Printf("[ERROR] %s achievement: %v", op, err)
	return helper.JsonError(c, fiber.StatusInternalServerError, helper.ErrorMessage(err))
}

/* =========================================================
   GET /api/a/achievements
   ========================================================= */
func (ctl *AchievementController) List(c *fiber.Ctx) error {
	scope, ok := helperAuth.GetSessionScope(c)
	if !ok {
		return helper.JsonList(c, "ok", []dto.AchievementResponse{})
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	rows, err := service.FetchAchievements(ctx, ctl.DB, scope.Role, scope.SchoolLevel)
	if err != nil {
		return storeError(c, "list", err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows))
}

/* =========================================================
   GET /api/a/achievements/:id
   ========================================================= */
func (ctl *AchievementController) Detail(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, ok := helperAuth.GetSessionScope(c); !ok {
		return helper.JsonError(c, fiber.StatusNotFound, service.ErrAchievementNotFound.Error())
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	row, err := service.GetAchievement(ctx, ctl.DB, id)
	if err != nil {
		return storeError(c, "detail", err)
	}
	return helper.JsonOK(c, "ok", dto.FromModelDetail(row))
}

/* =========================================================
   POST /api/a/achievements
   ========================================================= */
func (ctl *AchievementController) Create(c *fiber.Ctx) error {
	scope, err := helperAuth.RequireEditorScope(c, "prestasi")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(ctl.Validator); err != nil {
		return helper.JsonValidationError(c, err)
	}
	fields, err := req.ToFields()
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	if _, err := service.SaveAchievement(ctx, ctl.DB, nil, scope.SchoolLevel, fields); err != nil {
		return storeError(c, "create", err)
	}
	return ctl.respondList(c, ctx, scope, helper.JsonCreated, MsgAchievementCreated)
}

/* =========================================================
   PATCH /api/a/achievements/:id
   Field yang tidak dikirim tetap; image_url:null menghapus gambar.
   ========================================================= */
func (ctl *AchievementController) Patch(c *fiber.Ctx) error {
	scope, err := helperAuth.RequireEditorScope(c, "prestasi")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PatchAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	ctx, cancel := storeCtx(c)
	defer cancel()

	current, err := service.GetAchievement(ctx, ctl.DB, id)
	if err != nil {
		return storeError(c, "patch", err)
	}
	fields, err := req.ApplyPatch(current)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if _, err := service.SaveAchievement(ctx, ctl.DB, &id, scope.SchoolLevel, fields); err != nil {
		return storeError(c, "patch", err)
	}
	return ctl.respondList(c, ctx, scope, helper.JsonUpdated, MsgAchievementUpdated)
}

/* =========================================================
   DELETE /api/a/achievements/:id?confirm=true
   Tanpa konfirmasi → 428, store tidak disentuh.
   ========================================================= */
func (ctl *AchievementController) Delete(c *fiber.Ctx) error {
	scope, err := helperAuth.RequireEditorScope(c, "prestasi")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !c.QueryBool("confirm") {
		return helper.JsonError(c, fiber.StatusPreconditionRequired, msgConfirmDelete)
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	if err := service.RemoveAchievement(ctx, ctl.DB, id, ctl.Uploader); err != nil {
		return storeError(c, "delete", err)
	}
	return ctl.respondList(c, ctx, scope, helper.JsonDeleted, MsgAchievementDeleted)
}

/* =========================================================
   POST /api/a/achievements/images (multipart: image)
   ========================================================= */
func (ctl *AchievementController) UploadImage(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireEditorScope(c, "prestasi"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Uploader == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Penyimpanan gambar belum dikonfigurasi")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File gambar (field 'image') wajib diisi")
	}
	if !constants.IsImageFile(fh.Filename) {
		return helper.JsonError(c, fiber.StatusUnsupportedMediaType, "Format gambar tidak didukung (pakai jpg/png/webp)")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
	defer cancel()

	url, err := ctl.Uploader.UploadImageAsWebP(ctx, fh, imageDir)
	if err != nil {
		if errors.Is(err, helperOSS.ErrUnsupportedFormat) {
			return helper.JsonError(c, fiber.StatusUnsupportedMediaType, err.Error())
		}
		log.Printf("[ERROR] upload gambar prestasi: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengunggah gambar")
	}
	return helper.JsonCreated(c, "Gambar berhasil diunggah", fiber.Map{"image_url": url})
}
