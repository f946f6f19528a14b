package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	model "sekolahku_backend/internals/features/school/achievements/model"
)

var (
	ErrAchievementNotFound = errors.New("prestasi tidak ditemukan")
	ErrTitleRequired       = errors.New("judul prestasi wajib diisi")
	ErrDateRequired        = errors.New("tanggal prestasi wajib diisi")
)

type AchievementFields struct {
	Title       string
	Description string
	Date        time.Time
	ImageURL    string
}

func (f AchievementFields) validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}
	if f.Date.IsZero() {
		return ErrDateRequired
	}
	return nil
}

func toDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// FetchAchievements: urut achievement_date DESC (seri: created_at DESC).
// Filter jenjang hanya untuk role admin dengan level terisi; role lain
// (atau admin tanpa level) melihat semua jenjang.
func FetchAchievements(ctx context.Context, db *gorm.DB, role, level string) ([]model.AchievementModel, error) {
	q := db.WithContext(ctx).Model(&model.AchievementModel{})
	if lvl := constants.NormalizeSchoolLevel(level); role == constants.RoleAdmin && lvl != "" {
		q = q.Where("school_level = ?", lvl)
	}

	rows := make([]model.AchievementModel, 0)
	if err := q.Order("achievement_date DESC").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func GetAchievement(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AchievementModel, error) {
	var row model.AchievementModel
	err := db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAchievementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveAchievement: editingID terisi → update by id (jenjang tidak diubah);
// selain itu insert dengan jenjang milik pemanggil.
func SaveAchievement(ctx context.Context, db *gorm.DB, editingID *uuid.UUID, level string, f AchievementFields) (*model.AchievementModel, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	if editingID != nil {
		res := db.WithContext(ctx).
			Model(&model.AchievementModel{}).
			Where("id = ?", *editingID).
			Updates(map[string]any{
				"title":            strings.TrimSpace(f.Title),
				"description":      strings.TrimSpace(f.Description),
				"achievement_date": toDate(f.Date),
				"image_url":        nullable(f.ImageURL),
				"updated_at":       time.Now().UTC(),
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrAchievementNotFound
		}
		return GetAchievement(ctx, db, *editingID)
	}

	row := model.AchievementModel{
		Title:           strings.TrimSpace(f.Title),
		Description:     strings.TrimSpace(f.Description),
		AchievementDate: toDate(f.Date),
		ImageURL:        nullable(f.ImageURL),
		SchoolLevel:     nullable(constants.NormalizeSchoolLevel(level)),
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteAchievement: hard delete; tidak ada soft delete / undo.
func DeleteAchievement(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&model.AchievementModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAchievementNotFound
	}
	return nil
}

// ImageRemover: penyimpanan gambar yang bisa menghapus objek dari URL publiknya.
type ImageRemover interface {
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

// RemoveAchievement menghapus baris lalu gambarnya (best-effort). images boleh nil.
func RemoveAchievement(ctx context.Context, db *gorm.DB, id uuid.UUID, images ImageRemover) error {
	row, err := GetAchievement(ctx, db, id)
	if err != nil {
		return err
	}
	if err := DeleteAchievement(ctx, db, id); err != nil {
		return err
	}
	if images != nil && row.ImageURL != nil && *row.ImageURL != "" {
		if err := images.DeleteByPublicURL(ctx, *row.ImageURL); err != nil {
			log.Printf("[WARN] hapus gambar prestasi id=%s: %v", id, err)
		}
	}
	return nil
}
