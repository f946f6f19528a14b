package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/constants"
	model "sekolahku_backend/internals/features/school/about/model"
)

var (
	ErrInvalidLevel    = errors.New("jenjang sekolah tidak valid")
	ErrContactNotFound = errors.New("data kontak tidak ditemukan")
)

// ContactFields: string kosong disimpan sebagai NULL.
type ContactFields struct {
	Phone string
	Email string
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// FetchContact: nol atau satu baris untuk jenjang; tidak ada → (nil, nil).
func FetchContact(ctx context.Context, db *gorm.DB, level string) (*model.AboutModel, error) {
	level = constants.NormalizeSchoolLevel(level)
	if level == "" {
		return nil, nil
	}
	var row model.AboutModel
	err := db.WithContext(ctx).
		Where("school_level = ?", level).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveContact memilih update vs insert berdasarkan existing (bukan upsert DB).
// existing != nil → update phone/email/updated_at by id; selain itu insert baris
// baru dengan judul default dan content kosong.
func SaveContact(ctx context.Context, db *gorm.DB, existing *model.AboutModel, level string, f ContactFields) (*model.AboutModel, error) {
	phone, email := nullable(f.Phone), nullable(f.Email)
	now := time.Now().UTC()

	if existing != nil {
		res := db.WithContext(ctx).
			Model(&model.AboutModel{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"contact_phone": phone,
				"contact_email": email,
				"updated_at":    now,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrContactNotFound
		}
		out := *existing
		out.ContactPhone, out.ContactEmail, out.UpdatedAt = phone, email, now
		return &out, nil
	}

	level = constants.NormalizeSchoolLevel(level)
	if !constants.IsValidSchoolLevel(level) {
		return nil, ErrInvalidLevel
	}
	row := model.AboutModel{
		SchoolLevel:  level,
		Title:        model.DefaultTitle,
		Content:      "",
		ContactPhone: phone,
		ContactEmail: email,
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveContactForLevel menjalankan fetch + SaveContact dalam satu transaksi.
// Baris existing dikunci; insert ganda yang balapan ditolak unique index.
func SaveContactForLevel(ctx context.Context, db *gorm.DB, level string, f ContactFields) (*model.AboutModel, error) {
	level = constants.NormalizeSchoolLevel(level)
	if !constants.IsValidSchoolLevel(level) {
		return nil, ErrInvalidLevel
	}

	var saved *model.AboutModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := FetchContact(ctx, tx.Clauses(clause.Locking{Strength: "UPDATE"}), level)
		if err != nil {
			return fmt.Errorf("fetch about %s: %w", level, err)
		}
		saved, err = SaveContact(ctx, tx, existing, level, f)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
