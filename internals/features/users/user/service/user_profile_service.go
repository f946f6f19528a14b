package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/constants"
	profilemodel "sekolahku_backend/internals/features/users/user/model"
)

// EnsureProfileRow membuat baris profiles kalau belum ada (idempotent).
func EnsureProfileRow(ctx context.Context, db *gorm.DB, userID uuid.UUID, fullName, schoolLevel string) error {
	p := profilemodel.ProfileModel{ID: userID, FullName: strings.TrimSpace(fullName)}
	if lvl := constants.NormalizeSchoolLevel(schoolLevel); lvl != "" {
		p.SchoolLevel = &lvl
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&p).Error
	if err != nil {
		log.Printf("[EnsureProfileRow] ERROR user_id=%s: %v", userID, err)
	}
	return err
}

// GrantRole menambahkan role ke user; role yang sudah ada dilewati.
func GrantRole(ctx context.Context, db *gorm.DB, userID uuid.UUID, role string) error {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return errors.New("role kosong")
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "role"}},
			DoNothing: true,
		}).
		Create(&profilemodel.UserRoleModel{UserID: userID, Role: role}).Error
}

// FindProfile: (nil, nil) kalau tidak ada.
func FindProfile(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*profilemodel.ProfileModel, error) {
	var p profilemodel.ProfileModel
	err := db.WithContext(ctx).Where("id = ?", userID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func ListRoles(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]string, error) {
	var roles []string
	if err := db.WithContext(ctx).
		Model(&profilemodel.UserRoleModel{}).
		Where("user_id = ?", userID).
		Order("role DESC").
		Pluck("role", &roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
