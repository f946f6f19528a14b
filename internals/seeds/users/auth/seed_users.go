package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	authHelper "sekolahku_backend/internals/features/users/auth/helper"
	authRepo "sekolahku_backend/internals/features/users/auth/repository"
	"sekolahku_backend/internals/features/users/user/model"
	userService "sekolahku_backend/internals/features/users/user/service"
)

type UserSeed struct {
	UserName    string   `json:"user_name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FullName    string   `json:"full_name"`
	SchoolLevel string   `json:"school_level"`
	Roles       []string `json:"roles"`
}

// SeedUsersFromJSON: user + profile + role. User yang emailnya sudah ada tidak
// di-reset password-nya, tapi profile/role tetap dilengkapi.
func SeedUsersFromJSON(ctx context.Context, db *gorm.DB, filePath string) error {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca file seed: %w", err)
	}
	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode JSON seed: %w", err)
	}

	for _, data := range inputs {
		if err := seedOne(ctx, db, data); err != nil {
			log.Printf("❌ Seed user '%s' gagal: %v", data.Email, err)
			continue
		}
		log.Printf("✅ Seed user '%s' selesai", data.Email)
	}
	return nil
}

func seedOne(ctx context.Context, db *gorm.DB, data UserSeed) error {
	level := constants.NormalizeSchoolLevel(data.SchoolLevel)
	if level != "" && !constants.IsValidSchoolLevel(level) {
		return fmt.Errorf("school_level %q tidak dikenal", data.SchoolLevel)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := authRepo.FindUserByEmailOrUsername(ctx, tx, strings.TrimSpace(data.Email))
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = &model.UserModel{
				UserName: strings.TrimSpace(data.UserName),
				Email:    strings.TrimSpace(data.Email),
				Password: data.Password,
				IsActive: true,
			}
			if err := user.Validate(); err != nil {
				return err
			}
			hashed, err := authHelper.HashPassword(data.Password)
			if err != nil {
				return err
			}
			user.Password = hashed
			if err := authRepo.CreateUser(ctx, tx, user); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			log.Printf("ℹ️ User dengan email '%s' sudah ada, password tidak diubah.", data.Email)
		}

		if err := userService.EnsureProfileRow(ctx, tx, user.ID, data.FullName, level); err != nil {
			return err
		}
		for _, role := range data.Roles {
			role = strings.ToLower(strings.TrimSpace(role))
			if role == "" {
				continue
			}
			if err := userService.GrantRole(ctx, tx, user.ID, role); err != nil {
				return err
			}
		}
		return nil
	})
}
