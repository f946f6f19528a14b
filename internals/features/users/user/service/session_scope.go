package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
)

// SessionScope: pasangan (jenjang, role) milik user yang sedang login.
type SessionScope struct {
	UserID      uuid.UUID `json:"user_id"`
	SchoolLevel string    `json:"school_level"`
	Role        string    `json:"role"`
}

func (s *SessionScope) IsAdmin() bool {
	return s != nil && s.Role == constants.RoleAdmin
}

func (s *SessionScope) CanEdit() bool {
	return s != nil && constants.IsEditorRole(s.Role)
}

func (s *SessionScope) LevelLabel() string {
	if s == nil {
		return ""
	}
	return constants.SchoolLevelLabel(s.SchoolLevel)
}

// ResolveSessionScope mencari profil + role user. Semua kegagalan ditelan
// (hasil ok=false, halaman tampil kosong) tapi tetap dicatat di log.
func ResolveSessionScope(ctx context.Context, db *gorm.DB, userID *uuid.UUID) (*SessionScope, bool) {
	if userID == nil || *userID == uuid.Nil {
		return nil, false
	}

	profile, err := FindProfile(ctx, db, *userID)
	if err != nil {
		log.Printf("[SCOPE] user_id=%s gagal ambil profil: %v", userID, err)
		return nil, false
	}
	if profile == nil || profile.SchoolLevel == nil {
		log.Printf("[SCOPE] user_id=%s belum punya profil/jenjang", userID)
		return nil, false
	}
	level := constants.NormalizeSchoolLevel(*profile.SchoolLevel)
	if !constants.IsValidSchoolLevel(level) {
		log.Printf("[SCOPE] user_id=%s jenjang tidak valid: %q", userID, *profile.SchoolLevel)
		return nil, false
	}

	roles, err := ListRoles(ctx, db, *userID)
	if err != nil {
		log.Printf("[SCOPE] user_id=%s gagal ambil role: %v", userID, err)
		return nil, false
	}
	role := constants.PickHighestRole(roles)
	if role == "" {
		log.Printf("[SCOPE] user_id=%s belum punya role", userID)
		return nil, false
	}

	return &SessionScope{
		UserID:      *userID,
		SchoolLevel: level,
		Role:        role,
	}, true
}
