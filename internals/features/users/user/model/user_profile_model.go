package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel: satu baris per user, id = users.id.
// SchoolLevel kosong berarti user belum ditempatkan di jenjang mana pun.
type ProfileModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName    string    `gorm:"size:100" json:"full_name"`
	SchoolLevel *string   `gorm:"type:varchar(10);column:school_level" json:"school_level"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
