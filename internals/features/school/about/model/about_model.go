package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultTitle diisi saat baris about pertama kali dibuat untuk sebuah jenjang.
const DefaultTitle = "Profil Sekolah"

// AboutModel: satu baris kontak/profil per jenjang (school_level unik).
type AboutModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SchoolLevel  string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_about_school_level" json:"school_level"`
	Title        string    `gorm:"type:varchar(150);not null" json:"title"`
	Content      string    `gorm:"type:text;not null;default:''" json:"content"`
	ContactPhone *string   `gorm:"type:varchar(30)" json:"contact_phone"`
	ContactEmail *string   `gorm:"type:varchar(255)" json:"contact_email"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AboutModel) TableName() string {
	return "about"
}

func (m *AboutModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
