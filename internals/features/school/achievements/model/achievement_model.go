package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AchievementModel: prestasi sekolah; school_level null = lintas jenjang.
type AchievementModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string         `gorm:"type:varchar(200);not null" json:"title"`
	Description     string         `gorm:"type:text;not null;default:''" json:"description"`
	AchievementDate datatypes.Date `gorm:"not null;index:idx_achievements_date" json:"achievement_date"`
	ImageURL        *string        `gorm:"type:text" json:"image_url"`
	SchoolLevel     *string        `gorm:"type:varchar(10);index:idx_achievements_level" json:"school_level"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AchievementModel) TableName() string {
	return "achievements"
}

func (m *AchievementModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Date mengembalikan achievement_date sebagai time.Time (UTC, tengah malam).
func (m *AchievementModel) Date() time.Time {
	return time.Time(m.AchievementDate)
}
