package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRoleModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_user_roles_user_role,priority:1" json:"user_id"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;uniqueIndex:uq_user_roles_user_role,priority:2" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserRoleModel) TableName() string { return "user_roles" }

func (r *UserRoleModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
