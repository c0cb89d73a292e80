// file: internals/features/users/users/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`

	UserUserName string  `gorm:"column:user_user_name;type:varchar(50);not null;uniqueIndex" json:"user_user_name"`
	UserFullName *string `gorm:"column:user_full_name;type:varchar(100)" json:"user_full_name,omitempty"`
	UserEmail    string  `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`

	// bcrypt hash, tidak pernah ikut response
	UserPassword string `gorm:"column:user_password;type:varchar(250);not null" json:"-"`

	// admin | staff | student
	UserRole     string `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role"`
	UserIsActive bool   `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;type:timestamptz;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;type:timestamptz;not null;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
