// file: internals/features/users/users/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "sidangku_backend/internals/features/users/users/model"
)

type UserResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	UserUserName string    `json:"user_user_name"`
	UserFullName *string   `json:"user_full_name,omitempty"`
	UserEmail    string    `json:"user_email"`
	UserRole     string    `json:"user_role"`
	UserIsActive bool      `json:"user_is_active"`
	UserCreated  time.Time `json:"user_created_at"`
}

func FromModel(m *model.UserModel) UserResponse {
	return UserResponse{
		UserID:       m.UserID,
		UserUserName: m.UserUserName,
		UserFullName: m.UserFullName,
		UserEmail:    m.UserEmail,
		UserRole:     m.UserRole,
		UserIsActive: m.UserIsActive,
		UserCreated:  m.UserCreatedAt,
	}
}

type CreateStaffRequest struct {
	UserUserName string  `json:"user_user_name" validate:"required,min=3,max=50"`
	UserFullName *string `json:"user_full_name" validate:"omitempty,max=100"`
	UserEmail    string  `json:"user_email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8,max=72"`
}
