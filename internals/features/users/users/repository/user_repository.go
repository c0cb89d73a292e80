// file: internals/features/users/users/repository/user_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sidangku_backend/internals/features/users/users/model"
)

// UserRepository: adapter GORM untuk storage user.
type UserRepository struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", id).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListByRole: untuk picker admin (mis. daftar staff calon penguji).
func (r *UserRepository) ListByRole(ctx context.Context, role, q string, limit, offset int) ([]model.UserModel, int64, error) {
	qry := r.DB.WithContext(ctx).Model(&model.UserModel{}).
		Where("user_is_active = TRUE")
	if role != "" {
		qry = qry.Where("user_role = ?", role)
	}
	if q != "" {
		like := "%" + q + "%"
		qry = qry.Where("(user_user_name ILIKE ? OR COALESCE(user_full_name, '') ILIKE ? OR user_email ILIKE ?)", like, like, like)
	}

	var total int64
	if err := qry.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.UserModel
	if err := qry.
		Order("user_user_name ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *UserRepository) Create(ctx context.Context, u *model.UserModel) error {
	return r.DB.WithContext(ctx).Create(u).Error
}
