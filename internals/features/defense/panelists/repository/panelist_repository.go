// file: internals/features/defense/panelists/repository/panelist_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sidangku_backend/internals/features/defense/panelists/model"
)

// PanelistRepository: adapter GORM untuk relasi schedule_panelists.
// Repo ini relation-only: tidak memvalidasi keberadaan schedule (tanggung jawab caller).
type PanelistRepository struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *PanelistRepository {
	return &PanelistRepository{DB: db}
}

func (r *PanelistRepository) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]model.SchedulePanelistModel, error) {
	var rows []model.SchedulePanelistModel
	err := r.DB.WithContext(ctx).
		Where("schedule_panelist_schedule_id = ?", scheduleID).
		Order("schedule_panelist_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *PanelistRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]model.SchedulePanelistModel, error) {
	var rows []model.SchedulePanelistModel
	err := r.DB.WithContext(ctx).
		Where("schedule_panelist_staff_id = ?", staffID).
		Order("schedule_panelist_created_at ASC").
		Find(&rows).Error
	return rows, err
}

// StaffIDsBySchedule: hanya kolom staff, untuk seeding evaluation per jadwal.
func (r *PanelistRepository) StaffIDsBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB.WithContext(ctx).
		Model(&model.SchedulePanelistModel{}).
		Where("schedule_panelist_schedule_id = ?", scheduleID).
		Order("schedule_panelist_created_at ASC").
		Pluck("schedule_panelist_staff_id", &ids).Error
	return ids, err
}

func (r *PanelistRepository) FindPair(ctx context.Context, scheduleID, staffID uuid.UUID) (*model.SchedulePanelistModel, error) {
	var row model.SchedulePanelistModel
	err := r.DB.WithContext(ctx).
		Where("schedule_panelist_schedule_id = ? AND schedule_panelist_staff_id = ?", scheduleID, staffID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create membiarkan unique violation naik ke service (di sana race di-resolve jadi "existing").
func (r *PanelistRepository) Create(ctx context.Context, row *model.SchedulePanelistModel) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

func (r *PanelistRepository) DeletePair(ctx context.Context, scheduleID, staffID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("schedule_panelist_schedule_id = ? AND schedule_panelist_staff_id = ?", scheduleID, staffID).
		Delete(&model.SchedulePanelistModel{})
	return res.RowsAffected, res.Error
}
