// file: internals/features/defense/evaluations/repository/evaluation_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sidangku_backend/internals/features/defense/evaluations/model"
	scheduleModel "sidangku_backend/internals/features/defense/schedules/model"
)

// EvaluationRepository: adapter GORM untuk tabel evaluations.
type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluation(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EvaluationModel, error) {
	var row model.EvaluationModel
	err := r.DB.WithContext(ctx).
		Where("evaluation_id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *EvaluationRepository) FindPair(ctx context.Context, scheduleID, evaluatorID uuid.UUID) (*model.EvaluationModel, error) {
	var row model.EvaluationModel
	err := r.DB.WithContext(ctx).
		Where("evaluation_schedule_id = ? AND evaluation_evaluator_id = ?", scheduleID, evaluatorID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *EvaluationRepository) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]model.EvaluationModel, error) {
	var rows []model.EvaluationModel
	err := r.DB.WithContext(ctx).
		Where("evaluation_schedule_id = ?", scheduleID).
		Order("evaluation_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *EvaluationRepository) ListByEvaluator(ctx context.Context, evaluatorID uuid.UUID) ([]model.EvaluationModel, error) {
	var rows []model.EvaluationModel
	err := r.DB.WithContext(ctx).
		Where("evaluation_evaluator_id = ?", evaluatorID).
		Order("evaluation_created_at DESC").
		Find(&rows).Error
	return rows, err
}

// Create membiarkan unique violation naik ke service (race CreateOrGet di-resolve di sana).
func (r *EvaluationRepository) Create(ctx context.Context, row *model.EvaluationModel) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

func (r *EvaluationRepository) Save(ctx context.Context, row *model.EvaluationModel) error {
	return r.DB.WithContext(ctx).Save(row).Error
}

// ScheduleExists: tabel evaluation tidak pegang FK ke schedule, keberadaan
// jadwal dicek lewat query langsung (soft-deleted ikut tersaring).
func (r *EvaluationRepository) ScheduleExists(ctx context.Context, scheduleID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&scheduleModel.DefenseScheduleModel{}).
		Where("defense_schedule_id = ?", scheduleID).
		Count(&n).Error
	return n > 0, err
}
