// file: internals/features/defense/evaluations/repository/score_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sidangku_backend/internals/features/defense/evaluations/model"
)

// ScoreRepository: adapter GORM untuk tabel evaluation_scores.
type ScoreRepository struct {
	DB *gorm.DB
}

func NewScore(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) ListByEvaluation(ctx context.Context, evaluationID uuid.UUID) ([]model.EvaluationScoreModel, error) {
	var rows []model.EvaluationScoreModel
	err := r.DB.WithContext(ctx).
		Where("evaluation_score_evaluation_id = ?", evaluationID).
		Order("evaluation_score_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ScoreRepository) FindPair(ctx context.Context, evaluationID, criterionID uuid.UUID) (*model.EvaluationScoreModel, error) {
	var row model.EvaluationScoreModel
	err := r.DB.WithContext(ctx).
		Where("evaluation_score_evaluation_id = ? AND evaluation_score_criterion_id = ?", evaluationID, criterionID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ScoreRepository) Create(ctx context.Context, row *model.EvaluationScoreModel) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

func (r *ScoreRepository) Save(ctx context.Context, row *model.EvaluationScoreModel) error {
	return r.DB.WithContext(ctx).Save(row).Error
}

func (r *ScoreRepository) DeletePair(ctx context.Context, evaluationID, criterionID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("evaluation_score_evaluation_id = ? AND evaluation_score_criterion_id = ?", evaluationID, criterionID).
		Delete(&model.EvaluationScoreModel{})
	return res.RowsAffected, res.Error
}
