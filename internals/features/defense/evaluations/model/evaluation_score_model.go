// file: internals/features/defense/evaluations/model/evaluation_score_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationScoreModel: nilai satu kriteria pada satu evaluation.
// Invariant: maksimal satu baris per pasangan (evaluation, criterion): upsert semantics.
type EvaluationScoreModel struct {
	EvaluationScoreID uuid.UUID `gorm:"column:evaluation_score_id;type:uuid;default:gen_random_uuid();primaryKey" json:"evaluation_score_id"`

	EvaluationScoreEvaluationID uuid.UUID `gorm:"column:evaluation_score_evaluation_id;type:uuid;not null;uniqueIndex:uq_evaluation_score_pair;index" json:"evaluation_score_evaluation_id"`
	EvaluationScoreCriterionID  uuid.UUID `gorm:"column:evaluation_score_criterion_id;type:uuid;not null;uniqueIndex:uq_evaluation_score_pair" json:"evaluation_score_criterion_id"`

	EvaluationScoreScore   float64 `gorm:"column:evaluation_score_score;type:numeric(8,3);not null" json:"evaluation_score_score"`
	EvaluationScoreComment *string `gorm:"column:evaluation_score_comment;type:text" json:"evaluation_score_comment,omitempty"`

	EvaluationScoreCreatedAt time.Time `gorm:"column:evaluation_score_created_at;type:timestamptz;not null;autoCreateTime" json:"evaluation_score_created_at"`
	EvaluationScoreUpdatedAt time.Time `gorm:"column:evaluation_score_updated_at;type:timestamptz;not null;autoUpdateTime" json:"evaluation_score_updated_at"`
}

func (EvaluationScoreModel) TableName() string { return "evaluation_scores" }
