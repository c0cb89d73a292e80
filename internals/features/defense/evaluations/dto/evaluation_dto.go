// file: internals/features/defense/evaluations/dto/evaluation_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "sidangku_backend/internals/features/defense/evaluations/model"
	svc "sidangku_backend/internals/features/defense/evaluations/service"
)

/* =========================
   Request
   ========================= */

type CreateEvaluationRequest struct {
	ScheduleID string `json:"schedule_id" validate:"required,uuid"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending submitted locked"`
}

type UpsertScoreRequest struct {
	CriterionID string   `json:"criterion_id" validate:"required,uuid"`
	Score       *float64 `json:"score" validate:"required"`
	Comment     *string  `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

type BulkUpsertScoresRequest struct {
	Items []svc.BulkScoreItem `json:"items" validate:"required,min=1,max=100,dive"`
}

/* =========================
   Response
   ========================= */

type EvaluationResponse struct {
	EvaluationID uuid.UUID `json:"evaluation_id"`
	ScheduleID   uuid.UUID `json:"schedule_id"`
	EvaluatorID  uuid.UUID `json:"evaluator_id"`

	Status      model.EvaluationStatusEnum `json:"status"`
	SubmittedAt *time.Time                 `json:"submitted_at,omitempty"`
	LockedAt    *time.Time                 `json:"locked_at,omitempty"`

	Extras datatypes.JSON `json:"extras,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m *model.EvaluationModel) EvaluationResponse {
	return EvaluationResponse{
		EvaluationID: m.EvaluationID,
		ScheduleID:   m.EvaluationScheduleID,
		EvaluatorID:  m.EvaluationEvaluatorID,
		Status:       m.EvaluationStatus,
		SubmittedAt:  m.EvaluationSubmittedAt,
		LockedAt:     m.EvaluationLockedAt,
		Extras:       m.EvaluationExtras,
		CreatedAt:    m.EvaluationCreatedAt,
		UpdatedAt:    m.EvaluationUpdatedAt,
	}
}

func FromModels(rows []model.EvaluationModel) []EvaluationResponse {
	out := make([]EvaluationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

type ScoreResponse struct {
	ScoreID     uuid.UUID `json:"score_id"`
	CriterionID uuid.UUID `json:"criterion_id"`
	Score       float64   `json:"score"`
	Comment     *string   `json:"comment,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ScoreFromModel(m *model.EvaluationScoreModel) ScoreResponse {
	return ScoreResponse{
		ScoreID:     m.EvaluationScoreID,
		CriterionID: m.EvaluationScoreCriterionID,
		Score:       m.EvaluationScoreScore,
		Comment:     m.EvaluationScoreComment,
		UpdatedAt:   m.EvaluationScoreUpdatedAt,
	}
}

func ScoresFromModels(rows []model.EvaluationScoreModel) []ScoreResponse {
	out := make([]ScoreResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ScoreFromModel(&rows[i]))
	}
	return out
}

type BulkUpsertScoresResponse struct {
	Items  []ScoreResponse `json:"items"`
	Errors []svc.ItemError `json:"errors,omitempty"`
}

type SeedEvaluationsResponse struct {
	CreatedCount  int `json:"created_count"`
	ExistingCount int `json:"existing_count"`
}
