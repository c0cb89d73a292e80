// file: internals/features/defense/rubrics/dto/rubric_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "sidangku_backend/internals/features/defense/rubrics/model"
)

/* =========================
   Request
   ========================= */

type CreateCriterionRequest struct {
	Text        string   `json:"text" validate:"required,min=3,max=300"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Weight      *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	MinScore    *float64 `json:"min_score,omitempty"`
	MaxScore    *float64 `json:"max_score,omitempty"`
	Position    int      `json:"position"`
}

type CreateTemplateRequest struct {
	Name     string                   `json:"name" validate:"required,min=3,max=150"`
	IsActive bool                     `json:"is_active"`
	Criteria []CreateCriterionRequest `json:"criteria" validate:"required,min=1,max=50,dive"`
}

/* =========================
   Response
   ========================= */

type CriterionResponse struct {
	CriterionID uuid.UUID `json:"criterion_id"`
	TemplateID  uuid.UUID `json:"template_id"`
	Text        string    `json:"text"`
	Description *string   `json:"description,omitempty"`
	Weight      float64   `json:"weight"`
	MinScore    float64   `json:"min_score"`
	MaxScore    float64   `json:"max_score"`
	Position    int       `json:"position"`
}

func CriterionFromModel(m *model.RubricCriterionModel) CriterionResponse {
	return CriterionResponse{
		CriterionID: m.RubricCriterionID,
		TemplateID:  m.RubricCriterionTemplateID,
		Text:        m.RubricCriterionText,
		Description: m.RubricCriterionDescription,
		Weight:      m.RubricCriterionWeight,
		MinScore:    m.RubricCriterionMinScore,
		MaxScore:    m.RubricCriterionMaxScore,
		Position:    m.RubricCriterionPosition,
	}
}

func CriteriaFromModels(rows []model.RubricCriterionModel) []CriterionResponse {
	out := make([]CriterionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, CriterionFromModel(&rows[i]))
	}
	return out
}

type TemplateResponse struct {
	TemplateID uuid.UUID           `json:"template_id"`
	Name       string              `json:"name"`
	IsActive   bool                `json:"is_active"`
	Criteria   []CriterionResponse `json:"criteria,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func TemplateFromModel(m *model.RubricTemplateModel) TemplateResponse {
	return TemplateResponse{
		TemplateID: m.RubricTemplateID,
		Name:       m.RubricTemplateName,
		IsActive:   m.RubricTemplateIsActive,
		Criteria:   CriteriaFromModels(m.Criteria),
		CreatedAt:  m.RubricTemplateCreatedAt,
		UpdatedAt:  m.RubricTemplateUpdatedAt,
	}
}

func TemplatesFromModels(rows []model.RubricTemplateModel) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(rows))
	for i := range rows {
		out = append(out, TemplateFromModel(&rows[i]))
	}
	return out
}
