// file: internals/features/defense/rubrics/model/rubric_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RubricTemplateModel struct {
	RubricTemplateID uuid.UUID `gorm:"column:rubric_template_id;type:uuid;default:gen_random_uuid();primaryKey" json:"rubric_template_id"`

	RubricTemplateName     string `gorm:"column:rubric_template_name;type:varchar(150);not null" json:"rubric_template_name"`
	RubricTemplateIsActive bool   `gorm:"column:rubric_template_is_active;not null;default:false;index" json:"rubric_template_is_active"`

	RubricTemplateCreatedAt time.Time      `gorm:"column:rubric_template_created_at;type:timestamptz;not null;autoCreateTime" json:"rubric_template_created_at"`
	RubricTemplateUpdatedAt time.Time      `gorm:"column:rubric_template_updated_at;type:timestamptz;not null;autoUpdateTime" json:"rubric_template_updated_at"`
	RubricTemplateDeletedAt gorm.DeletedAt `gorm:"column:rubric_template_deleted_at;index" json:"rubric_template_deleted_at,omitempty"`

	// eager load opsional
	Criteria []RubricCriterionModel `gorm:"foreignKey:RubricCriterionTemplateID;references:RubricTemplateID" json:"criteria,omitempty"`
}

func (RubricTemplateModel) TableName() string { return "rubric_templates" }

// RubricCriterionModel: satu butir penilaian pada template.
// Dari sisi scoring engine bersifat read-only; weight dipakai untuk agregasi.
type RubricCriterionModel struct {
	RubricCriterionID uuid.UUID `gorm:"column:rubric_criterion_id;type:uuid;default:gen_random_uuid();primaryKey" json:"rubric_criterion_id"`

	RubricCriterionTemplateID uuid.UUID `gorm:"column:rubric_criterion_template_id;type:uuid;not null;index" json:"rubric_criterion_template_id"`

	RubricCriterionText        string  `gorm:"column:rubric_criterion_text;type:varchar(300);not null" json:"rubric_criterion_text"`
	RubricCriterionDescription *string `gorm:"column:rubric_criterion_description;type:text" json:"rubric_criterion_description,omitempty"`

	RubricCriterionWeight   float64 `gorm:"column:rubric_criterion_weight;type:numeric(8,3);not null;default:1" json:"rubric_criterion_weight"`
	RubricCriterionMinScore float64 `gorm:"column:rubric_criterion_min_score;type:numeric(8,3);not null;default:0" json:"rubric_criterion_min_score"`
	RubricCriterionMaxScore float64 `gorm:"column:rubric_criterion_max_score;type:numeric(8,3);not null;default:100" json:"rubric_criterion_max_score"`

	RubricCriterionPosition int `gorm:"column:rubric_criterion_position;not null;default:0" json:"rubric_criterion_position"`

	RubricCriterionCreatedAt time.Time `gorm:"column:rubric_criterion_created_at;type:timestamptz;not null;autoCreateTime" json:"rubric_criterion_created_at"`
	RubricCriterionUpdatedAt time.Time `gorm:"column:rubric_criterion_updated_at;type:timestamptz;not null;autoUpdateTime" json:"rubric_criterion_updated_at"`
}

func (RubricCriterionModel) TableName() string { return "rubric_criteria" }
