// file: internals/features/defense/evaluations/model/evaluation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EvaluationStatusEnum: pending → submitted → locked (unlock balik ke submitted/pending).
type EvaluationStatusEnum string

const (
	EvaluationPending   EvaluationStatusEnum = "pending"
	EvaluationSubmitted EvaluationStatusEnum = "submitted"
	EvaluationLocked    EvaluationStatusEnum = "locked"
)

// ValidStatus: status yang dikenal state machine.
func ValidStatus(s EvaluationStatusEnum) bool {
	switch s {
	case EvaluationPending, EvaluationSubmitted, EvaluationLocked:
		return true
	}
	return false
}

// EvaluationModel: satu record penilaian milik satu penguji untuk satu jadwal.
// Invariant: maksimal satu baris per pasangan (schedule, evaluator).
type EvaluationModel struct {
	EvaluationID uuid.UUID `gorm:"column:evaluation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"evaluation_id"`

	EvaluationScheduleID  uuid.UUID `gorm:"column:evaluation_schedule_id;type:uuid;not null;uniqueIndex:uq_evaluation_pair;index" json:"evaluation_schedule_id"`
	EvaluationEvaluatorID uuid.UUID `gorm:"column:evaluation_evaluator_id;type:uuid;not null;uniqueIndex:uq_evaluation_pair;index" json:"evaluation_evaluator_id"`

	EvaluationStatus EvaluationStatusEnum `gorm:"column:evaluation_status;type:varchar(20);not null;default:'pending'" json:"evaluation_status"`

	EvaluationSubmittedAt *time.Time `gorm:"column:evaluation_submitted_at;type:timestamptz" json:"evaluation_submitted_at,omitempty"`
	EvaluationLockedAt    *time.Time `gorm:"column:evaluation_locked_at;type:timestamptz" json:"evaluation_locked_at,omitempty"`

	// blob bebas untuk payload nilai per-anggota gaya lama (member scores legacy)
	EvaluationExtras datatypes.JSON `gorm:"column:evaluation_extras;type:jsonb" json:"evaluation_extras,omitempty"`

	EvaluationCreatedAt time.Time      `gorm:"column:evaluation_created_at;type:timestamptz;not null;autoCreateTime" json:"evaluation_created_at"`
	EvaluationUpdatedAt time.Time      `gorm:"column:evaluation_updated_at;type:timestamptz;not null;autoUpdateTime" json:"evaluation_updated_at"`
	EvaluationDeletedAt gorm.DeletedAt `gorm:"column:evaluation_deleted_at;index" json:"evaluation_deleted_at,omitempty"`
}

func (EvaluationModel) TableName() string { return "evaluations" }
