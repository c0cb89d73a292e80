// file: internals/features/defense/schedules/dto/schedule_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "sidangku_backend/internals/features/defense/schedules/model"
)

/* =========================
   Request
   ========================= */

type CreateScheduleRequest struct {
	GroupID      string    `json:"group_id" validate:"required,uuid"`
	GroupTitle   *string   `json:"group_title,omitempty" validate:"omitempty,max=200"`
	ScheduledAt  time.Time `json:"scheduled_at" validate:"required"`
	Room         *string   `json:"room,omitempty" validate:"omitempty,max=100"`
	RequiredDocs []string  `json:"required_docs,omitempty" validate:"omitempty,max=20,dive,min=1,max=100"`
}

// UpdateScheduleRequest: PATCH parsial. Reason wajib diisi untuk jejak audit.
type UpdateScheduleRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=300"`

	GroupTitle   *string    `json:"group_title,omitempty" validate:"omitempty,max=200"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	Room         *string    `json:"room,omitempty" validate:"omitempty,max=100"`
	Status       *string    `json:"status,omitempty" validate:"omitempty,oneof=scheduled ongoing completed canceled archived"`
	RequiredDocs *[]string  `json:"required_docs,omitempty" validate:"omitempty,max=20,dive,min=1,max=100"`
}

type DeleteScheduleRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=300"`
}

/* =========================
   Response
   ========================= */

type ScheduleResponse struct {
	ScheduleID uuid.UUID `json:"schedule_id"`
	GroupID    uuid.UUID `json:"group_id"`
	GroupTitle *string   `json:"group_title,omitempty"`

	ScheduledAt time.Time                `json:"scheduled_at"`
	Room        *string                  `json:"room,omitempty"`
	Status      model.ScheduleStatusEnum `json:"status"`

	RequiredDocs []string  `json:"required_docs,omitempty"`
	CreatedBy    uuid.UUID `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m *model.DefenseScheduleModel) ScheduleResponse {
	return ScheduleResponse{
		ScheduleID:   m.DefenseScheduleID,
		GroupID:      m.DefenseScheduleGroupID,
		GroupTitle:   m.DefenseScheduleGroupTitleCache,
		ScheduledAt:  m.DefenseScheduleScheduledAt,
		Room:         m.DefenseScheduleRoom,
		Status:       m.DefenseScheduleStatus,
		RequiredDocs: m.DefenseScheduleRequiredDocs,
		CreatedBy:    m.DefenseScheduleCreatedBy,
		CreatedAt:    m.DefenseScheduleCreatedAt,
		UpdatedAt:    m.DefenseScheduleUpdatedAt,
	}
}

func FromModels(rows []model.DefenseScheduleModel) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

type AuditResponse struct {
	AuditID    uuid.UUID      `json:"audit_id"`
	ScheduleID uuid.UUID      `json:"schedule_id"`
	ActorID    uuid.UUID      `json:"actor_id"`
	Reason     string         `json:"reason"`
	Changes    datatypes.JSON `json:"changes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func AuditFromModel(m *model.DefenseScheduleAuditModel) AuditResponse {
	return AuditResponse{
		AuditID:    m.DefenseScheduleAuditID,
		ScheduleID: m.DefenseScheduleAuditScheduleID,
		ActorID:    m.DefenseScheduleAuditActorID,
		Reason:     m.DefenseScheduleAuditReason,
		Changes:    m.DefenseScheduleAuditChanges,
		CreatedAt:  m.DefenseScheduleAuditCreatedAt,
	}
}

func AuditsFromModels(rows []model.DefenseScheduleAuditModel) []AuditResponse {
	out := make([]AuditResponse, 0, len(rows))
	for i := range rows {
		out = append(out, AuditFromModel(&rows[i]))
	}
	return out
}
