// file: internals/features/defense/schedules/model/schedule_audit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefenseScheduleAuditModel menyimpan jejak perubahan jadwal (PATCH wajib isi alasan).
type DefenseScheduleAuditModel struct {
	DefenseScheduleAuditID uuid.UUID `gorm:"column:defense_schedule_audit_id;type:uuid;default:gen_random_uuid();primaryKey" json:"defense_schedule_audit_id"`

	DefenseScheduleAuditScheduleID uuid.UUID `gorm:"column:defense_schedule_audit_schedule_id;type:uuid;not null;index" json:"defense_schedule_audit_schedule_id"`
	DefenseScheduleAuditActorID    uuid.UUID `gorm:"column:defense_schedule_audit_actor_id;type:uuid;not null" json:"defense_schedule_audit_actor_id"`

	DefenseScheduleAuditReason  string         `gorm:"column:defense_schedule_audit_reason;type:varchar(300);not null" json:"defense_schedule_audit_reason"`
	DefenseScheduleAuditChanges datatypes.JSON `gorm:"column:defense_schedule_audit_changes;type:jsonb" json:"defense_schedule_audit_changes,omitempty"`

	DefenseScheduleAuditCreatedAt time.Time `gorm:"column:defense_schedule_audit_created_at;type:timestamptz;not null;autoCreateTime" json:"defense_schedule_audit_created_at"`
}

func (DefenseScheduleAuditModel) TableName() string { return "defense_schedule_audits" }
