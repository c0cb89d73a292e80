// file: internals/features/defense/panelists/model/schedule_panelist_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SchedulePanelistModel: relasi many-to-many jadwal sidang ↔ staff penguji.
// Invariant: maksimal satu baris per pasangan (schedule, staff): dijaga unique index.
type SchedulePanelistModel struct {
	SchedulePanelistID uuid.UUID `gorm:"column:schedule_panelist_id;type:uuid;default:gen_random_uuid();primaryKey" json:"schedule_panelist_id"`

	SchedulePanelistScheduleID uuid.UUID `gorm:"column:schedule_panelist_schedule_id;type:uuid;not null;uniqueIndex:uq_schedule_panelist_pair;index" json:"schedule_panelist_schedule_id"`
	SchedulePanelistStaffID    uuid.UUID `gorm:"column:schedule_panelist_staff_id;type:uuid;not null;uniqueIndex:uq_schedule_panelist_pair;index" json:"schedule_panelist_staff_id"`

	SchedulePanelistCreatedAt time.Time `gorm:"column:schedule_panelist_created_at;type:timestamptz;not null;autoCreateTime" json:"schedule_panelist_created_at"`
}

func (SchedulePanelistModel) TableName() string { return "schedule_panelists" }
